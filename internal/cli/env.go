package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"quizedit/internal/config"
	"quizedit/internal/session"
	"quizedit/pkg/quizapi"
	"quizedit/pkg/quizapi/httpclient"
)

// globalFlags are shared by the commands that reach the quiz server.
type globalFlags struct {
	configPath *string
	logLevel   *string
}

func bindGlobalFlags(flags *flag.FlagSet) globalFlags {
	return globalFlags{
		configPath: flags.String("config", "", "Path to config file (default: search for .quizedit/config.yml)"),
		logLevel:   flags.String("log-level", "warn", "Log level (debug|info|warn|error)"),
	}
}

// env is what a command needs to talk to the quiz server.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	api    quizapi.API
}

// loadEnv resolves config and builds the logger and API client.
func (g globalFlags) loadEnv(stderr io.Writer) (env, error) {
	logger, err := newLogger(stderr, *g.logLevel)
	if err != nil {
		return env{}, err
	}
	cfg, err := config.Resolve(*g.configPath)
	if err != nil {
		return env{}, err
	}
	logger.Debug("config resolved", "base_url", cfg.API.BaseURL, "timeout", cfg.API.Timeout)
	client := httpclient.New(cfg.API.BaseURL,
		httpclient.WithTimeout(cfg.API.Timeout),
		httpclient.WithToken(cfg.Token()),
		httpclient.WithLogger(logger),
	)
	return env{cfg: cfg, logger: logger, api: client}, nil
}

// sessionOptions returns the options every command session shares.
func (e env) sessionOptions() []session.Option {
	return []session.Option{
		session.WithTimeout(e.cfg.API.Timeout),
		session.WithLogger(e.logger),
	}
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// parseFlags parses args, printing usage on errors. It returns ok=false with the
// exit code to use when the command should stop.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// positional splits leading positional arguments from trailing flags, so
// "push quiz.yml --name midterm" parses like "push --name midterm quiz.yml".
func positional(args []string) ([]string, []string) {
	var names []string
	for len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		names = append(names, args[0])
		args = args[1:]
	}
	return names, args
}

// expectArgs reports a usage error unless got holds between least and most
// positional arguments.
func expectArgs(cmd *Command, got []string, least, most int, stderr io.Writer) bool {
	if len(got) < least {
		fmt.Fprintln(stderr, "missing arguments")
		printCommandUsage(cmd, stderr)
		return false
	}
	if len(got) > most {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(got[most:], " "))
		printCommandUsage(cmd, stderr)
		return false
	}
	return true
}

// listingURL is where the user lands after a save.
func listingURL(baseURL, route string) string {
	return strings.TrimRight(baseURL, "/") + route
}

// routeRecorder is the CLI navigator. It remembers the route so it can be printed
// once the terminal is free.
type routeRecorder struct {
	route string
}

func (r *routeRecorder) Navigate(route string) {
	r.route = route
}
