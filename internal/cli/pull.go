package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"quizedit/internal/quiz"
)

// runPull builds the handler for the pull command.
func runPull(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		names, rest := positional(args)
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		global := bindGlobalFlags(flags)
		out := flags.String("out", "", "Output file, .yml or .json (default: <quiz-name>.yml)")
		if code, ok := parseFlags(cmd, flags, rest, stdout, stderr); !ok {
			return code
		}
		names = append(names, flags.Args()...)
		if !expectArgs(cmd, names, 1, 1, stderr) {
			return ExitUsage
		}
		name := names[0]

		e, err := global.loadEnv(stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.API.Timeout)
		defer cancel()
		doc, err := e.api.Fetch(ctx, name)
		if err != nil {
			fmt.Fprintf(stderr, "Pull failed: %v\n", err)
			return ExitError
		}

		path := *out
		if path == "" {
			path = fileNameFor(name)
		}
		if err := quiz.WriteFile(path, doc); err != nil {
			fmt.Fprintf(stderr, "Pull failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s (%d questions)\n", path, doc.Len())
		return ExitOK
	}
}

// fileNameFor turns a quiz name into a local file name.
func fileNameFor(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if safe == "" {
		safe = "quiz"
	}
	return safe + ".yml"
}
