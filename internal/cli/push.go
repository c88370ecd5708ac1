package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"quizedit/internal/quiz"
	"quizedit/internal/session"
)

// runPush builds the handler for the push command.
func runPush(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		names, rest := positional(args)
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		global := bindGlobalFlags(flags)
		name := flags.String("name", "", "Existing quiz to update (default: create a new quiz)")
		if code, ok := parseFlags(cmd, flags, rest, stdout, stderr); !ok {
			return code
		}
		names = append(names, flags.Args()...)
		if !expectArgs(cmd, names, 1, 1, stderr) {
			return ExitUsage
		}

		doc, err := quiz.ReadFile(names[0])
		if err != nil {
			fmt.Fprintf(stderr, "Push failed: %v\n", err)
			return ExitError
		}
		e, err := global.loadEnv(stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}

		nav := &routeRecorder{}
		opts := append(e.sessionOptions(), session.WithDocument(doc), session.WithNavigator(nav))
		sess := session.New(e.api, *name, opts...)
		outcome, err := sess.Save(context.Background())
		if err != nil {
			var failure *session.Failure
			if errors.As(err, &failure) {
				fmt.Fprintf(stderr, "Push failed: %s\n", failure.Message)
			} else {
				fmt.Fprintf(stderr, "Push failed: %v\n", err)
			}
			return ExitError
		}
		fmt.Fprintln(stdout, outcome.Message)
		fmt.Fprintf(stdout, "Quizzes: %s\n", listingURL(e.cfg.API.BaseURL, nav.route))
		return ExitOK
	}
}
