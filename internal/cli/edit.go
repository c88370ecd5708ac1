package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"quizedit/internal/quiz"
	"quizedit/internal/session"
	"quizedit/internal/ui/editor"
)

// runEditor and editorInput are swapped in tests.
var (
	runEditor             = editor.Run
	editorInput io.Reader = os.Stdin
)

// runEdit builds the handler for the edit command.
func runEdit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		names, rest := positional(args)
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		global := bindGlobalFlags(flags)
		from := flags.String("from", "", "Start a new quiz from a local file")
		noColor := flags.Bool("no-color", false, "Disable colors")
		if code, ok := parseFlags(cmd, flags, rest, stdout, stderr); !ok {
			return code
		}
		names = append(names, flags.Args()...)
		if !expectArgs(cmd, names, 0, 1, stderr) {
			return ExitUsage
		}
		key := ""
		if len(names) == 1 {
			key = names[0]
		}
		if key != "" && *from != "" {
			fmt.Fprintln(stderr, "--from only applies when creating a quiz")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		if err := checkTerminal(editorInput, stdout); err != nil {
			fmt.Fprintf(stderr, "Edit failed: %v\n", err)
			return ExitError
		}
		e, err := global.loadEnv(stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}

		nav := &routeRecorder{}
		opts := append(e.sessionOptions(), session.WithNavigator(nav))
		if *from != "" {
			doc, err := quiz.ReadFile(*from)
			if err != nil {
				fmt.Fprintf(stderr, "Edit failed: %v\n", err)
				return ExitError
			}
			opts = append(opts, session.WithDocument(doc))
		}
		sess := session.New(e.api, key, opts...)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		result, err := runEditor(ctx, sess, editor.Options{
			NoColor: *noColor || e.cfg.Editor.NoColor,
			Input:   editorInput,
			Output:  stdout,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Edit failed: %v\n", err)
			return ExitError
		}
		if !result.Saved {
			fmt.Fprintln(stdout, "No changes saved.")
			return ExitOK
		}
		fmt.Fprintln(stdout, result.Outcome.Message)
		fmt.Fprintf(stdout, "Quizzes: %s\n", listingURL(e.cfg.API.BaseURL, nav.route))
		return ExitOK
	}
}
