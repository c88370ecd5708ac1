package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"quizedit/internal/quiz"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		names, rest := positional(args)
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		if code, ok := parseFlags(cmd, flags, rest, stdout, stderr); !ok {
			return code
		}
		names = append(names, flags.Args()...)
		if !expectArgs(cmd, names, 1, 1, stderr) {
			return ExitUsage
		}

		doc, err := quiz.ReadFile(names[0])
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		if err := quiz.Validate(doc); err != nil {
			var validationErr *quiz.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprintf(stderr, "Validation failed:\n- %s: %s\n", validationErr.Field, validationErr.Error())
			} else {
				fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			}
			return ExitError
		}

		fmt.Fprintf(stdout, "Quiz OK (%d questions)\n", doc.Len())
		return ExitOK
	}
}
