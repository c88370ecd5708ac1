package cli

import (
	"fmt"
	"io"
)

// Process exit codes returned by Run. ExitError reports a failed command (bad input
// files, config or server errors); ExitUsage reports a malformed command line.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command is one quizedit subcommand. Usage lines are printed by --help; Run receives
// the arguments after the command name and returns an exit code.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

// Run dispatches args to a command and returns the process exit code. With no
// arguments it prints usage and returns ExitUsage.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

// findCommand returns the registered command called name, or nil.
func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

// wantsHelp reports whether any argument asks for command help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  quizedit <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"quizedit <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

// command builds a Command whose handler is created by runner.
func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

// commands lists the subcommands in the order usage prints them.
var commands = []*Command{
	command("init", "Scaffold .quizedit/config.yml", []string{
		"quizedit init [--config <path>]",
	}, runInit),
	command("validate", "Check a quiz file before saving it", []string{
		"quizedit validate <file>",
	}, runValidate),
	command("edit", "Create or edit a quiz in the terminal", []string{
		"quizedit edit [--from <file>]",
		"quizedit edit <quiz-name>",
	}, runEdit),
	command("pull", "Download a quiz to a local file", []string{
		"quizedit pull <quiz-name> [--out <file>]",
	}, runPull),
	command("push", "Upload a local quiz file", []string{
		"quizedit push <file> [--name <quiz-name>]",
	}, runPush),
}
