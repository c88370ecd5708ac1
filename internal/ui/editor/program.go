package editor

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quizedit/internal/session"
)

// Options configures the editor program.
type Options struct {
	NoColor bool
	Input   io.Reader
	Output  io.Writer
}

// Result reports how the editor exited.
type Result struct {
	Saved   bool
	Outcome session.Outcome
}

// Run opens the editor on the terminal and blocks until the user quits or a save
// succeeds.
func Run(ctx context.Context, sess *session.Session, opts Options) (Result, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(opts.Output),
		tea.WithAltScreen(),
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	program := tea.NewProgram(NewModel(ctx, sess, opts), programOpts...)
	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("run editor: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	outcome, saved := model.Saved()
	return Result{Saved: saved, Outcome: outcome}, nil
}
