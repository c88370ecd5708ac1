package cli

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// errNoTerminal is returned when the editor is started without a TTY.
var errNoTerminal = errors.New("the editor needs an interactive terminal; use push to upload a file instead")

// isTerminal reports whether a stream is a TTY.
var isTerminal = defaultIsTerminal

// checkTerminal verifies that both editor streams are attached to a TTY.
func checkTerminal(stdin, stdout any) error {
	if !isTerminal(stdin) || !isTerminal(stdout) {
		return errNoTerminal
	}
	return nil
}

// defaultIsTerminal inspects a stream for TTY support.
func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
