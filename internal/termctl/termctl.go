// Package termctl acquires and restores raw terminal mode and reports
// terminal size, via golang.org/x/term.
package termctl

import (
	"os"

	"golang.org/x/term"
)

// Restore undoes a Raw call, returning the terminal to its prior mode.
type Restore struct {
	fd    int
	state *term.State
}

// Raw puts stdout's backing terminal into raw mode and returns a handle
// to restore it.
func Raw() (Restore, error) {
	fd := int(os.Stdout.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return Restore{}, err
	}
	return Restore{fd: fd, state: state}, nil
}

// Restore restores the terminal mode captured by Raw.
func (r Restore) Restore() error {
	if r.state == nil {
		return nil
	}
	return term.Restore(r.fd, r.state)
}

// Size returns (rows, cols) for stdout's terminal, falling back to
// 24x80 rather than failing navigation over a size query.
func Size() (rows, cols int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 24, 80
	}
	return rows, cols
}
