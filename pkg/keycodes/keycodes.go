// Package keycodes provides the keycodes subprogram, a debugging aid that
// prints the bytes each keypress sends instead of editing a line.
package keycodes

import (
	"fmt"
	"io"
	"os"

	"src.comlin.dev/pkg/prog"
	"src.comlin.dev/pkg/term"
)

// Program is the keycodes subprogram. It runs when -keycodes is given.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Keycodes {
		return prog.ErrNotSuitable
	}
	fmt.Fprintln(fds[2],
		"Press keys to see scan codes.  Type 'quit' at any time to exit.")
	sess := term.NewSession(fds[0], fds[1], os.Getenv("TERM"))
	if err := sess.EnterRaw(); err != nil {
		return err
	}
	defer sess.LeaveRaw()

	// The last four bytes read, so that typing "quit" is recognized no
	// matter what came before.
	var last [4]byte
	for {
		b, err := sess.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		copy(last[:], last[1:])
		last[3] = b
		if string(last[:]) == "quit" {
			return nil
		}
		shown := b
		if b < 0x20 || b > 0x7e {
			shown = '?'
		}
		fmt.Fprintf(fds[2], "'%c' %02x (%d) (type quit to exit)\r\n\r\n", shown, b, b)
	}
}
