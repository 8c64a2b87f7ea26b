// Package term manages the terminal connection underlying a line-editing
// session: raw mode, width measurement and batched escape-sequence output.
package term

import (
	"fmt"
	"io"
	"os"
	"strings"

	"src.comlin.dev/pkg/sys"
)

// Terminal types known not to support the escape sequences the editor relies
// on. Matched case-insensitively as prefixes of the terminal name.
var dumbTerms = []string{"dumb", "cons25", "emacs"}

const defaultColumns = 80

// Session represents a connection to one terminal. It owns the input and
// output files, the raw/cooked mode state and the cached column width.
//
// A Session whose input is not a terminal still works: raw mode becomes a
// no-op and the width falls back to a default, which is what makes the
// editor drivable from pipes in tests.
type Session struct {
	in, out *os.File
	dumb    bool
	cols    int
	saved   *sys.Termios
}

// NewSession creates a session for the given input and output files.
// termName is the value of the terminal type (conventionally $TERM) used to
// detect terminals that cannot render escape sequences.
func NewSession(in, out *os.File, termName string) *Session {
	return &Session{in: in, out: out, dumb: isDumb(termName)}
}

func isDumb(name string) bool {
	name = strings.ToLower(name)
	for _, t := range dumbTerms {
		if strings.HasPrefix(name, t) {
			return true
		}
	}
	return false
}

// Dumb reports whether the terminal type is on the deny-list of terminals
// that do not understand the escape sequences the editor emits.
func (s *Session) Dumb() bool { return s.dumb }

// In returns the input file.
func (s *Session) In() *os.File { return s.in }

// Out returns the output file.
func (s *Session) Out() *os.File { return s.out }

// IsTTY reports whether the session input is a real terminal.
func (s *Session) IsTTY() bool { return sys.IsATTY(s.in) }

// Raw reports whether the session has put the terminal in raw mode.
func (s *Session) Raw() bool { return s.saved != nil }

// EnterRaw puts the terminal in raw mode, saving the current attributes for
// LeaveRaw. It is a no-op if raw mode is already active, or if the input is
// not a real terminal.
func (s *Session) EnterRaw() error {
	if s.saved != nil || !s.IsTTY() {
		return nil
	}
	fd := int(s.in.Fd())
	term, err := sys.TermiosForFd(fd)
	if err != nil {
		return fmt.Errorf("get terminal attributes: %w", err)
	}
	saved := term.Copy()
	term.SetRaw()
	if err := term.ApplyToFd(fd); err != nil {
		return fmt.Errorf("set terminal attributes: %w", err)
	}
	s.saved = saved
	return nil
}

// LeaveRaw restores the attributes saved by EnterRaw. It is idempotent.
func (s *Session) LeaveRaw() error {
	if s.saved == nil {
		return nil
	}
	if err := s.saved.ApplyToFd(int(s.in.Fd())); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}
	s.saved = nil
	return nil
}

// Columns returns the terminal width, measuring it on first use and caching
// the result until InvalidateColumns or SetColumns is called.
func (s *Session) Columns() int {
	if s.cols == 0 {
		s.cols = s.measureColumns()
	}
	return s.cols
}

// SetColumns overrides the cached terminal width. Hosts that track window
// size changes themselves can push the new width here.
func (s *Session) SetColumns(n int) {
	if n > 0 {
		s.cols = n
	}
}

// InvalidateColumns drops the cached width so that the next Columns call
// measures it again.
func (s *Session) InvalidateColumns() { s.cols = 0 }

func (s *Session) measureColumns() int {
	if _, col := sys.WinSize(s.out); col > 0 {
		return col
	}
	// The window size ioctl failed; fall back to asking the terminal
	// itself, if there is one.
	if !s.IsTTY() {
		return defaultColumns
	}
	cols, err := s.probeColumns()
	if err != nil || cols <= 0 {
		return defaultColumns
	}
	return cols
}

// probeColumns measures the width by moving the cursor to the far right
// margin (clamped by the terminal) and asking where it ended up. The probe
// needs raw mode to read the reply; if raw mode was not already active it is
// entered temporarily and left again on every path out.
func (s *Session) probeColumns() (cols int, err error) {
	if !s.Raw() {
		if err := s.EnterRaw(); err != nil {
			return 0, err
		}
		defer func() {
			if restoreErr := s.LeaveRaw(); err == nil {
				err = restoreErr
			}
		}()
	}

	start, err := s.cursorColumn()
	if err != nil {
		return 0, err
	}
	if err := s.WriteString("\x1b[999C"); err != nil {
		return 0, err
	}
	cols, err = s.cursorColumn()
	if err != nil {
		return 0, err
	}
	// Return the cursor to where it started.
	if cols > start {
		if err := s.WriteString(fmt.Sprintf("\x1b[%dD", cols-start)); err != nil {
			return 0, err
		}
	}
	return cols, nil
}

// cursorColumn queries the cursor position with the report-position sequence
// and returns the column from the reply, which has the form ESC [ row ; col R.
func (s *Session) cursorColumn() (int, error) {
	if err := s.WriteString("\x1b[6n"); err != nil {
		return 0, err
	}
	var reply [32]byte
	i := 0
	for i < len(reply)-1 {
		b, err := s.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == 'R' {
			break
		}
		reply[i] = b
		i++
	}
	if i < 2 || reply[0] != 0x1b || reply[1] != '[' {
		return 0, fmt.Errorf("malformed cursor position reply %q", reply[:i])
	}
	var row, col int
	if _, err := fmt.Sscanf(string(reply[2:i]), "%d;%d", &row, &col); err != nil {
		return 0, fmt.Errorf("malformed cursor position reply %q", reply[:i])
	}
	return col, nil
}

// ReadByte reads exactly one byte from the terminal, blocking until it is
// available.
func (s *Session) ReadByte() (byte, error) {
	var b [1]byte
	n, err := s.in.Read(b[:])
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return 0, io.ErrNoProgress
	}
	return b[0], nil
}

// WriteString writes a string to the terminal in full.
func (s *Session) WriteString(str string) error {
	_, err := s.out.WriteString(str)
	return err
}
