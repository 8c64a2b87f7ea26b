package comlin

import (
	"errors"
	"fmt"
	"io"
)

// ErrInterrupted is returned by ReadLine when the user presses the interrupt
// key.
var ErrInterrupted = errors.New("interrupted")

// EditStart begins a new edit: it puts the terminal in raw mode, resets the
// edit state, measures the terminal width and writes the prompt. The caller
// then feeds input with EditFeed and must finish with EditStop.
func (s *State) EditStart(prompt string) error {
	s.prompt = prompt
	s.buf.Reset()
	s.oldDot, s.oldRows = 0, 0
	s.histIndex = 0
	s.inCompletion = false
	s.completionIdx = 0
	if err := s.sess.EnterRaw(); err != nil {
		return err
	}
	s.editing = true
	s.cols = s.sess.Columns()
	if !s.sess.Dumb() {
		// The newest history entry mirrors the line being edited,
		// starting out empty. It is popped again when the edit ends.
		s.hist.Add("")
	}
	if err := s.sess.WriteString(prompt); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	return nil
}

// EditFeed reads exactly one byte from the terminal and advances the edit.
// It returns Editing while the line is still being edited; Submitted when
// the user committed the line (available via Text); Interrupted on the
// interrupt key; and Ended when the end-of-file key was pressed on an empty
// line. Any I/O failure aborts the current operation and is returned
// immediately.
func (s *State) EditFeed() (Status, error) {
	b, err := s.sess.ReadByte()
	if err != nil {
		return Editing, fmt.Errorf("read terminal: %w", err)
	}

	if s.sess.Dumb() {
		return s.feedDumb(b)
	}

	// While cycling completions, or on the completion trigger, the
	// completion engine sees the byte first. It either consumes it or
	// hands back a byte that still needs normal processing.
	if (s.inCompletion || b == keyTab) && s.complete != nil {
		var consumed bool
		b, consumed, err = s.completeLine(b)
		if err != nil {
			return Editing, err
		}
		if consumed {
			return Editing, nil
		}
	}

	switch b {
	case keyEnter, keyLineFeed:
		s.hist.RemoveLast()
		if s.multiLine {
			if err := s.editMoveEnd(); err != nil {
				return Editing, err
			}
		}
		return Submitted, nil
	case keyCtrlC:
		return Interrupted, nil
	case keyBackspace, keyCtrlH:
		if s.buf.Backspace() {
			return Editing, s.refreshLine()
		}
	case keyCtrlD:
		// Delete forward, or end the session if the line is empty.
		if s.buf.Len() == 0 {
			s.hist.RemoveLast()
			return Ended, nil
		}
		return Editing, s.editDelete()
	case keyCtrlT:
		if s.buf.Transpose() {
			return Editing, s.refreshLine()
		}
	case keyCtrlB:
		return Editing, s.editMoveLeft()
	case keyCtrlF:
		return Editing, s.editMoveRight()
	case keyCtrlP:
		return Editing, s.editHistoryStep(true)
	case keyCtrlN:
		return Editing, s.editHistoryStep(false)
	case keyCtrlU:
		s.buf.KillToStart()
		return Editing, s.refreshLine()
	case keyCtrlK:
		s.buf.KillToEnd()
		return Editing, s.refreshLine()
	case keyCtrlA:
		return Editing, s.editMoveHome()
	case keyCtrlE:
		return Editing, s.editMoveEnd()
	case keyCtrlL:
		if err := s.ClearScreen(); err != nil {
			return Editing, err
		}
		return Editing, s.refreshLine()
	case keyCtrlW:
		if s.buf.DeletePrevWord() {
			return Editing, s.refreshLine()
		}
	case keyEsc:
		return Editing, s.readEscape()
	default:
		return Editing, s.editInsert(b)
	}
	return Editing, nil
}

// EditStop finishes an edit: it restores cooked mode and writes a trailing
// newline so subsequent output starts cleanly. It is idempotent; extra
// calls after the first do nothing. Failure to restore the terminal mode is
// not escalated, as there is no recovery action at that point.
func (s *State) EditStop() error {
	if !s.editing {
		return nil
	}
	s.editing = false
	s.sess.LeaveRaw()
	if err := s.sess.WriteString("\n"); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}

// Hide erases the current edit from the screen without forgetting it, so a
// host can write its own output. Show restores the display afterwards.
func (s *State) Hide() error {
	return s.refresh(s.buf.Bytes(), s.buf.Dot(), refreshClean)
}

// Show redraws the current edit, including a completion overlay if
// completion cycling is active. It is the counterpart of Hide.
func (s *State) Show() error {
	if s.inCompletion {
		return s.refreshWithCompletion(refreshWrite)
	}
	return s.refresh(s.buf.Bytes(), s.buf.Dot(), refreshWrite)
}

// ClearScreen clears the terminal and homes the cursor.
func (s *State) ClearScreen() error {
	if err := s.sess.WriteString("\x1b[H\x1b[2J"); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}

// feedDumb advances an edit on a terminal that cannot render escape
// sequences: printable bytes are echoed and appended verbatim, and only
// end-of-line, interrupt and end-of-file bytes are recognized.
func (s *State) feedDumb(b byte) (Status, error) {
	switch b {
	case keyEnter, keyLineFeed:
		return Submitted, nil
	case keyCtrlC:
		return Interrupted, nil
	case keyCtrlD:
		return Ended, nil
	default:
		if b < 0x20 {
			return Editing, nil
		}
		s.buf.InsertAtDot(b)
		echo := b
		if s.mask {
			echo = '*'
		}
		if err := s.sess.WriteString(string([]byte{echo})); err != nil {
			return Editing, fmt.Errorf("write terminal: %w", err)
		}
		return Editing, nil
	}
}

// editInsert inserts a byte at the dot. Appending at the tail of a line
// that still fits in one row skips the full redraw and writes the single
// character directly.
func (s *State) editInsert(b byte) error {
	atEnd := s.buf.Dot() == s.buf.Len()
	s.buf.InsertAtDot(b)
	if atEnd && !s.multiLine && len(s.prompt)+s.buf.Len() < s.cols {
		c := b
		if s.mask {
			c = '*'
		}
		if err := s.sess.WriteString(string([]byte{c})); err != nil {
			return fmt.Errorf("write terminal: %w", err)
		}
		return nil
	}
	return s.refreshLine()
}

// editDelete removes the byte at the dot, like the Delete key.
func (s *State) editDelete() error {
	if s.buf.DeleteAtDot() {
		return s.refreshLine()
	}
	return nil
}

func (s *State) editMoveLeft() error {
	if s.buf.MoveLeft() {
		return s.refreshLine()
	}
	return nil
}

func (s *State) editMoveRight() error {
	if s.buf.MoveRight() {
		return s.refreshLine()
	}
	return nil
}

func (s *State) editMoveHome() error {
	if s.buf.MoveHome() {
		return s.refreshLine()
	}
	return nil
}

func (s *State) editMoveEnd() error {
	if s.buf.MoveEnd() {
		return s.refreshLine()
	}
	return nil
}

// editHistoryStep replaces the buffer with the previous or next history
// entry. The entry being scrolled away from is first updated with the
// current buffer, so the in-progress line survives a round trip through
// history. Steps beyond either end clamp and do not redraw.
func (s *State) editHistoryStep(previous bool) error {
	if s.hist.Len() < 2 {
		return nil
	}
	s.hist.Set(s.hist.Len()-1-s.histIndex, s.buf.String())
	if previous {
		s.histIndex++
	} else {
		s.histIndex--
	}
	if s.histIndex < 0 {
		s.histIndex = 0
		return nil
	}
	if s.histIndex >= s.hist.Len() {
		s.histIndex = s.hist.Len() - 1
		return nil
	}
	s.buf.SetContent(s.hist.At(s.hist.Len() - 1 - s.histIndex))
	return s.refreshLine()
}

// readEscape decodes an escape sequence, reading the two bytes that follow
// the escape byte (plus one more for the ESC [ digit ~ family) and
// dispatching the decoded operation. Unrecognized sequences are consumed
// silently; a read failure is fatal for the edit.
func (s *State) readEscape() error {
	b1, err := s.sess.ReadByte()
	if err != nil {
		return fmt.Errorf("read escape sequence: %w", err)
	}
	b2, err := s.sess.ReadByte()
	if err != nil {
		return fmt.Errorf("read escape sequence: %w", err)
	}
	switch b1 {
	case '[':
		if b2 >= '0' && b2 <= '9' {
			b3, err := s.sess.ReadByte()
			if err != nil {
				return fmt.Errorf("read escape sequence: %w", err)
			}
			if b3 == '~' && b2 == '3' {
				return s.editDelete()
			}
			return nil
		}
		switch b2 {
		case 'A':
			return s.editHistoryStep(true)
		case 'B':
			return s.editHistoryStep(false)
		case 'C':
			return s.editMoveRight()
		case 'D':
			return s.editMoveLeft()
		case 'H':
			return s.editMoveHome()
		case 'F':
			return s.editMoveEnd()
		}
	case 'O':
		switch b2 {
		case 'H':
			return s.editMoveHome()
		case 'F':
			return s.editMoveEnd()
		}
	}
	return nil
}

// ReadLine is the blocking entry point: it runs a whole edit and returns
// the finished line. On interrupt it returns ErrInterrupted; on end-of-file
// with an empty line it returns io.EOF.
//
// When the input is not a terminal, ReadLine reads one line of any length
// without prompting or editing. On a terminal that cannot render escape
// sequences it prints the prompt and reads a plain line in cooked mode.
func (s *State) ReadLine(prompt string) (string, error) {
	if !s.sess.IsTTY() {
		return s.readLineCooked("")
	}
	if s.sess.Dumb() {
		return s.readLineCooked(prompt)
	}
	if err := s.EditStart(prompt); err != nil {
		return "", err
	}
	status := Editing
	var err error
	for status == Editing && err == nil {
		status, err = s.EditFeed()
	}
	stopErr := s.EditStop()
	if err != nil {
		return "", err
	}
	switch status {
	case Interrupted:
		return "", ErrInterrupted
	case Ended:
		return "", io.EOF
	}
	if stopErr != nil {
		return "", stopErr
	}
	return s.Text(), nil
}

// readLineCooked reads one line byte by byte without entering raw mode,
// trimming the line terminator and any trailing carriage return. It returns
// io.EOF if end of input is reached before any content.
func (s *State) readLineCooked(prompt string) (string, error) {
	if prompt != "" {
		if err := s.sess.WriteString(prompt); err != nil {
			return "", fmt.Errorf("write prompt: %w", err)
		}
	}
	s.buf.Reset()
	for {
		b, err := s.sess.ReadByte()
		if err == io.EOF {
			if s.buf.Len() == 0 {
				return "", io.EOF
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("read terminal: %w", err)
		}
		if b == '\n' {
			break
		}
		s.buf.InsertAtDot(b)
	}
	line := s.Text()
	for len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, nil
}
