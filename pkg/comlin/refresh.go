package comlin

import (
	"fmt"

	"src.comlin.dev/pkg/term"
)

// refreshFlags selects the phases of a refresh. Hide uses the clean phase
// alone and Show the write phase alone; everything else refreshes with both.
type refreshFlags uint

const (
	refreshClean refreshFlags = 1 << iota
	refreshWrite

	refreshAll = refreshClean | refreshWrite
)

// refreshLine redraws the real edit buffer with both phases.
func (s *State) refreshLine() error {
	return s.refresh(s.buf.Bytes(), s.buf.Dot(), refreshAll)
}

// refresh redraws the given content (which is the edit buffer, or a
// completion candidate overlaid on it) with the rendering strategy selected
// by the multi-line flag. Each call emits exactly one terminal write.
func (s *State) refresh(content []byte, dot int, flags refreshFlags) error {
	if s.sess.Dumb() {
		return nil
	}
	if s.multiLine {
		return s.refreshMultiLine(content, dot, flags)
	}
	return s.refreshSingleLine(content, dot, flags)
}

// refreshSingleLine rewrites the single edited row. When the line is wider
// than the terminal, a window into it slides right just enough to keep the
// cursor on screen.
func (s *State) refreshSingleLine(content []byte, dot int, flags refreshFlags) error {
	plen := len(s.prompt)
	cols := s.cols
	w := term.NewWriter(s.sess.Out())

	if plen >= cols {
		// The prompt alone fills the row; there is no room to render
		// content, and the window arithmetic below would go negative.
		w.WriteString("\r\x1b[0K")
		return flushTerm(w)
	}

	start := 0
	length := len(content)
	pos := dot
	for plen+pos >= cols {
		start++
		length--
		pos--
	}
	for plen+length > cols {
		length--
	}

	// Cursor to left edge.
	w.WriteString("\r")
	if flags&refreshWrite != 0 {
		w.WriteString(s.prompt)
		if s.mask {
			w.WriteByteN('*', length)
		} else {
			w.WriteBytes(content[start : start+length])
		}
	}
	// Erase to the right.
	w.WriteString("\x1b[0K")
	if flags&refreshWrite != 0 {
		// Move the cursor back to its position in the visible window.
		w.WriteString("\r")
		if n := plen + pos; n > 0 {
			w.Printf("\x1b[%dC", n)
		}
	}
	return flushTerm(w)
}

// refreshMultiLine rewrites an edit wrapped over several rows: it first
// walks down to the last row of the previous draw and erases upwards, then
// rewrites everything and moves the cursor to its row and column. The row
// arithmetic divides the byte offsets by the terminal width, relying on the
// one-byte-one-column assumption.
func (s *State) refreshMultiLine(content []byte, dot int, flags refreshFlags) error {
	plen := len(s.prompt)
	cols := s.cols
	rows := (plen + len(content) + cols - 1) / cols
	// Relative row of the cursor of the previous draw.
	rpos := (plen + s.oldDot + cols) / cols
	oldRows := s.oldRows
	w := term.NewWriter(s.sess.Out())

	s.oldRows = rows

	if flags&refreshClean != 0 {
		// Go to the last row used by the previous draw, then erase each
		// row going up.
		if oldRows-rpos > 0 {
			w.Printf("\x1b[%dB", oldRows-rpos)
		}
		for j := 0; j < oldRows-1; j++ {
			w.WriteString("\r\x1b[0K\x1b[1A")
		}
	}
	if flags != 0 {
		// Clean the top row.
		w.WriteString("\r\x1b[0K")
	}

	if flags&refreshWrite != 0 {
		w.WriteString(s.prompt)
		if s.mask {
			w.WriteByteN('*', len(content))
		} else {
			w.WriteBytes(content)
		}

		// A cursor landing exactly on the last column of a row needs an
		// explicit wrap, or the terminal's own autowrap would leave the
		// model and the display out of step.
		if dot > 0 && dot == len(content) && (dot+plen)%cols == 0 {
			w.WriteString("\n\r")
			rows++
			if rows > s.oldRows {
				s.oldRows = rows
			}
		}

		// Move up from the last row to the cursor row.
		rpos2 := (plen + dot + cols) / cols
		if rows-rpos2 > 0 {
			w.Printf("\x1b[%dA", rows-rpos2)
		}
		// Set the column.
		if col := (plen + dot) % cols; col > 0 {
			w.Printf("\r\x1b[%dC", col)
		} else {
			w.WriteString("\r")
		}
	}

	s.oldDot = dot
	return flushTerm(w)
}

func flushTerm(w *term.Writer) error {
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write terminal: %w", err)
	}
	return nil
}
