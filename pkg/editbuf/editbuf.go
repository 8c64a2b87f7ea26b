// Package editbuf implements the byte buffer underlying an interactive line
// edit.
//
// A Buffer is a growable byte sequence plus a dot (the editing cursor), kept
// as a byte offset into the content. All mutations maintain the invariant
// 0 <= dot <= len(content). The buffer is binary safe; it has no knowledge of
// the terminal, and display-column accounting is the caller's concern.
package editbuf

// Buffer is the content of a line being edited together with the dot.
//
// The zero value is an empty buffer with the dot at 0, ready for use.
type Buffer struct {
	content []byte
	dot     int
}

// String returns the buffer content as a string.
func (b *Buffer) String() string { return string(b.content) }

// Bytes returns the buffer content. The returned slice is owned by the
// buffer and is only valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.content }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.content) }

// Dot returns the current dot position.
func (b *Buffer) Dot() int { return b.dot }

// Reset empties the buffer and moves the dot to 0. The underlying capacity
// is kept for reuse.
func (b *Buffer) Reset() {
	b.content = b.content[:0]
	b.dot = 0
}

// SetContent replaces the entire content and moves the dot to the end.
func (b *Buffer) SetContent(s string) {
	b.content = append(b.content[:0], s...)
	b.dot = len(b.content)
}

// InsertAtDot inserts a byte at the dot and advances the dot past it.
func (b *Buffer) InsertAtDot(c byte) {
	b.content = append(b.content, 0)
	copy(b.content[b.dot+1:], b.content[b.dot:])
	b.content[b.dot] = c
	b.dot++
}

// Backspace removes the byte before the dot, moving the dot back by one. It
// reports whether the buffer changed.
func (b *Buffer) Backspace() bool {
	if b.dot == 0 || len(b.content) == 0 {
		return false
	}
	b.content = append(b.content[:b.dot-1], b.content[b.dot:]...)
	b.dot--
	return true
}

// DeleteAtDot removes the byte at the dot without moving the dot, like the
// Delete key. It reports whether the buffer changed.
func (b *Buffer) DeleteAtDot() bool {
	if b.dot >= len(b.content) {
		return false
	}
	b.content = append(b.content[:b.dot], b.content[b.dot+1:]...)
	return true
}

// DeletePrevWord removes the word before the dot along with any spaces
// between it and the dot, moving the dot to the start of the removed range.
// A word is a run of non-space bytes. It reports whether the buffer changed.
func (b *Buffer) DeletePrevWord() bool {
	pos := b.dot
	for pos > 0 && b.content[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && b.content[pos-1] != ' ' {
		pos--
	}
	if pos == b.dot {
		return false
	}
	b.content = append(b.content[:pos], b.content[b.dot:]...)
	b.dot = pos
	return true
}

// KillToEnd removes everything from the dot to the end of the buffer.
func (b *Buffer) KillToEnd() {
	b.content = b.content[:b.dot]
}

// KillToStart removes everything before the dot and moves the dot to 0.
func (b *Buffer) KillToStart() {
	b.content = append(b.content[:0], b.content[b.dot:]...)
	b.dot = 0
}

// Transpose swaps the byte before the dot with the byte at the dot, then
// advances the dot unless it is already at the last swappable position. It
// requires 0 < dot < len and reports whether the buffer changed.
func (b *Buffer) Transpose() bool {
	if b.dot == 0 || b.dot >= len(b.content) {
		return false
	}
	b.content[b.dot-1], b.content[b.dot] = b.content[b.dot], b.content[b.dot-1]
	if b.dot != len(b.content)-1 {
		b.dot++
	}
	return true
}

// MoveLeft moves the dot one byte to the left, reporting whether it moved.
func (b *Buffer) MoveLeft() bool {
	if b.dot == 0 {
		return false
	}
	b.dot--
	return true
}

// MoveRight moves the dot one byte to the right, reporting whether it moved.
func (b *Buffer) MoveRight() bool {
	if b.dot == len(b.content) {
		return false
	}
	b.dot++
	return true
}

// MoveHome moves the dot to the start of the buffer, reporting whether it
// moved.
func (b *Buffer) MoveHome() bool {
	if b.dot == 0 {
		return false
	}
	b.dot = 0
	return true
}

// MoveEnd moves the dot to the end of the buffer, reporting whether it
// moved.
func (b *Buffer) MoveEnd() bool {
	if b.dot == len(b.content) {
		return false
	}
	b.dot = len(b.content)
	return true
}
