package term

import (
	"bytes"
	"fmt"
	"io"
)

// Writer accumulates terminal output and flushes it in a single write.
// Batching a whole refresh into one write is what keeps the display from
// flickering and from interleaving with asynchronous output of the host.
type Writer struct {
	buf bytes.Buffer
	out io.Writer
}

// NewWriter returns a Writer that flushes to the given destination.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteString appends a string to the pending output.
func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
}

// WriteBytes appends raw bytes to the pending output.
func (w *Writer) WriteBytes(p []byte) {
	w.buf.Write(p)
}

// WriteByteN appends n copies of a byte to the pending output.
func (w *Writer) WriteByteN(c byte, n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(c)
	}
}

// Printf appends formatted output to the pending output.
func (w *Writer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&w.buf, format, args...)
}

// Flush writes all pending output in one write and resets the Writer for
// reuse.
func (w *Writer) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	_, err := w.out.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}
