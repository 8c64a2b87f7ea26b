package term

import (
	"testing"
)

// countingWriter records every Write call it receives.
type countingWriter struct {
	writes [][]byte
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, append([]byte(nil), p...))
	return len(p), nil
}

func TestWriter_FlushBatchesIntoOneWrite(t *testing.T) {
	var cw countingWriter
	w := NewWriter(&cw)
	w.WriteString("\r")
	w.WriteString("> ")
	w.WriteBytes([]byte("hello"))
	w.WriteByteN('*', 3)
	w.Printf("\x1b[%dC", 7)
	if err := w.Flush(); err != nil {
		t.Fatal("Flush errors:", err)
	}

	if len(cw.writes) != 1 {
		t.Fatalf("got %d writes, want 1", len(cw.writes))
	}
	want := "\r> hello***\x1b[7C"
	if got := string(cw.writes[0]); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}

func TestWriter_EmptyFlushWritesNothing(t *testing.T) {
	var cw countingWriter
	w := NewWriter(&cw)
	if err := w.Flush(); err != nil {
		t.Fatal("Flush errors:", err)
	}
	if len(cw.writes) != 0 {
		t.Errorf("got %d writes, want 0", len(cw.writes))
	}
}

func TestWriter_Reuse(t *testing.T) {
	var cw countingWriter
	w := NewWriter(&cw)
	w.WriteString("a")
	w.Flush()
	w.WriteString("b")
	w.Flush()
	if len(cw.writes) != 2 {
		t.Fatalf("got %d writes, want 2", len(cw.writes))
	}
	if string(cw.writes[1]) != "b" {
		t.Errorf("second write = %q, want %q", cw.writes[1], "b")
	}
}
