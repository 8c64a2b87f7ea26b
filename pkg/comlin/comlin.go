// Package comlin implements a small readline-style line editor for character
// terminals.
//
// The editor turns a raw byte stream from a terminal into a single logical
// input line, rendering the in-progress edit back to the same terminal with
// a minimal subset of VT100 escape sequences. It supports cursor movement,
// kill operations, history recall, tab completion, masked input and both
// single-line and multi-line rendering.
//
// The API is deliberately non-blocking per call: EditStart begins an edit,
// each EditFeed consumes exactly one input byte, and EditStop finishes the
// edit. A host with its own event loop waits for input readiness itself and
// calls EditFeed only when a byte is available, bracketing any asynchronous
// output of its own with Hide and Show. ReadLine wraps the cycle into a
// blocking call for simple hosts.
//
// Display-column accounting assumes one input byte occupies one display
// column; wide characters and multi-byte sequences are not understood.
package comlin

import (
	"os"

	"src.comlin.dev/pkg/editbuf"
	"src.comlin.dev/pkg/history"
	"src.comlin.dev/pkg/term"
)

// Status is the result of feeding one byte to an edit.
type Status int

const (
	// Editing means the line is still being edited; keep feeding.
	Editing Status = iota
	// Submitted means the user finished the line; Text returns it.
	Submitted
	// Interrupted means the user pressed the interrupt key.
	Interrupted
	// Ended means the user pressed the end-of-file key on an empty line.
	Ended
)

func (s Status) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitted:
		return "submitted"
	case Interrupted:
		return "interrupted"
	case Ended:
		return "ended"
	}
	return "invalid status"
}

// CompleteFunc returns completion candidates for the given line content. It
// is called anew on each completion keystroke.
type CompleteFunc func(line string) []string

// State is a line-editing session on one terminal. At most one edit (one
// EditStart/EditStop bracket) may be active at a time, and a State must not
// be used concurrently from multiple goroutines.
type State struct {
	sess     *term.Session
	buf      editbuf.Buffer
	hist     *history.Store
	complete CompleteFunc

	multiLine bool
	mask      bool

	// State of the edit in progress.
	editing   bool
	prompt    string
	cols      int
	histIndex int

	// Refresh state for multi-line rendering: the dot and row count of the
	// previous draw, used to erase exactly the stale rows.
	oldDot  int
	oldRows int

	// Completion cycling state.
	inCompletion  bool
	completionIdx int
}

// NewState creates a line-editing session for a terminal connected to the
// given input and output files. termName identifies the terminal type
// (conventionally $TERM); terminals known not to support escape sequences
// degrade the editor to a plain echoing mode. historyMax bounds the number
// of retained history entries; zero disables history.
func NewState(in, out *os.File, termName string, historyMax int) *State {
	return &State{
		sess: term.NewSession(in, out, termName),
		hist: history.NewStore(historyMax),
	}
}

// SetMultiLine switches between single-line rendering, which scrolls
// horizontally within one terminal row, and multi-line rendering, which
// wraps the edited line across as many rows as needed.
func (s *State) SetMultiLine(on bool) { s.multiLine = on }

// SetMaskMode controls whether input is rendered as asterisks, for passwords
// and other secrets.
func (s *State) SetMaskMode(on bool) { s.mask = on }

// SetCompleter registers the completion source invoked on the completion
// key. A nil completer disables completion.
func (s *State) SetCompleter(f CompleteFunc) { s.complete = f }

// SetColumns overrides the terminal width used for rendering. Hosts that
// track window size changes can push the new width here; otherwise the
// width is measured once and cached.
func (s *State) SetColumns(n int) {
	s.sess.SetColumns(n)
	if s.editing && n > 0 {
		s.cols = n
	}
}

// Text returns the current content of the edit buffer. After EditFeed
// returns Submitted this is the finished line.
func (s *State) Text() string { return s.buf.String() }

// HistoryAdd appends a line to the in-memory history, reporting whether the
// history changed. Consecutive duplicates are suppressed.
func (s *State) HistoryAdd(line string) bool { return s.hist.Add(line) }

// HistorySetMaxLen rebounds the history, discarding the oldest entries if
// the new bound is smaller than the current length.
func (s *State) HistorySetMaxLen(n int) { s.hist.SetMaxLen(n) }

// HistorySave writes the history to the named file, one entry per line,
// readable and writable only by the owner.
func (s *State) HistorySave(path string) error { return s.hist.Save(path) }

// HistoryLoad reads history entries from the named file. A missing file is
// an error.
func (s *State) HistoryLoad(path string) error { return s.hist.Load(path) }

// HistorySaveDB writes the history to the bbolt database at the given
// path, creating it if needed and replacing any previous contents.
func (s *State) HistorySaveDB(path string) error {
	db, err := history.OpenBolt(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.SaveFrom(s.hist)
}

// HistoryLoadDB reads history entries from the bbolt database at the given
// path.
func (s *State) HistoryLoadDB(path string) error {
	db, err := history.OpenBolt(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.LoadInto(s.hist)
}

// Close releases the session, restoring cooked mode if an edit was still in
// progress. Unlike EditStop it writes nothing, not even a trailing newline.
// Restoration failures are not reported; there is no recovery action
// available at that point.
func (s *State) Close() error {
	s.editing = false
	s.sess.LeaveRaw()
	return nil
}
