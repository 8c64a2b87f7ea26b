// Package history implements the bounded history kept by a line-editing
// session, along with its persistence.
//
// The store is an ordered sequence of past lines, oldest first. It is
// bounded: once the maximum length is reached, adding a new entry evicts the
// oldest one. Adding a line identical to the most recent entry is a no-op,
// so consecutive duplicates collapse into one entry.
//
// Entries can be persisted either to a plain text file, one entry per line,
// or to a bbolt database (see BoltStore).
package history

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultMaxLen is the default bound on the number of entries.
const DefaultMaxLen = 100

// Store is a bounded ordered sequence of past lines. It has no knowledge of
// the terminal.
type Store struct {
	entries []string
	maxLen  int
}

// NewStore creates an empty store bounded by maxLen entries. A maxLen of
// zero disables the store: Add never retains anything.
func NewStore(maxLen int) *Store {
	if maxLen < 0 {
		maxLen = 0
	}
	return &Store{maxLen: maxLen}
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// At returns the entry at index i, 0 being the oldest.
func (s *Store) At(i int) string { return s.entries[i] }

// Set overwrites the entry at index i. It is used by the editor to mirror
// the in-progress line into the live bottom entry while scrolling.
func (s *Store) Set(i int, line string) {
	s.entries[i] = line
}

// Entries returns a copy of all entries, oldest first.
func (s *Store) Entries() []string {
	return append([]string(nil), s.entries...)
}

// Add appends a line to the store, evicting the oldest entry if the store is
// full. Adding a duplicate of the most recent entry is a no-op. It reports
// whether the store changed.
func (s *Store) Add(line string) bool {
	if s.maxLen == 0 {
		return false
	}
	if n := len(s.entries); n > 0 && s.entries[n-1] == line {
		return false
	}
	if len(s.entries) == s.maxLen {
		s.entries = append(s.entries[:0], s.entries[1:]...)
	}
	s.entries = append(s.entries, line)
	return true
}

// RemoveLast drops the newest entry. It is used by the editor to pop the
// live bottom entry when an edit finishes.
func (s *Store) RemoveLast() {
	if n := len(s.entries); n > 0 {
		s.entries = s.entries[:n-1]
	}
}

// SetMaxLen changes the bound on the number of entries. When shrinking below
// the current length, the oldest entries are discarded.
func (s *Store) SetMaxLen(n int) {
	if n < 0 {
		n = 0
	}
	s.maxLen = n
	if len(s.entries) > n {
		kept := len(s.entries) - n
		s.entries = append(s.entries[:0], s.entries[kept:]...)
	}
}

// MaxLen returns the current bound on the number of entries.
func (s *Store) MaxLen() int { return s.maxLen }

// Save writes all entries to the named file, one per line, creating or
// truncating it with owner-only read/write permission.
func (s *Store) Save(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, entry := range s.entries {
		w.WriteString(entry)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Load reads the named file line by line, feeding each line through Add.
// Lines may be terminated by either a bare newline or a carriage return. A
// missing file is an error, not an empty history.
func (s *Store) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		// Entries written on systems with CRLF line endings carry a
		// trailing carriage return; the entry ends at the first one.
		if i := strings.IndexByte(line, '\r'); i >= 0 {
			line = line[:i]
		}
		s.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	return nil
}
