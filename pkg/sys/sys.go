// Package sys provides thin wrappers around the system facilities the line
// editor needs: terminal attributes, window geometry and readiness polling.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsATTY reports whether the given file is a terminal.
func IsATTY(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the query fails.
func WinSize(file *os.File) (row, col int) {
	return winSize(file)
}
