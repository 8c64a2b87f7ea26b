//go:build unix

package sys

import (
	"golang.org/x/sys/unix"
)

// Termios is a platform-independent version of the terminal attribute
// structure manipulated by tcgetattr and tcsetattr.
type Termios unix.Termios

// TermiosForFd returns the terminal attributes of the given file descriptor.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies term to the given file descriptor.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrDrainIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetRaw configures the attributes for raw mode: no echo, no canonical
// input, no signal-generating characters, no break or flow control on input,
// no output post-processing, 8-bit characters, and a 1-byte minimum blocking
// read with no timeout.
func (term *Termios) SetRaw() {
	term.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	term.Oflag &^= unix.OPOST
	term.Cflag |= unix.CS8
	term.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	term.Cc[unix.VMIN] = 1
	term.Cc[unix.VTIME] = 0
}
