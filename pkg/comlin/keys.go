package comlin

// Control bytes recognized by the editor. Bytes at or above 0x20 are
// literal input; the dedicated backspace byte 0x7f is handled like Ctrl-H.
const (
	keyCtrlA     byte = 1   // move to start of line
	keyCtrlB     byte = 2   // move left
	keyCtrlC     byte = 3   // interrupt
	keyCtrlD     byte = 4   // delete forward, or end-of-file on empty line
	keyCtrlE     byte = 5   // move to end of line
	keyCtrlF     byte = 6   // move right
	keyCtrlH     byte = 8   // backspace
	keyTab       byte = 9   // completion trigger
	keyLineFeed  byte = 10  // commit
	keyCtrlK     byte = 11  // kill to end of line
	keyCtrlL     byte = 12  // clear screen and redraw
	keyEnter     byte = 13  // commit
	keyCtrlN     byte = 14  // history next
	keyCtrlP     byte = 16  // history previous
	keyCtrlT     byte = 20  // transpose characters
	keyCtrlU     byte = 21  // kill to start of line
	keyCtrlW     byte = 23  // delete previous word
	keyEsc       byte = 27  // escape sequence introducer
	keyBackspace byte = 127 // backspace
)
