// Comlin is an interactive demo of the comlin line-editing library. It
// reads lines with full editing, history and completion, and echoes them
// back. Run it with -help for the supported flags.
package main

import (
	"os"

	"src.comlin.dev/pkg/buildinfo"
	"src.comlin.dev/pkg/demo"
	"src.comlin.dev/pkg/keycodes"
	"src.comlin.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			buildinfo.Program{}, keycodes.Program{}, demo.Program{})))
}
