package prog_test

import (
	"fmt"
	"os"
	"testing"

	. "src.comlin.dev/pkg/prog"
	"src.comlin.dev/pkg/prog/progtest"
)

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	if p.writeOut != "" {
		fmt.Fprint(fds[1], p.writeOut)
	}
	return p.returnErr
}

func run(t *testing.T, p Program, args ...string) (*progtest.Fixture, int) {
	t.Helper()
	f := progtest.Setup(t)
	exit := Run(f.Fds(), append([]string{"comlin"}, args...), p)
	return f, exit
}

func TestBadFlag(t *testing.T) {
	f, exit := run(t, testProgram{}, "-bad-flag")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOutSnippet(t, 2, "flag provided but not defined: -bad-flag")
	f.TestOutSnippet(t, 2, "Usage:")
}

// -h is not defined and is treated as a bad flag.
func TestDashH(t *testing.T) {
	f, exit := run(t, testProgram{}, "-h")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOutSnippet(t, 2, "flag provided but not defined: -h")
}

func TestHelp(t *testing.T) {
	f, exit := run(t, testProgram{}, "-help")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOutSnippet(t, 1, "Usage: comlin [flags]")
}

func TestNoSuitableSubprogram(t *testing.T) {
	f, exit := run(t, testProgram{notSuitable: true})
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOut(t, 2, "internal error: no suitable subprogram\n")
}

func TestComposite(t *testing.T) {
	f, exit := run(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}))
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, 1, "program 2")
}

func TestBadUsage(t *testing.T) {
	f, exit := run(t, testProgram{returnErr: BadUsage("bad usage")})
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOutSnippet(t, 2, "bad usage")
	f.TestOutSnippet(t, 2, "Usage:")
}

func TestExit(t *testing.T) {
	f, exit := run(t, testProgram{returnErr: Exit(3)})
	if exit != 3 {
		t.Errorf("exit = %d, want 3", exit)
	}
	f.TestOut(t, 2, "")
}

func TestExit_Zero(t *testing.T) {
	_, exit := run(t, testProgram{returnErr: Exit(0)})
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
}

func TestFlagParsing(t *testing.T) {
	var got *Flags
	capture := programFunc(func(fds [3]*os.File, f *Flags, args []string) error {
		got = f
		return nil
	})
	_, exit := run(t, capture,
		"-multiline", "-mask", "-prompt", "% ", "-history", "hist.txt")
	if exit != 0 {
		t.Fatalf("exit = %d, want 0", exit)
	}
	if !got.MultiLine || !got.Mask {
		t.Errorf("MultiLine = %v, Mask = %v, want both true", got.MultiLine, got.Mask)
	}
	if got.Prompt != "% " {
		t.Errorf("Prompt = %q, want %q", got.Prompt, "% ")
	}
	if got.History != "hist.txt" {
		t.Errorf("History = %q, want %q", got.History, "hist.txt")
	}
}

type programFunc func(fds [3]*os.File, f *Flags, args []string) error

func (p programFunc) Run(fds [3]*os.File, f *Flags, args []string) error {
	return p(fds, f, args)
}
