// Package progtest provides a framework for testing subprograms.
//
// The entry point of the framework is the Setup function, which returns a
// Fixture holding pipes for all three standard files. Tests feed input with
// FeedIn, call prog.Run with Fixture.Fds, and verify the output with TestOut
// and TestOutSnippet.
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"src.comlin.dev/pkg/must"
)

// Fixture holds the pipes connected to the three standard files of a
// subprogram under test.
type Fixture struct {
	pipes [3]pipe
}

type pipe struct {
	r, w *os.File
	// Populated by a draining goroutine for the output pipes.
	saved chan string
}

// Setup sets up a Fixture for testing. The caller does not need to clean it
// up; that is registered with the testing framework.
func Setup(t *testing.T) *Fixture {
	f := &Fixture{}
	for i := range f.pipes {
		r, w := must.Pipe()
		f.pipes[i] = pipe{r: r, w: w}
		if i > 0 {
			saved := make(chan string, 1)
			f.pipes[i].saved = saved
			go func(r *os.File) {
				b, _ := io.ReadAll(r)
				saved <- string(b)
			}(r)
		}
	}
	t.Cleanup(func() {
		for _, p := range f.pipes {
			p.r.Close()
			p.w.Close()
		}
	})
	return f
}

// Fds returns the file descriptors to pass to prog.Run.
func (f *Fixture) Fds() [3]*os.File {
	return [3]*os.File{f.pipes[0].r, f.pipes[1].w, f.pipes[2].w}
}

// FeedIn makes the given text available from the input file, and closes the
// write end so the subprogram sees end of input afterwards.
func (f *Fixture) FeedIn(content string) {
	_, err := f.pipes[0].w.WriteString(content)
	if err != nil {
		panic(fmt.Sprintf("write to input pipe: %v", err))
	}
	f.pipes[0].w.Close()
}

// Get returns the output written to the given file descriptor, 1 or 2. It
// may be called only after the subprogram has finished.
func (f *Fixture) Get(fd int) string {
	p := &f.pipes[fd]
	if p.saved == nil {
		panic(fmt.Sprintf("get output of fd %d", fd))
	}
	p.w.Close()
	saved := <-p.saved
	// Allow repeated reads.
	p.saved <- saved
	return saved
}

// TestOut checks that the output on the given file descriptor is exactly the
// given text.
func (f *Fixture) TestOut(t *testing.T, fd int, wantOut string) {
	t.Helper()
	if out := f.Get(fd); out != wantOut {
		t.Errorf("got out %q, want %q", out, wantOut)
	}
}

// TestOutSnippet checks that the output on the given file descriptor
// contains the given text.
func (f *Fixture) TestOutSnippet(t *testing.T, fd int, wantOutSnippet string) {
	t.Helper()
	if out := f.Get(fd); !strings.Contains(out, wantOutSnippet) {
		t.Errorf("got out %q, want string containing %q", out, wantOutSnippet)
	}
}
