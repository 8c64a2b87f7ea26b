package demo

import (
	"path/filepath"
	"testing"

	"src.comlin.dev/pkg/history"
	"src.comlin.dev/pkg/must"
	"src.comlin.dev/pkg/prog"
	"src.comlin.dev/pkg/prog/progtest"
)

// The tests drive the demo through pipes. Pipes are not terminals, so the
// editor falls back to reading plain lines without prompting, which keeps
// the output deterministic.

func run(t *testing.T, input string, args ...string) (*progtest.Fixture, int) {
	t.Helper()
	f := progtest.Setup(t)
	f.FeedIn(input)
	exit := prog.Run(f.Fds(), append([]string{"comlin"}, args...), Program{})
	return f, exit
}

func TestEchoesLines(t *testing.T) {
	f, exit := run(t, "hello\nworld\n")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, 1, "echo: 'hello'\necho: 'world'\n")
}

func TestEmptyLinesIgnored(t *testing.T) {
	f, exit := run(t, "\n\n")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, 1, "")
}

func TestRejectsArguments(t *testing.T) {
	f, exit := run(t, "", "extra")
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOutSnippet(t, 2, "comlin accepts no arguments")
}

func TestUnrecognizedCommand(t *testing.T) {
	f, _ := run(t, "/bogus\n")
	f.TestOut(t, 1, "Unrecognized command: /bogus\n")
}

func TestHistoryFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "history.txt")
	_, exit := run(t, "one\ntwo\n", "-history", fname)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0", exit)
	}
	if got := must.ReadFileString(fname); got != "one\ntwo\n" {
		t.Errorf("history file = %q, want %q", got, "one\ntwo\n")
	}
}

func TestHistoryFileReloaded(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "history.txt")
	must.WriteFileString(fname, "earlier\n")
	_, exit := run(t, "later\n", "-history", fname)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0", exit)
	}
	if got := must.ReadFileString(fname); got != "earlier\nlater\n" {
		t.Errorf("history file = %q, want %q", got, "earlier\nlater\n")
	}
}

func TestHistorylenCommand(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "history.txt")
	_, exit := run(t, "/historylen 1\none\ntwo\n", "-history", fname)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0", exit)
	}
	if got := must.ReadFileString(fname); got != "two\n" {
		t.Errorf("history file = %q, want %q", got, "two\n")
	}
}

func TestHistorylenCommand_BadArgument(t *testing.T) {
	f, exit := run(t, "/historylen x\n")
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOutSnippet(t, 2, "usage: /historylen <n>")
}

func TestHistoryDB(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "history.db")
	_, exit := run(t, "alpha\nbeta\n", "-db", fname)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0", exit)
	}
	db := must.OK1(history.OpenBolt(fname))
	defer db.Close()
	lines := must.OK1(db.AllLines())
	if len(lines) != 2 || lines[0] != "alpha" || lines[1] != "beta" {
		t.Errorf("db lines = %q, want [alpha beta]", lines)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	histname := filepath.Join(dir, "history.txt")
	confname := filepath.Join(dir, "comlin.yaml")
	must.WriteFileString(confname, "history-file: "+histname+"\n")
	_, exit := run(t, "configured\n", "-config", confname)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0", exit)
	}
	if got := must.ReadFileString(histname); got != "configured\n" {
		t.Errorf("history file = %q, want %q", got, "configured\n")
	}
}

func TestConfigFile_Invalid(t *testing.T) {
	confname := filepath.Join(t.TempDir(), "comlin.yaml")
	must.WriteFileString(confname, "[not a mapping")
	f, exit := run(t, "", "-config", confname)
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOutSnippet(t, 2, "parse config")
}

func TestConfigFile_Missing(t *testing.T) {
	f, exit := run(t, "", "-config", filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOutSnippet(t, 2, "read config")
}

func TestMakeConfig_FlagsOverrideFile(t *testing.T) {
	confname := filepath.Join(t.TempDir(), "comlin.yaml")
	must.WriteFileString(confname, "prompt: 'conf> '\nmulti-line: true\n")
	cfg := must.OK1(makeConfig(&prog.Flags{Config: confname, Prompt: "flag> "}))
	if cfg.Prompt != "flag> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "flag> ")
	}
	if !cfg.MultiLine {
		t.Errorf("MultiLine = false, want true")
	}
	if cfg.HistoryMax != 100 {
		t.Errorf("HistoryMax = %d, want the default 100", cfg.HistoryMax)
	}
}

func TestPrefixCompleter(t *testing.T) {
	complete := prefixCompleter([]string{"hello", "hello there", "help"})
	if got := complete("hell"); len(got) != 2 {
		t.Errorf("complete(hell) = %q, want two candidates", got)
	}
	if got := complete("x"); got != nil {
		t.Errorf("complete(x) = %q, want nil", got)
	}
	if got := complete(""); got != nil {
		t.Errorf("complete of empty line = %q, want nil", got)
	}
}
