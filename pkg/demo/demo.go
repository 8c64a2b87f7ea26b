// Package demo provides the default subprogram of the comlin command, an
// interactive editor that echoes every line typed into it. It doubles as a
// smoke test for the library: multi-line rendering, masking, completion,
// history persistence and asynchronous output can all be switched on from
// the command line or a configuration file.
package demo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"src.comlin.dev/pkg/comlin"
	"src.comlin.dev/pkg/history"
	"src.comlin.dev/pkg/logutil"
	"src.comlin.dev/pkg/prog"
	"src.comlin.dev/pkg/sys"
)

var logger = logutil.GetLogger("[demo] ")

// Config configures the editor. Every field is optional; the zero value is
// usable.
type Config struct {
	Prompt      string   `yaml:"prompt"`
	MultiLine   bool     `yaml:"multi-line"`
	Mask        bool     `yaml:"mask"`
	HistoryFile string   `yaml:"history-file"`
	HistoryDB   string   `yaml:"history-db"`
	HistoryMax  int      `yaml:"history-max"`
	Completions []string `yaml:"completions"`
}

const defaultPrompt = "hello> "

var defaultCompletions = []string{"hello", "hello there"}

// Program is the demo subprogram. It runs unconditionally, so it should be
// the last program of a Composite.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("comlin accepts no arguments")
	}
	cfg, err := makeConfig(f)
	if err != nil {
		return err
	}

	termName := os.Getenv("TERM")
	if f.Dumb {
		termName = "dumb"
	}
	ed := comlin.NewState(fds[0], fds[1], termName, cfg.HistoryMax)
	defer ed.Close()
	ed.SetMultiLine(cfg.MultiLine)
	ed.SetMaskMode(cfg.Mask)
	ed.SetCompleter(prefixCompleter(cfg.Completions))

	if err := loadHistory(ed, cfg); err != nil {
		// A missing history file just means a first run.
		logger.Println("cannot load history:", err)
	}

	for {
		var line string
		if f.Async {
			line, err = readLineAsync(ed, fds[0], fds[1], cfg.Prompt)
		} else {
			line, err = ed.ReadLine(cfg.Prompt)
		}
		if err == io.EOF || errors.Is(err, comlin.ErrInterrupted) {
			return nil
		}
		if err != nil {
			return err
		}
		switch {
		case line == "":
		case strings.HasPrefix(line, "/"):
			runCommand(ed, fds, line)
		default:
			fmt.Fprintf(fds[1], "echo: '%s'\n", line)
			ed.HistoryAdd(line)
			if err := saveHistory(ed, cfg); err != nil {
				logger.Println("cannot save history:", err)
			}
		}
	}
}

// makeConfig builds the effective configuration: the configuration file, if
// any, is read first and command-line flags override it.
func makeConfig(f *prog.Flags) (*Config, error) {
	cfg := &Config{
		Prompt:      defaultPrompt,
		HistoryMax:  history.DefaultMaxLen,
		Completions: defaultCompletions,
	}
	if f.Config != "" {
		content, err := os.ReadFile(f.Config)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if cfg.Prompt == "" {
			cfg.Prompt = defaultPrompt
		}
		if cfg.HistoryMax == 0 {
			cfg.HistoryMax = history.DefaultMaxLen
		}
		if len(cfg.Completions) == 0 {
			cfg.Completions = defaultCompletions
		}
	}
	if f.Prompt != "" {
		cfg.Prompt = f.Prompt
	}
	if f.History != "" {
		cfg.HistoryFile = f.History
	}
	if f.DB != "" {
		cfg.HistoryDB = f.DB
	}
	if f.MultiLine {
		cfg.MultiLine = true
	}
	if f.Mask {
		cfg.Mask = true
	}
	return cfg, nil
}

func prefixCompleter(completions []string) comlin.CompleteFunc {
	return func(line string) []string {
		if line == "" {
			return nil
		}
		var candidates []string
		for _, c := range completions {
			if strings.HasPrefix(c, line) {
				candidates = append(candidates, c)
			}
		}
		return candidates
	}
}

func loadHistory(ed *comlin.State, cfg *Config) error {
	switch {
	case cfg.HistoryDB != "":
		return ed.HistoryLoadDB(cfg.HistoryDB)
	case cfg.HistoryFile != "":
		return ed.HistoryLoad(cfg.HistoryFile)
	}
	return nil
}

func saveHistory(ed *comlin.State, cfg *Config) error {
	switch {
	case cfg.HistoryDB != "":
		return ed.HistorySaveDB(cfg.HistoryDB)
	case cfg.HistoryFile != "":
		return ed.HistorySave(cfg.HistoryFile)
	}
	return nil
}

func runCommand(ed *comlin.State, fds [3]*os.File, line string) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "/mask":
		ed.SetMaskMode(true)
	case "/unmask":
		ed.SetMaskMode(false)
	case "/multiline":
		ed.SetMultiLine(true)
	case "/singleline":
		ed.SetMultiLine(false)
	case "/historylen":
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			fmt.Fprintln(fds[2], "usage: /historylen <n>")
			return
		}
		ed.HistorySetMaxLen(n)
	default:
		fmt.Fprintf(fds[1], "Unrecognized command: %s\n", line)
	}
}

// readLineAsync runs one edit while interleaving it with output produced
// outside the editor. Whenever a second passes with no keypress, the edit is
// hidden, a message is printed, and the edit is drawn again below it.
func readLineAsync(ed *comlin.State, in, out *os.File, prompt string) (string, error) {
	if err := ed.EditStart(prompt); err != nil {
		return "", err
	}
	counter := 0
	status := comlin.Editing
	var feedErr error
	for status == comlin.Editing && feedErr == nil {
		ready, err := sys.WaitForRead(time.Second, in)
		if err != nil {
			feedErr = err
			break
		}
		if !ready[0] {
			// Timeout with no input.
			if err := ed.Hide(); err != nil {
				feedErr = err
				break
			}
			fmt.Fprintf(out, "Async output %d\n", counter)
			counter++
			if err := ed.Show(); err != nil {
				feedErr = err
				break
			}
			continue
		}
		status, feedErr = ed.EditFeed()
	}
	stopErr := ed.EditStop()
	if errors.Is(feedErr, io.EOF) {
		// Input closed under the editor.
		return "", io.EOF
	}
	if feedErr != nil {
		return "", feedErr
	}
	switch status {
	case comlin.Interrupted:
		return "", comlin.ErrInterrupted
	case comlin.Ended:
		return "", io.EOF
	}
	if stopErr != nil {
		return "", stopErr
	}
	return ed.Text(), nil
}
