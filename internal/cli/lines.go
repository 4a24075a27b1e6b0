package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/calvinalkan/todoz/internal/fs"
)

// LineSource is where the command loop reads its input from.
//
// Prompt shows prompt and returns the next line without its line ending.
// It returns io.EOF once input is exhausted or the user aborts.
type LineSource interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// plainLines reads lines from any reader, echoing the prompt to out.
// Used for pipes, files and tests.
type plainLines struct {
	r   *bufio.Reader
	out io.Writer
}

func newPlainLines(in io.Reader, out io.Writer) *plainLines {
	if in == nil {
		in = strings.NewReader("")
	}

	return &plainLines{r: bufio.NewReader(in), out: out}
}

func (p *plainLines) Prompt(prompt string) (string, error) {
	_, _ = io.WriteString(p.out, prompt)

	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (p *plainLines) AppendHistory(string) {}

func (p *plainLines) Close() error { return nil }

// termLines is a liner-backed line editor with persistent history.
type termLines struct {
	state       *liner.State
	fsys        fs.FS
	historyPath string
	logger      *log.Logger
}

func newTermLines(fsys fs.FS, historyPath string, completions []string, logger *log.Logger) *termLines {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(func(line string) []string {
		var out []string

		for _, c := range completions {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}

		return out
	})

	t := &termLines{state: state, fsys: fsys, historyPath: historyPath, logger: logger}

	if historyPath != "" {
		data, err := fsys.ReadFile(historyPath)
		if err == nil {
			_, _ = state.ReadHistory(bytes.NewReader(data))
		} else if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("cannot read prompt history", "path", historyPath, "err", err)
		}
	}

	return t
}

// Prompt maps Ctrl-C to io.EOF so an aborted confirmation cancels and an
// aborted command line leaves the loop.
func (t *termLines) Prompt(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}

	return line, err
}

func (t *termLines) AppendHistory(line string) {
	t.state.AppendHistory(line)
}

// Close saves history and restores the terminal.
func (t *termLines) Close() error {
	if t.historyPath != "" {
		if err := t.saveHistory(); err != nil {
			t.logger.Warn("cannot save prompt history", "path", t.historyPath, "err", err)
		}
	}

	return t.state.Close()
}

func (t *termLines) saveHistory() error {
	var buf bytes.Buffer
	if _, err := t.state.WriteHistory(&buf); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := t.fsys.MkdirAll(filepath.Dir(t.historyPath), 0o755); err != nil {
		return err
	}

	return t.fsys.WriteFileAtomic(t.historyPath, buf.Bytes(), 0o600)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
