package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/todoz/internal/todo"
)

const promptText = "  ❯ "

// session is one run of the command loop.
type session struct {
	store    *todo.Store
	lines    LineSource
	cfg      todo.Config
	logger   *log.Logger
	newTimer func(focus, rest time.Duration) *Timer

	commands []*Command
	byName   map[string]*Command
}

func newSession(store *todo.Store, lines LineSource, cfg todo.Config, logger *log.Logger) *session {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &session{
		store:    store,
		lines:    lines,
		cfg:      cfg,
		logger:   logger,
		newTimer: NewTimer,
	}

	s.commands = []*Command{
		s.listCmd(),
		s.addCmd(),
		s.toggleCmd(),
		s.removeCmd(),
		s.clearCmd(),
		s.pomodoroCmd(),
		s.helpCmd(),
		quitCmd(),
	}

	s.byName = make(map[string]*Command, len(s.commands))
	for _, c := range s.commands {
		s.byName[c.Name()] = c
	}

	return s
}

// names returns the command words, for tab completion.
func (s *session) names() []string {
	out := make([]string, 0, len(s.commands))
	for _, c := range s.commands {
		out = append(out, c.Name())
	}

	return out
}

// loop reads and executes lines until quit, end of input, or ctx is done.
func (s *session) loop(ctx context.Context, o *IO) {
	for ctx.Err() == nil {
		line, err := s.lines.Prompt(promptText)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Warn("reading input failed", "err", err)
			}

			o.Println()
			printFarewell(o)

			return
		}

		line = strings.TrimSpace(line)
		if line != "" {
			s.lines.AppendHistory(line)
		}

		err = s.execute(ctx, o, line)
		if errors.Is(err, errQuit) {
			printFarewell(o)

			return
		}

		if err != nil {
			s.report(o, err)
		}
	}
}

// execute runs one trimmed input line. The first word picks the command, the
// rest of the line is its argument. An empty line lists tasks.
func (s *session) execute(ctx context.Context, o *IO, line string) error {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	if name == "" {
		name = "list"
	}

	c, ok := s.byName[name]
	if !ok {
		return unknownCommand(name)
	}

	return c.Run(ctx, o, arg)
}

func (s *session) report(o *IO, err error) {
	var h *hintError
	if errors.As(err, &h) {
		o.Note(h.symbol, h.msg)

		return
	}

	var te *todo.Error
	if errors.As(err, &te) && te.Kind == todo.KindNotFound {
		o.Note("🔍", "Task "+todo.FormatID(te.ID)+" not found")

		return
	}

	s.logger.Debug("command failed", "err", err)
	o.Problem(err.Error())
}
