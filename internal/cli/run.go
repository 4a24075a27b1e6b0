package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/todoz/internal/fs"
	"github.com/calvinalkan/todoz/internal/todo"
)

// exitInterrupted is returned when a signal ends the session.
const exitInterrupted = 130

// interruptGrace bounds how long Run waits for the loop after a signal.
const interruptGrace = 2 * timerPoll

// Run is the main entry point. Returns exit code.
//
// Process arguments are ignored: todoz is interactive only. The loop ends on
// quit or end of input (exit 0) or when sigCh delivers a signal (exit 130).
// A nil sigCh never fires.
func Run(in io.Reader, out io.Writer, errOut io.Writer, _ []string, env map[string]string, sigCh <-chan os.Signal) int {
	logger := log.NewWithOptions(errOut, log.Options{Prefix: "todoz", Level: log.WarnLevel})

	cfg := loadConfig(env, logger)

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if cfg.Source != "" {
		logger.Debug("config loaded", "path", cfg.Source)
	}

	o := NewIO(out, cfg.ColorEnabled() && isTerminal(out))
	fsys := fs.NewReal()
	store := todo.NewStore(fsys, cfg.StoreFileAbs, logger)

	printWelcome(o)

	if _, err := store.Load(); err != nil {
		o.Warn("Unable to load tasks: " + err.Error())
		o.Hint("Starting with an empty list")
	}

	s := newSession(store, nil, cfg, logger)
	s.lines = openLines(in, out, fsys, cfg, s.names(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})

	go func() {
		defer close(done)

		s.loop(ctx, o)
	}()

	select {
	case <-done:
		if err := s.lines.Close(); err != nil {
			logger.Debug("closing input failed", "err", err)
		}

		return 0
	case sig := <-sigCh:
		logger.Debug("interrupted", "signal", sig)
		cancel()

		// A running timer sees the cancellation within one poll and the loop
		// then returns. A loop blocked in a prompt never does, so the wait
		// is bounded and the terminal is restored either way.
		select {
		case <-done:
		case <-time.After(interruptGrace):
			logger.Debug("input still blocked, not waiting for it")
		}

		_ = s.lines.Close()

		o.Println()
		o.Note("✋", "Interrupted")

		return exitInterrupted
	}
}

// loadConfig never fails: problems are logged and defaults are used.
func loadConfig(env map[string]string, logger *log.Logger) todo.Config {
	home, err := todo.HomeDir(env)
	if err != nil {
		logger.Warn("cannot locate home directory, tasks will not be saved", "err", err)

		return todo.DefaultConfig()
	}

	cfg, err := todo.LoadConfig(home)
	if err != nil {
		if errors.Is(err, todo.ErrConfigInvalid) {
			logger.Warn("ignoring invalid config, using defaults", "err", err)
		} else {
			logger.Warn("cannot read config, using defaults", "err", err)
		}
	}

	return cfg
}

// openLines picks liner for an interactive terminal and a plain line reader
// for everything else.
func openLines(in io.Reader, out io.Writer, fsys fs.FS, cfg todo.Config, completions []string, logger *log.Logger) LineSource {
	if !isTerminal(in) || !isTerminal(out) {
		return newPlainLines(in, out)
	}

	historyPath := ""
	if cfg.HistoryEnabled() {
		historyPath = cfg.HistoryFile
	}

	return newTermLines(fsys, historyPath, completions, logger)
}
