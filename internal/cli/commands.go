package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/todoz/internal/todo"
)

const confirmClearPrompt = "    🤔 Remove all tasks? This cannot be undone (y/n): "

func (s *session) listCmd() *Command {
	return &Command{
		Usage: "list",
		Icon:  "📋",
		Short: "View your tasks",
		Long:  "Show every task with its number and state, plus overall progress.\nAn empty line does the same.",
		Exec: func(_ context.Context, o *IO, _ string) error {
			s.showTasks(o)

			return nil
		},
	}
}

// showTasks renders the store's current list and progress.
func (s *session) showTasks(o *IO) {
	printTasks(o, s.store.Tasks(), s.store.Progress())
}

func (s *session) addCmd() *Command {
	return &Command{
		Usage: "add <description>",
		Icon:  "➕",
		Short: "Create a new task",
		Long:  "Add a task. Everything after 'add' is the description, spaces included.",
		Exec: func(_ context.Context, o *IO, arg string) error {
			if arg == "" {
				return hint("💭", "Please describe your task")
			}

			if _, err := s.store.Add(arg); err != nil {
				return err
			}

			o.Success("✨", "Task added successfully")
			s.showTasks(o)

			return nil
		},
	}
}

func (s *session) toggleCmd() *Command {
	return &Command{
		Usage: "x <id>",
		Icon:  "✅",
		Short: "Toggle task completion",
		Long:  "Mark a task done, or open again if it already is.",
		Exec: func(_ context.Context, o *IO, arg string) error {
			id, err := parseTaskArg(arg, "Which task? (provide the task number)")
			if err != nil {
				return err
			}

			task, err := s.store.Toggle(id)
			if err != nil {
				return err
			}

			o.Success("✅", "Task "+todo.FormatID(task.ID)+" updated")
			s.showTasks(o)

			return nil
		},
	}
}

func (s *session) removeCmd() *Command {
	return &Command{
		Usage: "rm <id>",
		Icon:  "🗑️",
		Short: "Remove a task",
		Long:  "Delete a task. The numbers of the other tasks do not change.",
		Exec: func(_ context.Context, o *IO, arg string) error {
			id, err := parseTaskArg(arg, "Which task to remove? (provide the task number)")
			if err != nil {
				return err
			}

			task, err := s.store.Remove(id)
			if err != nil {
				return err
			}

			o.Success("🗑️", "Task "+todo.FormatID(task.ID)+" removed")
			s.showTasks(o)

			return nil
		},
	}
}

func (s *session) clearCmd() *Command {
	return &Command{
		Usage: "rm-all",
		Icon:  "🧹",
		Short: "Clear all tasks",
		Long:  "Remove every task after asking for confirmation.\nOnly 'y' confirms; anything else leaves the list alone.",
		Exec: func(_ context.Context, o *IO, _ string) error {
			answer, err := s.lines.Prompt(confirmClearPrompt)
			if err != nil || strings.ToLower(strings.TrimSpace(answer)) != "y" {
				o.Note("✋", "No changes made")

				return nil
			}

			if err := s.store.Clear(); err != nil {
				return err
			}

			o.Success("🧹", "All tasks cleared - fresh start!")

			return nil
		},
	}
}

func (s *session) pomodoroCmd() *Command {
	flags := flag.NewFlagSet("pom", flag.ContinueOnError)
	minutes := flags.IntP("minutes", "m", s.cfg.PomodoroMinutes, "Length of the focus session in minutes")
	rest := flags.IntP("break", "b", s.cfg.BreakMinutes, "Break to suggest afterwards, in minutes")

	return &Command{
		Flags: flags,
		Usage: "pom [flags]",
		Icon:  "🍅",
		Short: "Start a focus session",
		Long:  "Run a pomodoro countdown, then suggest a break.\nCtrl-C ends the session and todoz.",
		Exec: func(ctx context.Context, o *IO, arg string) error {
			if arg != "" {
				return hint("💭", "pom takes no arguments (try 'help pom')")
			}

			if *minutes < 1 {
				return hint("💭", "A focus session needs at least one minute")
			}

			if *rest < 0 {
				return hint("💭", "A break cannot be negative")
			}

			if *minutes > todo.MaxSessionMinutes || *rest > todo.MaxSessionMinutes {
				return hint("💭", fmt.Sprintf("Sessions and breaks are limited to %d minutes", todo.MaxSessionMinutes))
			}

			s.newTimer(time.Duration(*minutes)*time.Minute, time.Duration(*rest)*time.Minute).Run(ctx, o)

			return nil
		},
	}
}

func (s *session) helpCmd() *Command {
	return &Command{
		Usage: "help [command]",
		Icon:  "❓",
		Short: "Show this guide",
		Long:  "List the commands, or explain one in detail.",
		Exec: func(_ context.Context, o *IO, arg string) error {
			if arg == "" {
				printCommandList(o, s.commands)

				return nil
			}

			c, ok := s.byName[arg]
			if !ok {
				return unknownCommand(arg)
			}

			c.PrintHelp(o)

			return nil
		},
	}
}

func quitCmd() *Command {
	return &Command{
		Usage: "quit",
		Icon:  "👋",
		Short: "Exit todoz",
		Exec: func(context.Context, *IO, string) error {
			return errQuit
		},
	}
}

func parseTaskArg(arg, missing string) (uint32, error) {
	if arg == "" {
		return 0, hint("🤔", missing)
	}

	id, err := todo.ParseID(arg)
	if err != nil {
		return 0, hint("💭", "Please provide a valid task number")
	}

	return id, nil
}

func unknownCommand(name string) error {
	return hint("💭", fmt.Sprintf("'%s' is not recognized. Try 'help' for guidance", name))
}
