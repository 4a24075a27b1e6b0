package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a prompt command with unified help generation.
type Command struct {
	// Flags defines command-specific flags. When nil the command takes its
	// argument verbatim (the rest of the line after the command word), so
	// descriptions like "call -5 degrees" are never mangled by flag parsing.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown in help.
	// Includes the command name and arguments/flags.
	// Examples: "add <description>", "x <id>", "pom [flags]"
	Usage string

	// Icon is shown in front of the command in the help listing.
	Icon string

	// Short is a one-line description for the help listing.
	Short string

	// Long is the full description shown by "help <command>".
	// If empty, Short is used instead.
	Long string

	// Exec runs the command. arg is the trimmed rest of the line, or the
	// positional arguments joined by spaces for commands with Flags.
	Exec func(ctx context.Context, o *IO, arg string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the help listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("    %s  %-18s %s", c.Icon, c.Usage, c.Short)
}

// PrintHelp prints the full help output for "help <cmd>".
func (c *Command) PrintHelp(o *IO) {
	o.Println()
	o.Println("  Usage:", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	for line := range strings.SplitSeq(desc, "\n") {
		o.Println("  " + line)
	}

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("  Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}

	o.Println()
}

// Run parses flags (if any) and executes the command.
// Flag values are reset to their defaults first so one invocation's flags
// never leak into the next.
func (c *Command) Run(ctx context.Context, o *IO, arg string) error {
	if c.Flags == nil {
		return c.Exec(ctx, o, arg)
	}

	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output
	resetFlags(c.Flags)

	err := c.Flags.Parse(strings.Fields(arg))
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return nil
		}

		return &hintError{symbol: "💭", msg: fmt.Sprintf("%v (try 'help %s')", err, c.Name())}
	}

	return c.Exec(ctx, o, strings.Join(c.Flags.Args(), " "))
}

func resetFlags(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}
