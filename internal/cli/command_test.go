package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/todoz/internal/todo"
)

func Test_Command_Without_Flags_Gets_Argument_Verbatim(t *testing.T) {
	t.Parallel()

	var got string

	c := &Command{
		Usage: "add <description>",
		Exec: func(_ context.Context, _ *IO, arg string) error {
			got = arg

			return nil
		},
	}

	var out bytes.Buffer
	if err := c.Run(context.Background(), NewIO(&out, false), "--not-a-flag -x"); err != nil {
		t.Fatal(err)
	}

	if want := "--not-a-flag -x"; got != want {
		t.Errorf("arg=%q, want=%q", got, want)
	}
}

func Test_Command_Flag_Error_Is_Invalid_Argument_Hint(t *testing.T) {
	t.Parallel()

	flags := flag.NewFlagSet("demo", flag.ContinueOnError)
	flags.Bool("loud", false, "be loud")

	c := &Command{
		Flags: flags,
		Usage: "demo [flags]",
		Exec:  func(context.Context, *IO, string) error { return nil },
	}

	var out bytes.Buffer
	err := c.Run(context.Background(), NewIO(&out, false), "--quiet")

	if !errors.Is(err, todo.ErrInvalidArgument) {
		t.Fatalf("err=%v, want ErrInvalidArgument", err)
	}

	AssertContains(t, err.Error(), "try 'help demo'")
}

func Test_Command_Help_Line_And_Name(t *testing.T) {
	t.Parallel()

	c := &Command{Usage: "rm <id>", Icon: "🗑️", Short: "Remove a task"}

	if got, want := c.Name(), "rm"; got != want {
		t.Errorf("Name()=%q, want=%q", got, want)
	}

	if got, want := c.HelpLine(), "    🗑️  rm <id>            Remove a task"; got != want {
		t.Errorf("HelpLine()=%q, want=%q", got, want)
	}
}
