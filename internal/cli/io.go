package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// IO handles command output: plain lines and the coloured one-line feedback
// every command ends with. Diagnostics go through the logger, not IO.
type IO struct {
	out   io.Writer
	color bool
}

// NewIO creates a new IO instance. When useColor is false no escape
// sequences are written, whatever the terminal supports.
func NewIO(out io.Writer, useColor bool) *IO {
	return &IO{out: out, color: useColor}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// Paint applies attrs to s if colour is enabled.
func (o *IO) Paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if o.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c.Sprint(s)
}

// Feedback prints an indented status line: "    <symbol> <message>".
func (o *IO) Feedback(symbol, message string, attrs ...color.Attribute) {
	o.Println(o.Paint(fmt.Sprintf("    %s %s", symbol, message), attrs...))
}

// Hint prints a secondary line under a feedback line.
func (o *IO) Hint(message string) {
	o.Println(o.Paint("      "+message, color.FgHiBlack, color.Italic))
}

// Success, Note and Problem are the three feedback tones commands use.
func (o *IO) Success(symbol, message string) {
	o.Feedback(symbol, message, color.FgHiGreen)
}

func (o *IO) Note(symbol, message string) {
	o.Feedback(symbol, message, color.FgHiBlack)
}

func (o *IO) Problem(message string) {
	o.Feedback("⚠️", message, color.FgHiRed)
}

func (o *IO) Warn(message string) {
	o.Feedback("⚠️", message, color.FgHiYellow)
}
