package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/calvinalkan/todoz/internal/todo"
)

const (
	progressCells = 20
	symbolDone    = "✓"
	symbolOpen    = "◯"
	clearScreen   = "\x1b[2J\x1b[1;1H"
)

var frameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 4).
	Align(lipgloss.Center)

func renderFrame(lines ...string) string {
	return frameStyle.Render(strings.Join(lines, "\n"))
}

func indent(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}

	return strings.Join(lines, "\n")
}

func printSubtleLine(o *IO) {
	o.Println(o.Paint("  "+strings.TrimSpace(strings.Repeat("─ ", 28)), color.FgHiBlack))
}

func printWelcome(o *IO) {
	if o.color {
		o.Printf("%s", clearScreen)
	}

	o.Println()
	o.Println(indent(renderFrame(
		o.Paint("✨  todoz  ✨", color.FgHiCyan),
		"",
		o.Paint("mindful task management", color.FgHiWhite),
	), "    "))
	o.Println()
	o.Hint("Begin with 'list' to see your tasks 📋")
	o.Hint("or 'help' for gentle guidance ❓")
	o.Println()
}

func printFarewell(o *IO) {
	o.Println()
	o.Success("👋", "Thank you for staying organized ✨")
	o.Hint("Until next time, stay mindful")
	o.Println()
}

// printTasks renders the list view: progress summary, divider, one line per
// task. An empty list gets an encouraging placeholder instead.
func printTasks(o *IO, tasks []todo.Task, p todo.Progress) {
	o.Println()

	if len(tasks) == 0 {
		o.Println(o.Paint("    ✨ Your space is clear and ready", color.FgHiCyan, color.Italic))
		o.Println(o.Paint("       Add a task when inspiration strikes", color.FgHiBlack))
		o.Println()

		return
	}

	o.Println(o.Paint("    Progress: ", color.FgHiWhite) + progressBar(o, p.Percent) + o.Paint(" "+strconv.Itoa(p.Percent)+"%", color.FgHiWhite))
	printSubtleLine(o)

	for _, t := range tasks {
		o.Println(taskLine(o, t))
	}

	o.Println()
}

func progressBar(o *IO, percent int) string {
	filled := min(percent/5, progressCells)

	return o.Paint(strings.Repeat("●", filled), color.FgHiGreen) +
		o.Paint(strings.Repeat("○", progressCells-filled), color.FgHiBlack)
}

func taskLine(o *IO, t todo.Task) string {
	id := o.Paint(todo.FormatID(t.ID), color.FgHiBlack)

	if t.Completed {
		return "  " + id + " " + o.Paint(symbolDone, color.FgHiGreen) + " " +
			o.Paint("  "+t.Description, color.FgHiBlack, color.CrossedOut)
	}

	return "  " + id + " " + o.Paint(symbolOpen, color.FgHiCyan) + " " +
		o.Paint("  "+t.Description, color.FgHiWhite)
}

func printCommandList(o *IO, commands []*Command) {
	o.Println()
	o.Println(o.Paint("  ✨ Simple commands for mindful productivity:", color.FgHiWhite))
	o.Println()

	for _, c := range commands {
		o.Println(c.HelpLine())
	}

	o.Println()
	o.Hint("'help <command>' shows details, an empty line lists your tasks")
	printSubtleLine(o)
	o.Println()
}
