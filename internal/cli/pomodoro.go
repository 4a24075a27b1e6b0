package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

const (
	timerPoll     = 200 * time.Millisecond
	timerBarCells = 17
)

// Timer is the focus countdown behind "pom".
//
// It polls every Poll and redraws the status line whenever the displayed
// second changes. Now and Sleep are injectable so tests can drive a fake
// clock. The store is never touched.
type Timer struct {
	Duration time.Duration
	Break    time.Duration
	Poll     time.Duration
	Now      func() time.Time
	Sleep    func(time.Duration)
}

// NewTimer returns a Timer on the wall clock.
func NewTimer(focus, rest time.Duration) *Timer {
	return &Timer{
		Duration: focus,
		Break:    rest,
		Poll:     timerPoll,
		Now:      time.Now,
		Sleep:    time.Sleep,
	}
}

// Run counts down, drawing to o. Returns false if ctx ended the session early.
func (t *Timer) Run(ctx context.Context, o *IO) bool {
	o.Println()
	o.Success("🍅", "Starting your focused work session")
	o.Hint("Take a deep breath and focus on one task")
	printSubtleLine(o)
	o.Println()
	o.Println(indent(renderFrame(
		o.Paint("🍅 FOCUS", color.FgHiMagenta, color.Bold),
		o.Paint(clock(t.Duration), color.FgHiWhite, color.Bold),
	), "    "))

	start := t.Now()
	lastShown := int64(-1)

	for {
		if ctx.Err() != nil {
			o.Println()
			o.Note("✋", "Focus session stopped")

			return false
		}

		elapsed := t.Now().Sub(start)
		if elapsed >= t.Duration {
			break
		}

		remaining := t.Duration - elapsed

		if secs := int64(remaining / time.Second); secs != lastShown {
			o.Printf("\r%s", t.statusLine(o, remaining, elapsed))

			lastShown = secs
		}

		t.Sleep(t.Poll)
	}

	o.Println()
	o.Println()
	o.Println(indent(renderFrame(
		o.Paint("🎉 TIME'S UP! 🎉", color.FgHiGreen, color.Bold),
		o.Paint(clock(0), color.FgHiGreen, color.Bold),
	), "    "))
	o.Println()
	o.Feedback("✨", fmt.Sprintf("Well done! Time for a %d-minute break", int(t.Break/time.Minute)), color.FgHiWhite)
	o.Hint("Stretch, breathe, or take a mindful walk")
	o.Println()

	return true
}

func (t *Timer) statusLine(o *IO, remaining, elapsed time.Duration) string {
	attr := timeColor(remaining)

	filled := int(int64(elapsed) * timerBarCells / int64(t.Duration))
	filled = min(filled, timerBarCells)

	return "    ⏳ " + o.Paint(clock(remaining), attr, color.Bold) + " " +
		o.Paint(strings.Repeat("◆", filled), attr) +
		o.Paint(strings.Repeat("◇", timerBarCells-filled), color.FgHiBlack)
}

// timeColor shifts from green to red as the session runs out.
func timeColor(remaining time.Duration) color.Attribute {
	switch minutes := remaining / time.Minute; {
	case minutes >= 20:
		return color.FgHiGreen
	case minutes >= 10:
		return color.FgHiCyan
	case minutes >= 5:
		return color.FgHiYellow
	default:
		return color.FgHiRed
	}
}

// clock formats d as mm:ss, truncating partial seconds.
func clock(d time.Duration) string {
	secs := int64(d / time.Second)

	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
