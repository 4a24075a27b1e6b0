package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/calvinalkan/todoz/internal/fs"
	"github.com/calvinalkan/todoz/internal/todo"
)

// lockedBuffer is safe to write from the loop goroutine while the test reads.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func newTestSession(t *testing.T, input string) (*session, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	cfg, err := todo.LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	store := todo.NewStore(fs.NewReal(), cfg.StoreFileAbs, nil)
	s := newSession(store, newPlainLines(strings.NewReader(input), &out), cfg, nil)

	return s, &out
}

func Test_Signal_Interrupts_Blocked_Prompt_With_Exit_130(t *testing.T) {
	t.Parallel()

	in, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	var out, errOut lockedBuffer

	sigCh := make(chan os.Signal, 1)

	go func() {
		// Give the loop time to block on the prompt.
		time.Sleep(50 * time.Millisecond)

		sigCh <- os.Interrupt
	}()

	code := Run(in, &out, &errOut, nil, map[string]string{"HOME": t.TempDir()}, sigCh)

	if got, want := code, exitInterrupted; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	AssertContains(t, out.String(), "✋ Interrupted")
}

func Test_Signal_During_Pom_Stops_Timer_Before_Exit(t *testing.T) {
	t.Parallel()

	in, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })

	var out, errOut lockedBuffer

	sigCh := make(chan os.Signal, 1)

	go func() {
		_, _ = io.WriteString(w, "pom -m 1\n")

		// Let the timer draw a few frames.
		time.Sleep(300 * time.Millisecond)

		sigCh <- os.Interrupt
	}()

	code := Run(in, &out, &errOut, nil, map[string]string{"HOME": t.TempDir()}, sigCh)

	if got, want := code, exitInterrupted; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	got := out.String()

	stopped := strings.Index(got, "✋ Focus session stopped")
	interrupted := strings.Index(got, "✋ Interrupted")

	if stopped < 0 || interrupted < 0 || stopped > interrupted {
		t.Errorf("timer should stop before the interrupt notice\n%s", got)
	}
}

func Test_Pom_Uses_Config_Defaults_And_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line      string
		wantFocus time.Duration
		wantRest  time.Duration
	}{
		{line: "pom", wantFocus: 25 * time.Minute, wantRest: 5 * time.Minute},
		{line: "pom -m 1", wantFocus: time.Minute, wantRest: 5 * time.Minute},
		{line: "pom --minutes=50 --break 10", wantFocus: 50 * time.Minute, wantRest: 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			s, out := newTestSession(t, "")

			var gotFocus, gotRest time.Duration

			s.newTimer = func(focus, rest time.Duration) *Timer {
				gotFocus, gotRest = focus, rest
				clock := &fakeClock{now: time.Unix(0, 0)}

				return &Timer{Duration: time.Second, Break: rest, Poll: timerPoll, Now: clock.Now, Sleep: clock.Sleep}
			}

			err := s.execute(context.Background(), NewIO(out, false), tt.line)
			if err != nil {
				t.Fatalf("execute(%q): %v", tt.line, err)
			}

			if gotFocus != tt.wantFocus || gotRest != tt.wantRest {
				t.Errorf("timer=(%s, %s), want=(%s, %s)", gotFocus, gotRest, tt.wantFocus, tt.wantRest)
			}

			AssertContains(t, out.String(), "TIME'S UP")
		})
	}
}

func Test_Pom_Flags_Reset_Between_Runs(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, "")

	var got []time.Duration

	s.newTimer = func(focus, rest time.Duration) *Timer {
		got = append(got, focus)
		clock := &fakeClock{now: time.Unix(0, 0)}

		return &Timer{Duration: time.Second, Break: rest, Poll: timerPoll, Now: clock.Now, Sleep: clock.Sleep}
	}

	o := NewIO(out, false)
	for _, line := range []string{"pom -m 3", "pom"} {
		if err := s.execute(context.Background(), o, line); err != nil {
			t.Fatalf("execute(%q): %v", line, err)
		}
	}

	if len(got) != 2 || got[0] != 3*time.Minute || got[1] != 25*time.Minute {
		t.Errorf("focus durations=%v, want=[3m0s 25m0s]", got)
	}
}

func Test_Loop_Records_History_For_Non_Empty_Lines(t *testing.T) {
	t.Parallel()

	s, out := newTestSession(t, "")

	lines := &recordingLines{input: []string{"list", "   ", "help", "quit", "add late"}}
	s.lines = lines

	s.loop(context.Background(), NewIO(out, false))

	want := []string{"list", "help", "quit"}
	if strings.Join(lines.history, ",") != strings.Join(want, ",") {
		t.Errorf("history=%q, want=%q", lines.history, want)
	}
}

type recordingLines struct {
	input   []string
	history []string
}

func (r *recordingLines) Prompt(string) (string, error) {
	if len(r.input) == 0 {
		return "", io.EOF
	}

	line := r.input[0]
	r.input = r.input[1:]

	return line, nil
}

func (r *recordingLines) AppendHistory(line string) { r.history = append(r.history, line) }

func (r *recordingLines) Close() error { return nil }

func Test_Plain_Lines_Returns_Last_Line_Without_Newline(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	p := newPlainLines(strings.NewReader("first\r\nlast"), &out)

	for _, want := range []string{"first", "last"} {
		got, err := p.Prompt("> ")
		if err != nil || got != want {
			t.Fatalf("Prompt()=(%q, %v), want=(%q, nil)", got, err, want)
		}
	}

	if _, err := p.Prompt("> "); err != io.EOF {
		t.Errorf("Prompt() err=%v, want=io.EOF", err)
	}

	if got, want := out.String(), "> > > "; got != want {
		t.Errorf("echoed prompts=%q, want=%q", got, want)
	}
}
