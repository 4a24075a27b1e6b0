package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/todoz/internal/todo"
)

// CLI provides a clean interface for running todoz sessions in tests.
// It manages a temp home directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI whose HOME is a fresh temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{"HOME": dir},
	}
}

// Run feeds input to a session, one command per line, and returns stdout,
// stderr, and exit code. The session ends at "quit" or when input runs out.
func (r *CLI) Run(lines ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	input := ""
	if len(lines) > 0 {
		input = strings.Join(lines, "\n") + "\n"
	}

	code := Run(strings.NewReader(input), &outBuf, &errBuf, []string{"todoz"}, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun runs a session and fails the test on a non-zero exit code.
// Returns stdout.
func (r *CLI) MustRun(lines ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(lines...)
	if code != 0 {
		r.t.Fatalf("session %q exited with %d\nstderr: %s", lines, code, stderr)
	}

	return stdout
}

// DataDir returns the ~/.todoz directory.
func (r *CLI) DataDir() string {
	return filepath.Join(r.Dir, todo.DirName)
}

// StoreFile returns the default store file path.
func (r *CLI) StoreFile() string {
	return filepath.Join(r.DataDir(), todo.StoreFileName)
}

// ReadStore returns the raw content of the store file.
func (r *CLI) ReadStore() string {
	r.t.Helper()

	content, err := os.ReadFile(r.StoreFile())
	if err != nil {
		r.t.Fatalf("failed to read store: %v", err)
	}

	return string(content)
}

// StoredTasks decodes the store file.
func (r *CLI) StoredTasks() []todo.Task {
	r.t.Helper()

	var tasks []todo.Task

	err := json.Unmarshal([]byte(r.ReadStore()), &tasks)
	if err != nil {
		r.t.Fatalf("failed to decode store: %v", err)
	}

	return tasks
}

// WriteStore writes content to the store file, creating ~/.todoz.
func (r *CLI) WriteStore(content string) {
	r.t.Helper()
	r.writeDataFile(todo.StoreFileName, content)
}

// WriteConfig writes content to ~/.todoz/config.json.
func (r *CLI) WriteConfig(content string) {
	r.t.Helper()
	r.writeDataFile(todo.ConfigFileName, content)
}

func (r *CLI) writeDataFile(name, content string) {
	r.t.Helper()

	err := os.MkdirAll(r.DataDir(), 0o755)
	if err != nil {
		r.t.Fatalf("failed to create %s: %v", r.DataDir(), err)
	}

	err = os.WriteFile(filepath.Join(r.DataDir(), name), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
