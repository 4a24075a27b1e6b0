// Package todo holds the task model, the JSON-file task store and the
// configuration it is built from.
package todo

import (
	"fmt"
	"strconv"
	"strings"
)

// Task is a single to-do entry.
type Task struct {
	ID          uint32 `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// FormatID renders an id zero-padded to two digits ("07", "12", "140").
func FormatID(id uint32) string {
	return fmt.Sprintf("%02d", id)
}

// ParseID parses a base-10 task id, optionally with one leading '+'.
// Anything that does not fit a uint32 is rejected with KindInvalidArgument.
func ParseID(s string) (uint32, error) {
	if s == "" {
		return 0, invalidArgument("task id", errMissing)
	}

	digits := strings.TrimPrefix(s, "+")

	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, invalidArgument("task id", fmt.Errorf("%q is not a task number", s))
	}

	return uint32(n), nil
}

// NextID returns max(existing ids)+1, or 1 for an empty list.
func NextID(tasks []Task) uint32 {
	var highest uint32

	for _, t := range tasks {
		highest = max(highest, t.ID)
	}

	return highest + 1
}

// Progress summarises completion of a task list.
type Progress struct {
	Done  int
	Total int
	// Percent is floor(Done*100/Total), 0 for an empty list.
	Percent int
}

// ProgressOf computes the completion summary of tasks.
func ProgressOf(tasks []Task) Progress {
	p := Progress{Total: len(tasks)}

	for _, t := range tasks {
		if t.Completed {
			p.Done++
		}
	}

	if p.Total > 0 {
		p.Percent = p.Done * 100 / p.Total
	}

	return p
}
