package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/todoz/internal/fs"
)

// Store file and directory permissions.
const (
	filePerms = 0o600
	dirPerms  = 0o755
)

var (
	errMissing      = errors.New("value is required")
	errIDsExhausted = errors.New("no task ids left")
	errInvalidUTF8  = errors.New("text is not valid UTF-8")
)

// Store owns the in-memory task list and the JSON file it is persisted to.
//
// Every mutating method changes the in-memory list first and then rewrites
// the whole file. A failed save is reported but not rolled back: the list
// keeps the mutation and the file may be stale until the next successful save.
//
// Store is not safe for concurrent use.
type Store struct {
	fsys   fs.FS
	path   string
	logger *log.Logger
	tasks  []Task
}

// NewStore returns an empty store persisting to path. Call [Store.Load] to
// read existing tasks. A nil logger discards log output.
func NewStore(fsys fs.FS, path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Store{
		fsys:   fsys,
		path:   path,
		logger: logger,
		tasks:  []Task{},
	}
}

// Tasks returns a copy of the current task list in insertion order.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Progress summarises the current task list.
func (s *Store) Progress() Progress {
	return ProgressOf(s.tasks)
}

// Load reads the store file and replaces the in-memory list with it.
//
// A missing file is an empty list. On error the in-memory list is left
// unchanged.
func (s *Store) Load() ([]Task, error) {
	if s.path == "" {
		return nil, ioError("read", s.path, ErrNoHomeDir)
	}

	data, err := s.fsys.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("store file missing, starting empty", "path", s.path)
			s.tasks = []Task{}

			return s.Tasks(), nil
		}

		return nil, ioError("read", s.path, err)
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			pe.Path = s.path
		}

		return nil, err
	}

	s.tasks = tasks
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))

	return s.Tasks(), nil
}

// decodeTasks validates and decodes a store document.
func decodeTasks(data []byte) ([]Task, error) {
	if v := validateStoreDocument(data); v != nil {
		return nil, parseError("", v.Loc, v.Err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, parseError("", "", err)
	}

	seen := make(map[uint32]int, len(tasks))

	for i, t := range tasks {
		if first, dup := seen[t.ID]; dup {
			return nil, parseError("", fmt.Sprintf("[%d].id", i),
				fmt.Errorf("duplicate id %d (also at [%d])", t.ID, first))
		}

		seen[t.ID] = i
	}

	if tasks == nil {
		tasks = []Task{}
	}

	return tasks, nil
}

// Save rewrites the store file with the in-memory list.
//
// The directory is created if needed, the write is an atomic replace, and an
// advisory lock serialises saves of concurrently running processes.
func (s *Store) Save() error {
	if s.path == "" {
		return ioError("write", s.path, ErrNoHomeDir)
	}

	data, err := encodeTasks(s.tasks)
	if err != nil {
		return ioError("encode", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fsys.MkdirAll(dir, dirPerms); err != nil {
		return ioError("create directory", dir, err)
	}

	lock, err := s.fsys.Lock(s.path)
	if err != nil {
		return ioError("lock", s.path, err)
	}
	defer lock.Close()

	if err := s.fsys.WriteFileAtomic(s.path, data, filePerms); err != nil {
		return ioError("write", s.path, err)
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(s.tasks))

	return nil
}

// encodeTasks renders the list the way it is stored: two-space indented
// JSON, "[]" for an empty list.
func encodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}

	return json.MarshalIndent(tasks, "", "  ")
}

// Add appends a new incomplete task and saves.
//
// The description is trimmed; an empty or non-UTF-8 description is rejected
// before any mutation. The new id is max(existing ids)+1.
func (s *Store) Add(description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, invalidArgument("description", errMissing)
	}

	// encoding/json would write U+FFFD for invalid bytes, so the file
	// would no longer match memory.
	if !utf8.ValidString(description) {
		return Task{}, invalidArgument("description", errInvalidUTF8)
	}

	if slices.ContainsFunc(s.tasks, func(t Task) bool { return t.ID == math.MaxUint32 }) {
		return Task{}, invalidArgument("task id", errIDsExhausted)
	}

	task := Task{ID: NextID(s.tasks), Description: description}
	s.tasks = append(s.tasks, task)

	return task, s.Save()
}

// Toggle flips the completion state of task id and saves.
func (s *Store) Toggle(id uint32) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}

	s.tasks[i].Completed = !s.tasks[i].Completed

	return s.tasks[i], s.Save()
}

// Remove deletes task id, keeping the order of the others, and saves.
func (s *Store) Remove(id uint32) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}

	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)

	return removed, s.Save()
}

// Clear removes every task and saves.
func (s *Store) Clear() error {
	s.tasks = []Task{}

	return s.Save()
}

func (s *Store) index(id uint32) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}
