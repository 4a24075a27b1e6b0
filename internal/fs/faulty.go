package fs

import (
	"os"
	"sync"
)

// Faulty wraps another [FS] and fails chosen operations on demand.
//
// Unlike random fault injection, failures are armed explicitly so a test can
// say "the next write fails" and assert on exactly that.
//
// Example:
//
//	fsys := fs.NewFaulty(fs.NewReal())
//	fsys.Fail(fs.OpWriteFileAtomic, nil) // every write fails with EIO
//	fsys.FailNext(fs.OpReadFile, os.ErrPermission)
//
// Safe for concurrent use.
type Faulty struct {
	inner FS

	mu     sync.Mutex
	always map[Op]error
	once   map[Op]error
	calls  map[Op]int
}

// NewFaulty returns a [Faulty] that passes everything through to inner until
// a failure is armed.
func NewFaulty(inner FS) *Faulty {
	return &Faulty{
		inner:  inner,
		always: make(map[Op]error),
		once:   make(map[Op]error),
		calls:  make(map[Op]int),
	}
}

// Fail makes every call of op fail with err (EIO when err is nil).
func (f *Faulty) Fail(op Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.always[op] = inject(op, err)
}

// FailNext makes only the next call of op fail.
func (f *Faulty) FailNext(op Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.once[op] = inject(op, err)
}

// Heal disarms all failures.
func (f *Faulty) Heal() {
	f.mu.Lock()
	defer f.mu.Unlock()

	clear(f.always)
	clear(f.once)
}

// Calls returns how many times op was invoked, failed or not.
func (f *Faulty) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[op]
}

func (f *Faulty) check(op Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++

	if err, ok := f.once[op]; ok {
		delete(f.once, op)

		return err
	}

	return f.always[op]
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.check(OpReadFile); err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}

	return f.inner.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := f.check(OpWriteFileAtomic); err != nil {
		return &os.PathError{Op: "write", Path: path, Err: err}
	}

	return f.inner.WriteFileAtomic(path, data, perm)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdirAll); err != nil {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}

	return f.inner.MkdirAll(path, perm)
}

func (f *Faulty) Lock(path string) (Locker, error) {
	if err := f.check(OpLock); err != nil {
		return nil, err
	}

	return f.inner.Lock(path)
}

// Compile-time interface check.
var _ FS = (*Faulty)(nil)
