package fs

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func TestFaulty_PassesThroughWhenDisarmed(t *testing.T) {
	t.Parallel()

	fsys := NewFaulty(NewReal())
	path := filepath.Join(t.TempDir(), "f")

	if err := fsys.WriteFileAtomic(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got, want := string(data), "x"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}

	if got, want := fsys.Calls(OpWriteFileAtomic), 1; got != want {
		t.Fatalf("write calls=%d, want=%d", got, want)
	}
}

func TestFaulty_FailDefaultsToEIO(t *testing.T) {
	t.Parallel()

	fsys := NewFaulty(NewReal())
	fsys.Fail(OpWriteFileAtomic, nil)

	path := filepath.Join(t.TempDir(), "f")

	for range 2 {
		err := fsys.WriteFileAtomic(path, []byte("x"), 0o600)
		if !errors.Is(err, syscall.EIO) {
			t.Fatalf("err=%v, want EIO", err)
		}

		if !IsInjected(err) {
			t.Fatalf("IsInjected(%v)=false, want true", err)
		}
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file written despite injected failure: %v", err)
	}
}

func TestFaulty_FailNextFailsOnce(t *testing.T) {
	t.Parallel()

	fsys := NewFaulty(NewReal())
	fsys.FailNext(OpReadFile, os.ErrPermission)

	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := fsys.ReadFile(path)
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("first read err=%v, want %v", err, os.ErrPermission)
	}

	if _, err := fsys.ReadFile(path); err != nil {
		t.Fatalf("second read err=%v, want nil", err)
	}
}

func TestFaulty_HealDisarms(t *testing.T) {
	t.Parallel()

	fsys := NewFaulty(NewReal())
	fsys.Fail(OpMkdirAll, nil)
	fsys.Heal()

	if err := fsys.MkdirAll(filepath.Join(t.TempDir(), "a", "b"), 0o755); err != nil {
		t.Fatalf("MkdirAll after Heal: %v", err)
	}
}

func TestIsInjected_FalseForRealErrors(t *testing.T) {
	t.Parallel()

	_, err := NewReal().ReadFile(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error")
	}

	if IsInjected(err) {
		t.Fatalf("IsInjected(%v)=true, want false", err)
	}

	if IsInjected(nil) {
		t.Fatal("IsInjected(nil)=true")
	}
}
