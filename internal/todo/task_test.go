package todo_test

import (
	"errors"
	"testing"

	"github.com/calvinalkan/todoz/internal/todo"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "07", want: 7},
		{in: "4294967295", want: 4294967295},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "+1", want: 1},
		{in: "+07", want: 7},
		{in: "++1", wantErr: true},
		{in: "+", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "4294967296", wantErr: true},
		{in: "1 2", wantErr: true},
	}

	for _, tc := range tests {
		got, err := todo.ParseID(tc.in)

		if tc.wantErr {
			if !errors.Is(err, todo.ErrInvalidArgument) {
				t.Errorf("ParseID(%q) err=%v, want ErrInvalidArgument", tc.in, err)
			}

			continue
		}

		if err != nil {
			t.Errorf("ParseID(%q) unexpected err=%v", tc.in, err)

			continue
		}

		if got != tc.want {
			t.Errorf("ParseID(%q)=%d, want=%d", tc.in, got, tc.want)
		}
	}
}

func TestFormatID(t *testing.T) {
	t.Parallel()

	for id, want := range map[uint32]string{1: "01", 9: "09", 10: "10", 140: "140"} {
		if got := todo.FormatID(id); got != want {
			t.Errorf("FormatID(%d)=%q, want=%q", id, got, want)
		}
	}
}

func TestNextID(t *testing.T) {
	t.Parallel()

	if got, want := todo.NextID(nil), uint32(1); got != want {
		t.Fatalf("NextID(nil)=%d, want=%d", got, want)
	}

	tasks := []todo.Task{{ID: 3}, {ID: 11}, {ID: 4}}
	if got, want := todo.NextID(tasks), uint32(12); got != want {
		t.Fatalf("NextID=%d, want=%d", got, want)
	}
}

func TestProgressOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tasks []todo.Task
		want  todo.Progress
	}{
		{name: "empty", tasks: nil, want: todo.Progress{}},
		{
			name:  "one of three rounds down",
			tasks: []todo.Task{{Completed: true}, {}, {}},
			want:  todo.Progress{Done: 1, Total: 3, Percent: 33},
		},
		{
			name:  "all done",
			tasks: []todo.Task{{Completed: true}, {Completed: true}},
			want:  todo.Progress{Done: 2, Total: 2, Percent: 100},
		},
	}

	for _, tc := range tests {
		if got := todo.ProgressOf(tc.tasks); got != tc.want {
			t.Errorf("%s: ProgressOf=%+v, want=%+v", tc.name, got, tc.want)
		}
	}
}

func TestKindOf_And_Sentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		kind     todo.Kind
		sentinel error
	}{
		{err: &todo.Error{Kind: todo.KindIO, Op: "write", Path: "/x", Err: errors.New("disk full")}, kind: todo.KindIO, sentinel: todo.ErrIO},
		{err: &todo.Error{Kind: todo.KindParse, Path: "/x", Err: errors.New("bad")}, kind: todo.KindParse, sentinel: todo.ErrParse},
		{err: &todo.Error{Kind: todo.KindNotFound, ID: 3}, kind: todo.KindNotFound, sentinel: todo.ErrNotFound},
		{err: &todo.Error{Kind: todo.KindInvalidArgument, Op: "x", Err: errors.New("y")}, kind: todo.KindInvalidArgument, sentinel: todo.ErrInvalidArgument},
	}

	all := []error{todo.ErrIO, todo.ErrParse, todo.ErrNotFound, todo.ErrInvalidArgument}

	for _, tc := range tests {
		wrapped := errors.Join(errors.New("context"), tc.err)

		if got := todo.KindOf(wrapped); got != tc.kind {
			t.Errorf("KindOf(%v)=%v, want=%v", tc.err, got, tc.kind)
		}

		for _, s := range all {
			if got, want := errors.Is(tc.err, s), s == tc.sentinel; got != want {
				t.Errorf("errors.Is(%v, %v)=%v, want=%v", tc.err, s, got, want)
			}
		}
	}

	if got := todo.KindOf(errors.New("plain")); got != 0 {
		t.Errorf("KindOf(plain)=%v, want 0", got)
	}
}

func TestError_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *todo.Error
		want string
	}{
		{err: &todo.Error{Kind: todo.KindNotFound, ID: 7}, want: "task 07 not found"},
		{err: &todo.Error{Kind: todo.KindNotFound, ID: 123}, want: "task 123 not found"},
		{
			err:  &todo.Error{Kind: todo.KindIO, Op: "write", Path: "/h/.todoz/todos.json", Err: errors.New("disk full")},
			want: "failed to write /h/.todoz/todos.json: disk full",
		},
		{
			err:  &todo.Error{Kind: todo.KindParse, Path: "/t.json", Loc: "[0].id", Err: errors.New("must be >= 0")},
			want: "failed to parse /t.json: [0].id: must be >= 0",
		},
	}

	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error()=%q, want=%q", got, tc.want)
		}
	}
}
