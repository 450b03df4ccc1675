package intern

import (
	"testing"

	"github.com/cxylang/frontend/internal/arena"
)

func TestInternReturnsSameHandleForEqualBytes(t *testing.T) {
	t.Parallel()

	in := New(arena.New())
	h1 := in.InternString("foo")
	h2 := in.InternString("foo")
	if h1 != h2 {
		t.Fatalf("expected equal handles, got %d and %d", h1, h2)
	}
	if h1 == 0 {
		t.Fatal("expected non-zero handle")
	}
}

func TestInternDistinctContentDistinctHandles(t *testing.T) {
	t.Parallel()

	in := New(arena.New())
	h1 := in.InternString("foo")
	h2 := in.InternString("bar")
	if h1 == h2 {
		t.Fatal("expected distinct handles for distinct content")
	}
}

func TestInternIsByteExactNotNormalized(t *testing.T) {
	t.Parallel()

	in := New(arena.New())
	h1 := in.InternString("Foo")
	h2 := in.InternString("foo")
	if h1 == h2 {
		t.Fatal("interner must be case sensitive / byte-exact")
	}
}

func TestViewAndStringReturnOriginalContent(t *testing.T) {
	t.Parallel()

	in := New(arena.New())
	h := in.InternString("hello")
	if got := in.String(h); got != "hello" {
		t.Fatalf("String() = %q, want %q", got, "hello")
	}
	if got := string(in.View(h)); got != "hello" {
		t.Fatalf("View() = %q, want %q", got, "hello")
	}
}

func TestViewPanicsOnInvalidHandle(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid handle")
		}
	}()

	in := New(arena.New())
	in.View(Handle(99))
}

func TestLenCountsDistinctStrings(t *testing.T) {
	t.Parallel()

	in := New(arena.New())
	in.InternString("a")
	in.InternString("b")
	in.InternString("a")
	if got := in.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}
