package modcache

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cxylang/frontend/internal/ast"
)

func TestStoreAndGet(t *testing.T) {
	t.Parallel()

	c := New()
	entry := &Entry{AST: &ast.ModuleDecl{}}
	if err := c.Store("foo.cxy", entry); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, ok := c.Get("foo.cxy")
	if !ok || got != entry {
		t.Fatalf("Get(%q) = %v, %v, want %v, true", "foo.cxy", got, ok, entry)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
}

func TestStoreRejectsTraversalPath(t *testing.T) {
	t.Parallel()

	c := New()
	if err := c.Store("../../etc/passwd", &Entry{}); err == nil {
		t.Fatal("Store with a traversal path should fail")
	}
}

func TestRemoveAndClear(t *testing.T) {
	t.Parallel()

	c := New()
	_ = c.Store("a.cxy", &Entry{})
	_ = c.Store("b.cxy", &Entry{})

	if !c.Remove("a.cxy") {
		t.Fatal("Remove(a.cxy) = false, want true")
	}
	if c.Remove("a.cxy") {
		t.Fatal("second Remove(a.cxy) = true, want false")
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestBeginImportDetectsCycle(t *testing.T) {
	t.Parallel()

	c := New()
	if err := c.BeginImport("a.cxy"); err != nil {
		t.Fatalf("BeginImport(a.cxy): %v", err)
	}
	if err := c.BeginImport("b.cxy"); err != nil {
		t.Fatalf("BeginImport(b.cxy): %v", err)
	}
	if err := c.BeginImport("a.cxy"); !errors.Is(err, ErrCycle) {
		t.Fatalf("BeginImport(a.cxy) reentrant = %v, want ErrCycle", err)
	}

	c.EndImport("b.cxy")
	c.EndImport("a.cxy")
	if c.WouldCreateCycle("a.cxy") {
		t.Fatal("WouldCreateCycle(a.cxy) after both imports ended = true, want false")
	}
}

func TestImportStackReflectsOrder(t *testing.T) {
	t.Parallel()

	c := New()
	_ = c.BeginImport("a.cxy")
	_ = c.BeginImport("b.cxy")
	defer c.EndImport("b.cxy")
	defer c.EndImport("a.cxy")

	stack := c.ImportStack()
	if len(stack) != 2 || stack[0] != "a.cxy" || stack[1] != "b.cxy" {
		t.Fatalf("ImportStack() = %v, want [a.cxy b.cxy]", stack)
	}
}

func TestInvalidateIfModified(t *testing.T) {
	t.Parallel()

	c := New()
	old := time.Unix(1000, 0)
	_ = c.Store("a.cxy", &Entry{ModTime: old})

	if c.InvalidateIfModified("a.cxy", old) {
		t.Fatal("InvalidateIfModified with an equal ModTime should not invalidate")
	}
	if _, ok := c.Get("a.cxy"); !ok {
		t.Fatal("entry should still be cached")
	}

	newer := old.Add(time.Minute)
	if !c.InvalidateIfModified("a.cxy", newer) {
		t.Fatal("InvalidateIfModified with a newer ModTime should invalidate")
	}
	if _, ok := c.Get("a.cxy"); ok {
		t.Fatal("entry should have been evicted")
	}
}

func TestResolveCoalescesConcurrentCompiles(t *testing.T) {
	t.Parallel()

	c := New()
	var calls int64
	compile := func() (*Entry, error) {
		atomic.AddInt64(&calls, 1)
		return &Entry{AST: &ast.ModuleDecl{}}, nil
	}

	const n = 16
	results := make(chan *Entry, n)
	for i := 0; i < n; i++ {
		go func() {
			e, err := c.Resolve("shared.cxy", compile)
			if err != nil {
				t.Errorf("Resolve: %v", err)
			}
			results <- e
		}()
	}

	var first *Entry
	for i := 0; i < n; i++ {
		e := <-results
		if first == nil {
			first = e
		} else if e != first {
			t.Fatal("Resolve returned different entries for the same path")
		}
	}
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("compile called %d times, want 1", got)
	}
}

func TestResolvePropagatesCompileError(t *testing.T) {
	t.Parallel()

	c := New()
	wantErr := errors.New("boom")
	_, err := c.Resolve("broken.cxy", func() (*Entry, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Resolve error = %v, want %v", err, wantErr)
	}
	if _, ok := c.Get("broken.cxy"); ok {
		t.Fatal("a failed compile should not be cached")
	}
}
