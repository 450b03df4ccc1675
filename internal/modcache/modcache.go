// Package modcache tracks compiled modules across an import graph: it
// caches a module's parsed AST so a path imported from several places is
// only compiled once, detects circular imports via a begin/end import
// stack, and coalesces concurrent requests for the same path into a single
// compilation. It implements no cache *policy* (eviction, persistence,
// module resolution) — that is left to the caller per the compiler's scope
// boundary; this package only holds the shape and the cycle guard.
package modcache

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/mod/module"
	"golang.org/x/sync/singleflight"

	"github.com/cxylang/frontend/internal/ast"
)

// ErrCycle is returned by BeginImport when importing path would revisit a
// module already on the in-progress import stack.
var ErrCycle = errors.New("modcache: circular import")

// Entry is a cached compiled module: its AST plus the bookkeeping a
// downstream semantic pass needs to decide whether the cache entry is
// still usable.
type Entry struct {
	AST             *ast.ModuleDecl
	ModTime         time.Time
	ErrorCount      int
	WarningCount    int
	HasSemanticInfo bool // always false in this frontend-only module
}

// Successful reports whether e represents a module that compiled with no
// errors and has an AST available for reuse.
func (e *Entry) Successful() bool {
	return e != nil && e.AST != nil && e.ErrorCount == 0
}

// Cache stores compiled modules keyed by canonical import path and guards
// against circular imports. The zero value is not usable; use New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	stack   []string
	onStack map[string]bool

	group singleflight.Group
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]*Entry),
		onStack: make(map[string]bool),
	}
}

// checkPath rejects import paths that cannot safely serve as a cache key or
// file-cache path element, e.g. ones containing `..` traversal segments.
func checkPath(path string) error {
	if path == "" {
		return errors.New("modcache: empty import path")
	}
	// An absolute path is checked without its leading '/', which
	// CheckFilePath would otherwise report as an empty path element.
	if err := module.CheckFilePath(strings.TrimPrefix(path, "/")); err != nil {
		return fmt.Errorf("modcache: invalid import path %q: %w", path, err)
	}
	return nil
}

// Get returns the cached entry for path, if any.
func (c *Cache) Get(path string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	return e, ok
}

// Store records entry as the cached module for path.
func (c *Cache) Store(path string, entry *Entry) error {
	if err := checkPath(path); err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[path] = entry
	c.mu.Unlock()
	return nil
}

// Remove deletes path's cached entry, reporting whether one was present.
func (c *Cache) Remove(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[path]; !ok {
		return false
	}
	delete(c.entries, path)
	return true
}

// Clear discards every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*Entry)
	c.mu.Unlock()
}

// Len reports how many modules are currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// InvalidateIfModified drops path's cache entry if its recorded ModTime
// precedes currentModTime, reporting whether it did so.
func (c *Cache) InvalidateIfModified(path string, currentModTime time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok || !e.ModTime.Before(currentModTime) {
		return false
	}
	delete(c.entries, path)
	return true
}

// BeginImport pushes path onto the in-progress import stack, returning
// ErrCycle without modifying the stack if path is already being imported
// somewhere up the call chain. Every successful BeginImport must be paired
// with a call to EndImport, typically via defer.
func (c *Cache) BeginImport(path string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.onStack[path] {
		return fmt.Errorf("%w: %s -> %s", ErrCycle, importChain(c.stack), path)
	}
	c.stack = append(c.stack, path)
	c.onStack[path] = true
	return nil
}

// EndImport pops path off the in-progress import stack. It is a no-op if
// path is not the top of the stack, which should not happen when every
// BeginImport is paired with exactly one matching EndImport.
func (c *Cache) EndImport(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.stack)
	if n == 0 || c.stack[n-1] != path {
		return
	}
	c.stack = c.stack[:n-1]
	delete(c.onStack, path)
}

// WouldCreateCycle reports whether importing path right now would revisit
// a module already on the import stack, without mutating the stack.
func (c *Cache) WouldCreateCycle(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onStack[path]
}

// ImportStack returns the chain of modules currently being imported, in
// import order, for use in circular-import diagnostics.
func (c *Cache) ImportStack() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stack := make([]string, len(c.stack))
	copy(stack, c.stack)
	return stack
}

func importChain(stack []string) string {
	chain := ""
	for i, p := range stack {
		if i > 0 {
			chain += " -> "
		}
		chain += p
	}
	return chain
}

// Resolve returns the cached entry for path if one exists; otherwise it
// calls compile to produce one, caching and returning the result.
// Concurrent Resolve calls for the same path are coalesced via
// singleflight so compile runs at most once per path at a time.
func (c *Cache) Resolve(path string, compile func() (*Entry, error)) (*Entry, error) {
	if e, ok := c.Get(path); ok {
		return e, nil
	}
	if err := checkPath(path); err != nil {
		return nil, err
	}
	v, err, _ := c.group.Do(path, func() (any, error) {
		if e, ok := c.Get(path); ok {
			return e, nil
		}
		e, err := compile()
		if err != nil {
			return nil, err
		}
		if storeErr := c.Store(path, e); storeErr != nil {
			return nil, storeErr
		}
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}
