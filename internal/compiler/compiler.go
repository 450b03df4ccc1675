// Package compiler exposes the frontend's external entry points: compiling
// a single source buffer or file, batching several files concurrently, and
// resolving an import through the module cache. It wires together
// internal/lexer, internal/parser, internal/diag, and internal/modcache
// into the shape callers (a CLI, a build tool, a test harness) actually
// call; it performs no semantic analysis of its own.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/diag"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/modcache"
	"github.com/cxylang/frontend/internal/parser"
	"github.com/cxylang/frontend/internal/text"
)

// Status classifies the outcome of a compilation. A result is successful
// iff Status is Success and ErrorCount is zero.
type Status int

const (
	Success Status = iota
	ParseError
	SemanticError
	IOError
	InternalError
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case ParseError:
		return "ParseError"
	case SemanticError:
		return "SemanticError"
	case IOError:
		return "IOError"
	case InternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// CompilationResult is what CompileSource/CompileFile return: the outcome
// status, the parsed module (nil on IOError), diagnostic counts, and the
// arena/interner the module's nodes and interned names live in — needed by
// anything that wants to render the AST or inspect arena usage afterward,
// since each compilation owns a private pair of these.
type CompilationResult struct {
	Status       Status
	AST          *ast.ModuleDecl
	ErrorCount   int
	WarningCount int
	Interner     *intern.Interner
	Arena        *arena.Arena
}

// Successful reports whether r represents a usable compilation: Status
// Success and no logged errors.
func (r CompilationResult) Successful() bool {
	return r.Status == Success && r.ErrorCount == 0
}

// Compiler holds what is shared across compilations of a single program:
// the module cache that deduplicates and cycle-guards imports, and where
// to send rendered diagnostics. Every CompileSource/CompileFile call
// otherwise builds its own arena, interner, and diagnostic logger — each
// parse owns its own of these, never sharing them across compile units.
type Compiler struct {
	cache      *modcache.Cache
	buildSinks func(*text.SourceManager) []diag.Sink
}

// Option configures a Compiler built with New.
type Option func(*Compiler)

// WithModCache sets the module cache an ImportModule call resolves
// through. Without this option, New creates a private, empty cache.
func WithModCache(cache *modcache.Cache) Option {
	return func(c *Compiler) { c.cache = cache }
}

// WithConsoleOutput attaches a diag.ConsoleSink writing to w to every
// compilation's logger, rendering diagnostics in the classic
// "file:row:col: severity: message" style as they are emitted.
func WithConsoleOutput(w io.Writer, color bool) Option {
	return func(c *Compiler) {
		c.buildSinks = func(sources *text.SourceManager) []diag.Sink {
			return []diag.Sink{diag.NewConsoleSink(w, sources, color)}
		}
	}
}

// New returns a Compiler configured by opts.
func New(opts ...Option) *Compiler {
	c := &Compiler{cache: modcache.New()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompileSource lexes and parses content, attributing diagnostics to
// filename, and returns the outcome. It registers content with a private
// source manager first so diagnostics can render source-line context.
func (c *Compiler) CompileSource(content []byte, filename string) CompilationResult {
	sources := text.NewSourceManager()
	if err := sources.Register(filename, content); err != nil {
		return CompilationResult{Status: IOError}
	}

	a := arena.New()
	in := intern.New(a)
	logger := diag.NewLogger()
	for _, sink := range c.sinksFor(sources) {
		logger.AddSink(sink)
	}

	lx := lexer.New(filename, content, in, logger)
	mod := parser.Parse(lx, a, in, logger)

	status := Success
	if logger.HasErrors() {
		status = ParseError
	}
	return CompilationResult{
		Status:       status,
		AST:          mod,
		ErrorCount:   logger.ErrorCount(),
		WarningCount: logger.WarningCount(),
		Interner:     in,
		Arena:        a,
	}
}

func (c *Compiler) sinksFor(sources *text.SourceManager) []diag.Sink {
	if c.buildSinks == nil {
		return nil
	}
	return c.buildSinks(sources)
}

// CompileFile reads path from disk and compiles it via CompileSource.
func (c *Compiler) CompileFile(path string) CompilationResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return CompilationResult{Status: IOError}
	}
	return c.CompileSource(content, path)
}

// CompileFiles compiles every path concurrently, one arena/interner/logger
// per file as CompileFile already guarantees, and returns results aligned
// to paths by index. It stops launching new work once ctx is cancelled but
// still returns a full, index-aligned slice for whatever completed.
func (c *Compiler) CompileFiles(ctx context.Context, paths []string) ([]CompilationResult, error) {
	results := make([]CompilationResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.CompileFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ErrImportFailed is wrapped by every error ImportModule returns; when the
// failure is a circular import the error also wraps modcache.ErrCycle, so
// errors.Is matches either.
var ErrImportFailed = errors.New("compiler: import failed")

// ImportModule resolves modulePath against currentFile (relative import if
// it starts with "./" or "../", otherwise a library path taken as-is),
// consults the module cache — coalescing concurrent imports of the same
// resolved path and guarding against import cycles — and returns the
// imported module's AST. importLocation is used only to attribute a
// circular-import diagnostic to the importing `import` statement.
func (c *Compiler) ImportModule(modulePath, currentFile string, importLocation text.Location) (*ast.ModuleDecl, error) {
	resolved := resolveImportPath(modulePath, currentFile)

	if err := c.cache.BeginImport(resolved); err != nil {
		return nil, fmt.Errorf("%w: %s at %s: %w", ErrImportFailed, modulePath, importLocation, err)
	}
	defer c.cache.EndImport(resolved)

	entry, err := c.cache.Resolve(resolved, func() (*modcache.Entry, error) {
		result := c.CompileFile(resolved)
		if result.Status == IOError {
			return nil, fmt.Errorf("%w: cannot read %q", ErrImportFailed, resolved)
		}
		return &modcache.Entry{
			AST:          result.AST,
			ErrorCount:   result.ErrorCount,
			WarningCount: result.WarningCount,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	if !entry.Successful() {
		return nil, fmt.Errorf("%w: %q compiled with %d error(s)", ErrImportFailed, modulePath, entry.ErrorCount)
	}
	return entry.AST, nil
}

func resolveImportPath(modulePath, currentFile string) string {
	if strings.HasPrefix(modulePath, "./") || strings.HasPrefix(modulePath, "../") {
		return filepath.Join(filepath.Dir(currentFile), modulePath)
	}
	return modulePath
}
