package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/compiler"
	"github.com/cxylang/frontend/internal/diag"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/sexpr"
)

const (
	exitOK         = 0
	exitParseError = 1
	exitInternal   = 2
)

type cliOptions struct {
	stdin          bool
	assumeFilename string
	debugTokens    bool
	debugAST       bool
	debugArena     bool
	path           string
}

func run(_ context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	opts, usage, err := parseArgs(args)
	if err != nil {
		writef(stderr, "cxyfront: %v\n\n%s", err, usage)
		return exitInternal
	}

	src, filename, err := readInput(stdin, opts)
	if err != nil {
		writef(stderr, "cxyfront: %v\n", err)
		return exitInternal
	}

	if opts.debugTokens {
		dumpTokens(stdout, filename, src)
	}

	c := compiler.New(compiler.WithConsoleOutput(stderr, false))
	result := c.CompileSource(src, filename)

	if opts.debugAST && result.AST != nil {
		dumpAST(stdout, result)
	}
	if opts.debugArena {
		dumpArenaStats(stdout, result.Arena)
	}

	switch {
	case result.Status == compiler.IOError || result.Status == compiler.InternalError:
		return exitInternal
	case !result.Successful():
		return exitParseError
	default:
		return exitOK
	}
}

func parseArgs(args []string) (cliOptions, string, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("cxyfront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.stdin, "stdin", false, "read input from stdin")
	fs.StringVar(&opts.assumeFilename, "assume-filename", "", "filename used for diagnostics when reading from stdin")
	fs.BoolVar(&opts.debugTokens, "debug-tokens", false, "dump lexer tokens")
	fs.BoolVar(&opts.debugAST, "debug-ast", false, "dump the parsed AST as an S-expression")
	fs.BoolVar(&opts.debugArena, "debug-arena", false, "dump arena allocator statistics")

	usage := cliUsage(fs)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, usage, err
	}

	rest := fs.Args()
	switch {
	case opts.stdin && len(rest) > 0:
		return cliOptions{}, usage, errors.New("positional file path is not allowed with --stdin")
	case !opts.stdin && len(rest) == 0:
		return cliOptions{}, usage, errors.New("exactly one input file path is required (or use --stdin)")
	case !opts.stdin && len(rest) != 1:
		return cliOptions{}, usage, errors.New("compiling multiple files in one invocation is not supported")
	}
	if !opts.stdin {
		opts.path = rest[0]
	}
	return opts, usage, nil
}

func cliUsage(fs *flag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  cxyfront [flags] path/to/file.cxy\n")
	b.WriteString("  cxyfront --stdin [--assume-filename foo.cxy] [flags]\n\n")
	b.WriteString("Flags:\n")
	fs.VisitAll(func(f *flag.Flag) {
		writef(&b, "  --%s\t%s\n", f.Name, f.Usage)
	})
	return b.String()
}

func readInput(stdin io.Reader, opts cliOptions) ([]byte, string, error) {
	if opts.stdin {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		filename := opts.assumeFilename
		if filename == "" {
			filename = "stdin.cxy"
		}
		return src, filename, nil
	}
	//nolint:gosec // CLI intentionally reads user-provided file paths.
	src, err := os.ReadFile(opts.path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", opts.path, err)
	}
	return src, opts.path, nil
}

// dumpTokens tokenizes src independently of the real compile, using a
// private arena/interner/logger so debug output never interleaves with the
// compile's own diagnostics.
func dumpTokens(w io.Writer, filename string, src []byte) {
	a := arena.New()
	in := intern.New(a)
	logger := diag.NewLogger()
	lx := lexer.New(filename, src, in, logger)

	writeln(w, "TOKENS")
	for {
		tok := lx.Next()
		writef(w, "[%s] kind=%s", tok.Location, tok.Kind)
		if tok.HasValue {
			writef(w, " value=%q", tokenValue(in, tok))
		}
		writeln(w)
		if tok.Kind == lexer.EoF {
			break
		}
	}
}

func tokenValue(in *intern.Interner, tok lexer.Token) string {
	switch tok.Kind {
	case lexer.Ident:
		return in.String(tok.Value.Ident)
	case lexer.StringLiteral:
		return in.String(tok.Value.Str)
	case lexer.IntLiteral:
		return fmt.Sprintf("%d", tok.Value.IntVal)
	case lexer.FloatLiteral:
		return fmt.Sprintf("%g", tok.Value.FloatVal)
	case lexer.CharLiteral:
		return fmt.Sprintf("%q", tok.Value.CharVal)
	default:
		return fmt.Sprintf("%v", tok.Value)
	}
}

func dumpAST(w io.Writer, result compiler.CompilationResult) {
	writeln(w, "AST")
	writeln(w, sexpr.Dump(result.Interner, result.AST))
}

func dumpArenaStats(w io.Writer, a *arena.Arena) {
	if a == nil {
		return
	}
	stats := a.Stats()
	writef(w, "ARENA chunks=%d reserved=%d allocated=%d nodes=%d\n",
		stats.ChunkCount, stats.Reserved, stats.Allocated, stats.NodeCount)
}

func writef(w io.Writer, format string, args ...any) {
	//nolint:gosec // Terminal/debug output helper; format strings are internal callsite constants.
	_, _ = io.WriteString(w, fmt.Sprintf(format, args...))
}

func writeln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}
