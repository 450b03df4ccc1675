package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCompilesValidFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ok.cxy")
	if err := os.WriteFile(path, []byte("func main() i32 => 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(""), &out, &errb, []string{path})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d, stderr=%q", code, exitOK, errb.String())
	}
}

func TestRunReportsParseErrorExitCode(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader("func (\n"), &out, &errb, []string{"--stdin"})
	if code != exitParseError {
		t.Fatalf("exit code = %d, want %d", code, exitParseError)
	}
	if errb.Len() == 0 {
		t.Fatal("expected a diagnostic on stderr")
	}
}

func TestRunRejectsMissingInput(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(""), &out, &errb, nil)
	if code != exitInternal {
		t.Fatalf("exit code = %d, want %d", code, exitInternal)
	}
	if !strings.Contains(errb.String(), "input file path") {
		t.Fatalf("stderr missing usage message: %q", errb.String())
	}
}

func TestRunDebugTokensDumpsLexerStream(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader("var x = 1\n"), &out, &errb, []string{"--stdin", "--debug-tokens"})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d, stderr=%q", code, exitOK, errb.String())
	}
	if !strings.Contains(out.String(), "TOKENS") {
		t.Fatalf("stdout missing token dump: %q", out.String())
	}
	if !strings.Contains(out.String(), "kind=var") {
		t.Fatalf("stdout missing var token: %q", out.String())
	}
}

func TestRunDebugASTDumpsSExpression(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader("var x = 1\n"), &out, &errb, []string{"--stdin", "--debug-ast"})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d, stderr=%q", code, exitOK, errb.String())
	}
	if !strings.Contains(out.String(), "(VariableDeclaration") {
		t.Fatalf("stdout missing AST dump: %q", out.String())
	}
}

func TestRunDebugArenaDumpsStats(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader("var x = 1\n"), &out, &errb, []string{"--stdin", "--debug-arena"})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d, stderr=%q", code, exitOK, errb.String())
	}
	if !strings.Contains(out.String(), "ARENA") {
		t.Fatalf("stdout missing arena stats: %q", out.String())
	}
}
