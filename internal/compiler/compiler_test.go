package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/text"
)

func TestCompileSourceSuccess(t *testing.T) {
	t.Parallel()

	c := New()
	result := c.CompileSource([]byte("func main() i32 => 0\n"), "main.cxy")

	if result.Status != Success {
		t.Fatalf("Status = %v, want Success", result.Status)
	}
	if !result.Successful() {
		t.Fatal("Successful() = false, want true")
	}
	if result.ErrorCount != 0 {
		t.Fatalf("ErrorCount = %d, want 0", result.ErrorCount)
	}
	if result.AST == nil || len(result.AST.MainContent) != 1 {
		t.Fatalf("AST.MainContent = %v, want one declaration", result.AST)
	}
	if _, ok := result.AST.MainContent[0].(*ast.FuncDecl); !ok {
		t.Fatalf("MainContent[0] = %T, want *ast.FuncDecl", result.AST.MainContent[0])
	}
}

func TestCompileSourceParseError(t *testing.T) {
	t.Parallel()

	c := New()
	result := c.CompileSource([]byte("func (\n"), "bad.cxy")

	if result.Status != ParseError {
		t.Fatalf("Status = %v, want ParseError", result.Status)
	}
	if result.ErrorCount == 0 {
		t.Fatal("ErrorCount = 0, want at least one logged error")
	}
	if result.Successful() {
		t.Fatal("Successful() = true for a result with errors")
	}
}

func TestCompileFileReadsFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ok.cxy")
	if err := os.WriteFile(path, []byte("var x: i32 = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := New()
	result := c.CompileFile(path)
	if result.Status != Success {
		t.Fatalf("Status = %v, want Success", result.Status)
	}
}

func TestCompileFileMissingIsIOError(t *testing.T) {
	t.Parallel()

	c := New()
	result := c.CompileFile(filepath.Join(t.TempDir(), "missing.cxy"))
	if result.Status != IOError {
		t.Fatalf("Status = %v, want IOError", result.Status)
	}
}

func TestCompileFilesBatchesConcurrently(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var paths []string
	for i, src := range []string{"var a: i32 = 1\n", "var b: i32 = 2\n", "func (\n"} {
		path := filepath.Join(dir, string(rune('a'+i))+".cxy")
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		paths = append(paths, path)
	}

	c := New()
	results, err := c.CompileFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("CompileFiles: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Status != Success || results[1].Status != Success {
		t.Fatalf("results[0:2] = %+v, want both Success", results[:2])
	}
	if results[2].Status != ParseError {
		t.Fatalf("results[2].Status = %v, want ParseError", results[2].Status)
	}
}

func TestImportModuleResolvesRelativePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.cxy")
	importedPath := filepath.Join(dir, "util.cxy")
	if err := os.WriteFile(importedPath, []byte("func helper() i32 => 42\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := New()
	mod, err := c.ImportModule("./util.cxy", mainPath, text.Location{})
	if err != nil {
		t.Fatalf("ImportModule: %v", err)
	}
	if len(mod.MainContent) != 1 {
		t.Fatalf("MainContent = %v, want one declaration", mod.MainContent)
	}
}

func TestImportModuleDetectsCycle(t *testing.T) {
	t.Parallel()

	c := New()
	resolved := "cyclic.cxy"
	if err := c.cache.BeginImport(resolved); err != nil {
		t.Fatalf("BeginImport: %v", err)
	}
	defer c.cache.EndImport(resolved)

	if _, err := c.ImportModule(resolved, "", text.Location{}); err == nil {
		t.Fatal("ImportModule re-entering an in-progress import should fail")
	}
}

func TestImportModuleMissingFileIsImportFailed(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.ImportModule("./nope.cxy", filepath.Join(t.TempDir(), "main.cxy"), text.Location{})
	if err == nil {
		t.Fatal("ImportModule for a missing file should fail")
	}
}
