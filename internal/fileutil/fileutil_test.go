package fileutil_test

// Notes:
// - The WriteString and Close error branches in WriteTempFile are not tested
//   because triggering disk write failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"valid extension md", "md", nil},
		{"valid extension html", "html", nil},
		{"empty extension", "", fileutil.ErrExtensionEmpty},
		{"forward slash path traversal", "../etc/passwd", fileutil.ErrExtensionPathTraversal},
		{"backslash path traversal", "..\\windows\\system32", fileutil.ErrExtensionPathTraversal},
		{"null byte injection", "html\x00exe", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp file lifecycle
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("# Deck", "md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "md2slides-") {
		t.Errorf("temp file %q lacks md2slides- prefix", path)
	}
	if !strings.HasSuffix(path, ".md") {
		t.Errorf("temp file %q lacks .md extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "# Deck" {
		t.Errorf("content = %q", data)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cleanup did not remove the file")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("x", "../md")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("error = %v, want ErrExtensionPathTraversal", err)
	}
	if cleanup != nil {
		t.Error("cleanup should be nil on error")
	}
}

// ---------------------------------------------------------------------------
// TestMakeTempDir - Per-run working directory
// ---------------------------------------------------------------------------

func TestMakeTempDir(t *testing.T) {
	t.Parallel()

	dir, cleanup, err := fileutil.MakeTempDir("run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(dir), "md2slides-run-") {
		t.Errorf("dir %q lacks md2slides-run- prefix", dir)
	}

	path, err := fileutil.WriteInDir(dir, "probe.md", "content")
	if err != nil {
		t.Fatalf("WriteInDir: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("WriteInDir wrote to %q, want inside %q", path, dir)
	}

	cleanup()
	if fileutil.DirExists(dir) {
		t.Error("cleanup did not remove the directory")
	}
}

func TestMakeTempDir_InvalidTag(t *testing.T) {
	t.Parallel()

	_, _, err := fileutil.MakeTempDir("a/b")
	if !errors.Is(err, fileutil.ErrInvalidFileName) {
		t.Errorf("error = %v, want ErrInvalidFileName", err)
	}
}

func TestWriteInDir_InvalidName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"", "../escape.md", "sub/probe.md", "a\x00b"} {
		if _, err := fileutil.WriteInDir(dir, name, "x"); !errors.Is(err, fileutil.ErrInvalidFileName) {
			t.Errorf("WriteInDir(%q) error = %v, want ErrInvalidFileName", name, err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists / TestIsExecutable - Path predicates
// ---------------------------------------------------------------------------

func TestPathPredicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "marp")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0o700); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing")

	if !fileutil.FileExists(file) || fileutil.FileExists(dir) || fileutil.FileExists(missing) {
		t.Error("FileExists mismatch")
	}
	if !fileutil.DirExists(dir) || fileutil.DirExists(file) || fileutil.DirExists(missing) {
		t.Error("DirExists mismatch")
	}
	if !fileutil.IsExecutable(script) {
		t.Error("IsExecutable(script) = false, want true")
	}
	if fileutil.IsExecutable(dir) || fileutil.IsExecutable(missing) {
		t.Error("IsExecutable should be false for directories and missing paths")
	}
	if runtime.GOOS != "windows" && fileutil.IsExecutable(file) {
		t.Error("IsExecutable(plain file) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"talk", false},
		{"my-config", false},
		{"./talk.yaml", true},
		{"../shared/talk.yaml", true},
		{"/abs/talk.yaml", true},
		{`C:\cfg\talk.yaml`, true},
	}
	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.in); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"talk.md", true},
		{"talk.MD", true},
		{"notes.markdown", true},
		{"talk.md.bak", false},
		{"deck.html", false},
		{"README", false},
	}
	for _, tt := range tests {
		if got := fileutil.IsMarkdown(tt.in); got != tt.want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
