package posts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic_CreatesDirectoryAndReplaces(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "out", "blogData.ts")

	if err := writeFileAtomic(target, []byte("first")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := writeFileAtomic(target, []byte("second")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected full overwrite, got %q", data)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteFileAtomic_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "blogData.ts")
	if err := os.WriteFile(target, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Renaming a file over a non-empty directory fails on every platform.
	blocked := filepath.Join(dir, "blocked")
	if err := os.MkdirAll(filepath.Join(blocked, "child"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := writeFileAtomic(blocked, []byte("new")); err == nil {
		t.Fatalf("expected rename over directory to fail")
	}

	data, err := os.ReadFile(target)
	if err != nil || string(data) != "previous" {
		t.Fatalf("previous file changed: %q, %v", data, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("temp file not cleaned up: %v", entries)
	}
}
