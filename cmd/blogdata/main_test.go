package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blogdata"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func fixedClockBuilder(t *testing.T) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(cfg blogdata.Config, opts ...blogdata.Option) (*blogdata.Module, error) {
		opts = append(opts, blogdata.WithGeneratorOptions(blogdata.WithClock(func() time.Time {
			return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		})))
		return blogdata.New(cfg, opts...)
	}
}

func TestRunWritesModule(t *testing.T) {
	fixedClockBuilder(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "blogs")
	writePost(t, source, "a.md", "---\ntitle: Hello\ndate: 2024-01-01\n---\nHi.\n")
	writePost(t, source, "b.md", "---\ntitle: World\ndate: 2024-02-01\n---\nThere.\n")
	out := filepath.Join(dir, "src", "blogData.ts")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-source", source, "-out", out, "-log-level", "error"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "generated 2 posts") {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	if strings.Index(text, `"title": "World"`) > strings.Index(text, `"title": "Hello"`) {
		t.Fatalf("expected World before Hello:\n%s", text)
	}
}

func TestRunDryRunPrintsJSON(t *testing.T) {
	fixedClockBuilder(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "blogs")
	writePost(t, source, "post.md", "Just a body.\n")
	out := filepath.Join(dir, "out.json")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-source", source, "-out", out, "-format", "json", "-dry-run", "-no-images", "-log-level", "error",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "[") || !strings.Contains(stdout.String(), `"title": "post"`) {
		t.Fatalf("expected JSON array on stdout, got %q", stdout.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("dry run must not write output, stat err: %v", err)
	}
}

func TestRunMissingSourceFails(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{
		"-source", filepath.Join(dir, "nope"), "-out", filepath.Join(dir, "out.ts"), "-log-level", "fatal",
	}, &stdout, &stderr)
	if !errors.Is(err, blogdata.ErrDirectoryAccess) {
		t.Fatalf("expected directory access error, got %v", err)
	}
}

func TestRunRejectsInvalidFlagValues(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-format", "xml"}, &stdout, &stderr)
	if !errors.Is(err, blogdata.ErrFormatInvalid) {
		t.Fatalf("expected ErrFormatInvalid, got %v", err)
	}
}

func TestRunHelpIsNotAnError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-h"}, &stdout, &stderr); err != nil {
		t.Fatalf("expected nil error for -h, got %v", err)
	}
	if !strings.Contains(stderr.String(), "BLOGDATA_SOURCE_DIR") {
		t.Fatalf("expected environment help, got %q", stderr.String())
	}
}

func TestRunConfigFile(t *testing.T) {
	fixedClockBuilder(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "posts")
	writePost(t, source, "a.md", "---\ntitle: A\n---\nbody\n")
	out := filepath.Join(dir, "data.json")
	configPath := filepath.Join(dir, "blogdata.yaml")
	config := "posts:\n  sourceDir: " + source + "\n  outputPath: " + out + "\n  format: json\nlogging:\n  level: error\n"
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-config", configPath}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "[") {
		t.Fatalf("expected JSON output, got %q", data)
	}
}
