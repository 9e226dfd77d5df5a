package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-blogdata/pkg/interfaces"
)

// DefaultPattern selects Markdown posts by extension.
const DefaultPattern = "*.md"

// LoaderConfig configures how Markdown files are discovered.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
}

// Loader reads the posts of a single directory level from an fs.FS.
type Loader struct {
	fs      fs.FS
	pattern string
}

var _ interfaces.DocumentLoader = (*Loader)(nil)

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}

	return &Loader{
		fs:      filesystem,
		pattern: pattern,
	}
}

// LoadFile reads and parses a single Markdown document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = path.Clean(name)
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	return BuildDocument(name, data), nil
}

// LoadDirectory lists dir without descending into sub-directories and parses
// every regular file matching the pattern. Documents come back in lexical
// filename order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := path.Clean(strings.TrimSpace(dir))
	if root == "" {
		root = "."
	}

	entries, err := fs.ReadDir(l.fs, root)
	if err != nil {
		return nil, fmt.Errorf("markdown loader list %s: %w", root, err)
	}

	docs := make([]*interfaces.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !l.matchesPattern(entry.Name()) {
			continue
		}

		doc, err := l.LoadFile(ctx, path.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (l *Loader) matchesPattern(name string) bool {
	match, err := path.Match(l.pattern, name)
	if err != nil {
		return false
	}
	return match
}

// BaseName returns the filename of p without directory or extension.
func BaseName(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
