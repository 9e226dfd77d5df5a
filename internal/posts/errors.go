package posts

import (
	"errors"
	"fmt"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeDirectoryAccess = "POSTS_DIRECTORY_ACCESS"
	textCodeParse           = "POSTS_PARSE_FAILED"
	textCodeWrite           = "POSTS_WRITE_FAILED"
	textCodeRender          = "POSTS_RENDER_FAILED"
)

var (
	// ErrDirectoryAccess marks a source or images directory that is missing or unreadable.
	ErrDirectoryAccess = errors.New("posts: directory access failed")
	// ErrParse marks a post whose front matter could not be parsed. It is
	// reported per file and never aborts a run.
	ErrParse = errors.New("posts: front matter parse failed")
	// ErrWrite marks a destination that could not be written.
	ErrWrite = errors.New("posts: write failed")
	// ErrRender marks a failure rendering the output module or post content.
	ErrRender = errors.New("posts: render failed")
)

func directoryAccessError(dir string, err error) error {
	category := goerrors.CategoryInternal
	if errors.Is(err, fs.ErrNotExist) {
		category = goerrors.CategoryNotFound
	}
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrDirectoryAccess, dir, err), category, "posts source directory is not readable").
		WithTextCode(textCodeDirectoryAccess).
		WithMetadata(map[string]any{"directory": dir})
}

func parseError(file string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrParse, file, err), goerrors.CategoryBadInput, "post front matter ignored").
		WithTextCode(textCodeParse).
		WithMetadata(map[string]any{"file": file})
}

func writeError(path string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrWrite, path, err), goerrors.CategoryInternal, "posts output could not be written").
		WithTextCode(textCodeWrite).
		WithMetadata(map[string]any{"output": path})
}

func renderError(target string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrRender, target, err), goerrors.CategoryInternal, "posts output could not be rendered").
		WithTextCode(textCodeRender)
}
