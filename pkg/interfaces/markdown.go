package interfaces

import "context"

// MarkdownParser converts Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Option names stay readable so
// they can be filled from YAML config and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// DocumentLoader discovers and parses the Markdown posts of a single directory.
type DocumentLoader interface {
	LoadDirectory(ctx context.Context, dir string) ([]*Document, error)
}

// Document is one Markdown source file split into metadata and body.
type Document struct {
	// FilePath is the slash separated path relative to the loader root.
	FilePath string
	// Name is the base filename without its extension.
	Name string
	// Source holds the raw file content, front-matter included.
	Source []byte
	// Body is the Markdown content after the front-matter block.
	Body        []byte
	FrontMatter FrontMatter
	// ParseErr records a tolerated front-matter failure. FrontMatter is empty
	// and Body equals Source when it is set.
	ParseErr error
}

// FrontMatter models the metadata block recognised at the top of a post.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Description string         `yaml:"description" json:"description"`
	Date        string         `yaml:"date" json:"date"`
	ReadTime    string         `yaml:"readTime" json:"readTime"`
	Category    string         `yaml:"category" json:"category"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	// Raw contains every key that was present in the block, including empty ones.
	Raw map[string]any `yaml:"-" json:"raw"`
}

// Has reports whether key was present in the front-matter block.
func (fm FrontMatter) Has(key string) bool {
	if fm.Raw == nil {
		return false
	}
	_, ok := fm.Raw[key]
	return ok
}
