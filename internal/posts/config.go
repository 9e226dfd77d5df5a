package posts

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blogdata/internal/markdown"
	"github.com/goliatone/go-blogdata/pkg/interfaces"
)

const (
	DefaultReadTime = "5 min read"
	DefaultCategory = "Uncategorized"
)

var (
	ErrSourceDirRequired  = errors.New("posts: source directory is required")
	ErrOutputPathRequired = errors.New("posts: output path is required")
)

// Config drives a generator run. Paths are explicit; nothing is resolved
// against package-level state.
type Config struct {
	SourceDir  string
	OutputPath string
	// ImagesDir defaults to <SourceDir>/images.
	ImagesDir      string
	ImageURLPrefix string
	DiscoverImages bool
	Format         Format
	IncludeContent bool

	DefaultReadTime  string
	DefaultCategory  string
	DescriptionLimit int
	// Pattern selects post files within SourceDir (defaults to "*.md").
	Pattern string

	Markdown interfaces.ParseOptions
	// DryRun renders the module without writing OutputPath.
	DryRun bool
}

// DefaultConfig mirrors the layout of the blog front-end this generator feeds.
func DefaultConfig() Config {
	return Config{
		SourceDir:        filepath.Join("src", "content", "blogs"),
		OutputPath:       filepath.Join("src", "content", "blogData.ts"),
		ImageURLPrefix:   DefaultImageURLPrefix,
		DiscoverImages:   true,
		Format:           FormatTypeScript,
		DefaultReadTime:  DefaultReadTime,
		DefaultCategory:  DefaultCategory,
		DescriptionLimit: markdown.DefaultSummaryLimit,
		Pattern:          markdown.DefaultPattern,
		Markdown: interfaces.ParseOptions{
			Extensions: []string{"gfm"},
		},
	}
}

// validate reports configuration the generator cannot run with. Sources
// injected through WithSourceFS satisfy the source requirement.
func (c Config) validate(hasSourceFS bool) error {
	if strings.TrimSpace(c.SourceDir) == "" && !hasSourceFS {
		return ErrSourceDirRequired
	}
	if strings.TrimSpace(c.OutputPath) == "" && !c.DryRun {
		return ErrOutputPathRequired
	}
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	return nil
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.DefaultReadTime) == "" {
		c.DefaultReadTime = DefaultReadTime
	}
	if strings.TrimSpace(c.DefaultCategory) == "" {
		c.DefaultCategory = DefaultCategory
	}
	if c.DescriptionLimit <= 0 || c.DescriptionLimit > markdown.DefaultSummaryLimit {
		c.DescriptionLimit = markdown.DefaultSummaryLimit
	}
	if strings.TrimSpace(c.ImageURLPrefix) == "" {
		c.ImageURLPrefix = DefaultImageURLPrefix
	}
	c.Format, _ = ParseFormat(string(c.Format))
	return c
}

func (c Config) imagesDir() string {
	if dir := strings.TrimSpace(c.ImagesDir); dir != "" {
		return dir
	}
	return filepath.Join(c.SourceDir, "images")
}
