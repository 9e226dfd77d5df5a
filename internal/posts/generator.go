package posts

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-blogdata/internal/logging"
	"github.com/goliatone/go-blogdata/internal/markdown"
	"github.com/goliatone/go-blogdata/pkg/interfaces"
	"github.com/google/uuid"
)

// Option customises a Generator.
type Option func(*Generator)

// WithLogger overrides the logger used for run events.
func WithLogger(logger interfaces.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock overrides the clock used for the default post date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithSourceFS reads posts from fsys instead of Config.SourceDir.
func WithSourceFS(fsys fs.FS) Option {
	return func(g *Generator) {
		g.sourceFS = fsys
	}
}

// WithImagesFS reads images from fsys instead of the images directory.
func WithImagesFS(fsys fs.FS) Option {
	return func(g *Generator) {
		g.imagesFS = fsys
	}
}

// WithParser overrides the renderer used when content is included.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(g *Generator) {
		if parser != nil {
			g.parser = parser
		}
	}
}

// WithRunIDs overrides run id generation.
func WithRunIDs(next func() string) Option {
	return func(g *Generator) {
		if next != nil {
			g.runID = next
		}
	}
}

// Generator turns a directory of Markdown posts into one generated module.
type Generator struct {
	cfg      Config
	logger   interfaces.Logger
	now      func() time.Time
	sourceFS fs.FS
	imagesFS fs.FS
	parser   interfaces.MarkdownParser
	runID    func() string
}

// NewGenerator validates cfg and wires the generator.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	g := &Generator{
		logger: logging.NoOp(),
		now:    time.Now,
		runID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	if err := cfg.validate(g.sourceFS != nil); err != nil {
		return nil, err
	}
	g.cfg = cfg.withDefaults()

	if g.sourceFS == nil {
		g.sourceFS = os.DirFS(g.cfg.SourceDir)
	}
	if g.imagesFS == nil && g.cfg.DiscoverImages {
		g.imagesFS = os.DirFS(g.cfg.imagesDir())
	}
	if g.parser == nil {
		g.parser = markdown.NewGoldmarkParser(g.cfg.Markdown)
	}
	return g, nil
}

// Config returns the effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate runs the pipeline: enumerate, parse, assemble, discover images,
// order, emit and (unless DryRun) write. Per-file front-matter problems are
// logged and collected in Result.ParseErrors; directory, render and write
// failures abort the run.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	runID := g.runID()
	logger := logging.WithRunContext(g.logger, runID, g.cfg.SourceDir).WithContext(ctx)
	generatedAt := g.now().UTC()

	loader := markdown.NewLoader(g.sourceFS, markdown.LoaderConfig{Pattern: g.cfg.Pattern})
	docs, err := loader.LoadDirectory(ctx, ".")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		wrapped := directoryAccessError(g.cfg.SourceDir, err)
		logger.Error("posts.source.unreadable", "error", wrapped)
		return nil, wrapped
	}

	images := g.imageNames(logger)
	defaultDate := generatedAt.Format(time.RFC3339)

	result := &Result{
		RunID:       runID,
		OutputPath:  g.cfg.OutputPath,
		Format:      g.cfg.Format,
		Posts:       make([]Post, 0, len(docs)),
		GeneratedAt: generatedAt,
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileLogger := logging.WithPostFile(logger, doc.FilePath)

		if doc.ParseErr != nil {
			perr := parseError(doc.FilePath, doc.ParseErr)
			result.ParseErrors = append(result.ParseErrors, perr)
			fileLogger.Warn("posts.parse.failed", "error", perr)
		}

		post, err := g.assemble(doc, defaultDate, images)
		if err != nil {
			fileLogger.Error("posts.render.failed", "error", err)
			return nil, err
		}
		fileLogger.Debug("posts.post.assembled",
			"slug", post.Slug,
			"images", len(post.Images),
			"description_derived", post.DescriptionDerived,
		)
		result.Posts = append(result.Posts, post)
	}

	SortByDate(result.Posts)

	output, err := Render(result.Posts, g.cfg.Format)
	if err != nil {
		wrapped := renderError(g.cfg.OutputPath, err)
		logger.Error("posts.render.failed", "error", wrapped)
		return nil, wrapped
	}
	result.Output = output

	if !g.cfg.DryRun {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := writeFileAtomic(g.cfg.OutputPath, output); err != nil {
			wrapped := writeError(g.cfg.OutputPath, err)
			logger.Error("posts.write.failed", "error", wrapped)
			return nil, wrapped
		}
		result.Written = true
	}

	logger.Info("posts.generate.completed",
		"posts", result.Count(),
		"parse_errors", len(result.ParseErrors),
		"output", g.cfg.OutputPath,
		"format", string(g.cfg.Format),
		"dry_run", g.cfg.DryRun,
	)

	return result, nil
}

func (g *Generator) imageNames(logger interfaces.Logger) []string {
	if !g.cfg.DiscoverImages || g.imagesFS == nil {
		return nil
	}
	names, err := listImages(g.imagesFS)
	if err != nil {
		// A missing images directory simply means no post has images.
		logger.Debug("posts.images.unavailable", "directory", g.cfg.imagesDir(), "error", err)
		return nil
	}
	return names
}

func (g *Generator) assemble(doc *interfaces.Document, defaultDate string, images []string) (Post, error) {
	fm := doc.FrontMatter

	post := Post{
		Title:       firstNonBlank(fm.Title, doc.Name),
		Slug:        postSlug(fm.Slug, doc.Name),
		Date:        strings.TrimSpace(fm.Date),
		ReadTime:    firstNonBlank(fm.ReadTime, g.cfg.DefaultReadTime),
		Category:    firstNonBlank(fm.Category, g.cfg.DefaultCategory),
		Tags:        compactTags(fm.Tags),
		Images:      matchImages(images, doc.Name, g.cfg.ImageURLPrefix),
		Source:      doc.FilePath,
		ParseFailed: doc.ParseErr != nil,
	}

	if fm.Has("description") {
		post.Description = fm.Description
	} else {
		post.Description = markdown.ExtractSummary(doc.Source, g.cfg.DescriptionLimit)
		post.DescriptionDerived = true
	}

	if post.Date == "" {
		post.Date = defaultDate
		post.DateDefaulted = true
	}

	if g.cfg.IncludeContent {
		html, err := g.parser.Parse(doc.Body)
		if err != nil {
			return Post{}, renderError(doc.FilePath, err)
		}
		post.Content = string(html)
	}

	return post, nil
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func compactTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsDirectoryAccess reports whether err stems from an unreadable source directory.
func IsDirectoryAccess(err error) bool {
	return errors.Is(err, ErrDirectoryAccess)
}
