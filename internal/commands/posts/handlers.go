package postscmd

import (
	"context"
	"strings"

	"github.com/goliatone/go-blogdata/internal/commands"
	"github.com/goliatone/go-blogdata/internal/logging"
	"github.com/goliatone/go-blogdata/internal/posts"
	"github.com/goliatone/go-blogdata/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const generateOperation = "posts.generate"

var _ command.Commander[GeneratePostsCommand] = (*GeneratePostsHandler)(nil)

// Generator is the part of posts.Generator the handler depends on.
type Generator interface {
	Generate(ctx context.Context) (*posts.Result, error)
}

// GeneratorFactory builds a generator for one command execution.
type GeneratorFactory func(cfg posts.Config) (Generator, error)

// HandlerOption customises a GeneratePostsHandler.
type HandlerOption func(*GeneratePostsHandler)

// WithGeneratorFactory replaces posts.NewGenerator, mainly for tests.
func WithGeneratorFactory(factory GeneratorFactory) HandlerOption {
	return func(h *GeneratePostsHandler) {
		if factory != nil {
			h.factory = factory
		}
	}
}

// WithGeneratorOptions forwards options to every posts.NewGenerator call.
func WithGeneratorOptions(opts ...posts.Option) HandlerOption {
	return func(h *GeneratePostsHandler) {
		h.generatorOpts = append(h.generatorOpts, opts...)
	}
}

// WithResultHook registers fn to receive every successful result. Useful
// when the handler runs behind a dispatcher.
func WithResultHook(fn func(*posts.Result)) HandlerOption {
	return func(h *GeneratePostsHandler) {
		h.onResult = fn
	}
}

// WithCommandOptions forwards options to the shared command handler.
func WithCommandOptions(opts ...commands.HandlerOption[GeneratePostsCommand]) HandlerOption {
	return func(h *GeneratePostsHandler) {
		h.commandOpts = append(h.commandOpts, opts...)
	}
}

// GeneratePostsHandler runs the post generator through the shared command
// handler foundation.
type GeneratePostsHandler struct {
	base          posts.Config
	logger        interfaces.Logger
	factory       GeneratorFactory
	generatorOpts []posts.Option
	commandOpts   []commands.HandlerOption[GeneratePostsCommand]
	onResult      func(*posts.Result)
}

// NewGeneratePostsHandler creates a handler that overlays each command onto base.
func NewGeneratePostsHandler(base posts.Config, logger interfaces.Logger, opts ...HandlerOption) *GeneratePostsHandler {
	h := &GeneratePostsHandler{
		base:   base,
		logger: commands.EnsureLogger(logger),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if h.factory == nil {
		h.factory = func(cfg posts.Config) (Generator, error) {
			return posts.NewGenerator(cfg, h.generatorOpts...)
		}
	}
	return h
}

// Execute satisfies command.Commander[GeneratePostsCommand].
func (h *GeneratePostsHandler) Execute(ctx context.Context, msg GeneratePostsCommand) error {
	_, err := h.Generate(ctx, msg)
	return err
}

// Generate executes msg and returns the generator result.
func (h *GeneratePostsHandler) Generate(ctx context.Context, msg GeneratePostsCommand) (*posts.Result, error) {
	var result *posts.Result

	exec := func(ctx context.Context, msg GeneratePostsCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ctx = logging.ContextWithFields(ctx, map[string]any{"operation": generateOperation})

		gen, err := h.factory(h.configFor(msg))
		if err != nil {
			return err
		}
		res, err := gen.Generate(ctx)
		if err != nil {
			return err
		}
		result = res

		logging.WithFields(h.logger, map[string]any{
			"run_id":        res.RunID,
			"post_count":    res.Count(),
			"parse_errors":  len(res.ParseErrors),
			"output":        res.OutputPath,
			"written":       res.Written,
			"dry_run":       msg.DryRun,
			"output_format": string(res.Format),
		}).Info("posts.command.generate.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[GeneratePostsCommand]{
		commands.WithLogger[GeneratePostsCommand](h.logger),
		commands.WithOperation[GeneratePostsCommand](generateOperation),
		commands.WithMessageFields(func(msg GeneratePostsCommand) map[string]any {
			fields := map[string]any{
				"source_dir": msg.SourceDir,
			}
			if msg.OutputPath != "" {
				fields["output_path"] = msg.OutputPath
			}
			if msg.Format != "" {
				fields["format"] = msg.Format
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GeneratePostsCommand](h.logger)),
	}
	handlerOpts = append(handlerOpts, h.commandOpts...)

	if err := commands.NewHandler(exec, handlerOpts...).Execute(ctx, msg); err != nil {
		return nil, err
	}
	if h.onResult != nil && result != nil {
		h.onResult(result)
	}
	return result, nil
}

// configFor overlays the command onto the handler's base configuration.
func (h *GeneratePostsHandler) configFor(msg GeneratePostsCommand) posts.Config {
	cfg := h.base
	cfg.SourceDir = strings.TrimSpace(msg.SourceDir)
	cfg.OutputPath = strings.TrimSpace(msg.OutputPath)
	if dir := strings.TrimSpace(msg.ImagesDir); dir != "" {
		cfg.ImagesDir = dir
	}
	if format := strings.TrimSpace(msg.Format); format != "" {
		cfg.Format = posts.Format(format)
	}
	if msg.IncludeContent {
		cfg.IncludeContent = true
	}
	if msg.SkipImages {
		cfg.DiscoverImages = false
	}
	cfg.DryRun = cfg.DryRun || msg.DryRun
	return cfg
}
