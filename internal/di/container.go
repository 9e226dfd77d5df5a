package di

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-blogdata/internal/commands"
	postscmd "github.com/goliatone/go-blogdata/internal/commands/posts"
	"github.com/goliatone/go-blogdata/internal/logging"
	"github.com/goliatone/go-blogdata/internal/logging/console"
	"github.com/goliatone/go-blogdata/internal/logging/gologger"
	"github.com/goliatone/go-blogdata/internal/posts"
	"github.com/goliatone/go-blogdata/internal/runtimeconfig"
	"github.com/goliatone/go-blogdata/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// Container wires the generator, its command handler and logging from a
// validated runtime configuration.
type Container struct {
	config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	generatorOpts []posts.Option
	registry      postscmd.CommandRegistry
	handlerOpts   []postscmd.HandlerOption

	cronRegistrar postscmd.CronRegistrar
	cronConfig    command.HandlerConfig

	generatePosts *postscmd.GeneratePostsHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter redirects the console provider (stderr by default).
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithGeneratorOptions forwards options to every generator the container builds.
func WithGeneratorOptions(opts ...posts.Option) Option {
	return func(c *Container) {
		c.generatorOpts = append(c.generatorOpts, opts...)
	}
}

// WithHandlerOptions forwards options to the generate-posts handler.
func WithHandlerOptions(opts ...postscmd.HandlerOption) Option {
	return func(c *Container) {
		c.handlerOpts = append(c.handlerOpts, opts...)
	}
}

// WithCommandRegistry registers the command handlers with reg.
func WithCommandRegistry(reg postscmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithCronSchedule registers a periodic regeneration of the configured
// command with reg, using cfg (e.g. Expression "@every 5m") as the schedule.
func WithCronSchedule(reg postscmd.CronRegistrar, cfg command.HandlerConfig) Option {
	return func(c *Container) {
		c.cronRegistrar = reg
		c.cronConfig = cfg
	}
}

// NewContainer validates cfg and builds the container.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "blogdata.di").Debug("container.configured",
		"logging_provider", c.providerName(),
		"source_dir", cfg.Posts.SourceDir,
		"output_path", cfg.Posts.OutputPath,
		"timeout", cfg.Timeout.String(),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	switch c.providerName() {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:  c.config.Logging.Level,
			Format: c.config.Logging.Format,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level, ok := console.ParseLevel(c.config.Logging.Level)
		if !ok {
			return runtimeconfig.ErrLoggingLevelInvalid
		}
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureCommands() error {
	generatorOpts := append([]posts.Option{
		posts.WithLogger(logging.PostsLogger(c.loggerProvider)),
	}, c.generatorOpts...)

	handlerOpts := append([]postscmd.HandlerOption{
		postscmd.WithGeneratorOptions(generatorOpts...),
		postscmd.WithCommandOptions(commands.WithTimeout[postscmd.GeneratePostsCommand](c.config.Timeout)),
	}, c.handlerOpts...)

	handler, err := postscmd.RegisterPostsCommands(c.registry, PostsConfig(c.config), c.loggerProvider, handlerOpts...)
	if err != nil {
		return fmt.Errorf("di: register posts commands: %w", err)
	}
	c.generatePosts = handler

	if err := postscmd.RegisterPostsCron(c.cronRegistrar, handler, c.cronConfig, c.GeneratePostsCommand()); err != nil {
		return fmt.Errorf("di: register posts cron: %w", err)
	}
	return nil
}

func (c *Container) providerName() string {
	name := strings.ToLower(strings.TrimSpace(c.config.Logging.Provider))
	if name == "" {
		return "console"
	}
	return name
}

// Config returns the validated runtime configuration.
func (c *Container) Config() runtimeconfig.Config {
	return c.config
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// GeneratePostsHandler returns the generate-posts command handler.
func (c *Container) GeneratePostsHandler() *postscmd.GeneratePostsHandler {
	return c.generatePosts
}

// GeneratePostsCommand builds the command described by the configuration.
func (c *Container) GeneratePostsCommand() postscmd.GeneratePostsCommand {
	p := c.config.Posts
	return postscmd.GeneratePostsCommand{
		SourceDir:      p.SourceDir,
		OutputPath:     p.OutputPath,
		ImagesDir:      p.ImagesDir,
		Format:         p.Format,
		IncludeContent: p.IncludeContent,
		SkipImages:     !p.DiscoverImages,
		DryRun:         p.DryRun,
	}
}

// PostsConfig maps the runtime configuration onto the generator's.
func PostsConfig(cfg runtimeconfig.Config) posts.Config {
	format, err := posts.ParseFormat(cfg.Posts.Format)
	if err != nil {
		format = posts.FormatTypeScript
	}
	return posts.Config{
		SourceDir:        cfg.Posts.SourceDir,
		OutputPath:       cfg.Posts.OutputPath,
		ImagesDir:        cfg.Posts.ImagesDir,
		ImageURLPrefix:   cfg.Posts.ImageURLPrefix,
		DiscoverImages:   cfg.Posts.DiscoverImages,
		Format:           format,
		IncludeContent:   cfg.Posts.IncludeContent,
		DefaultReadTime:  cfg.Posts.DefaultReadTime,
		DefaultCategory:  cfg.Posts.DefaultCategory,
		DescriptionLimit: cfg.Posts.DescriptionLimit,
		Markdown: interfaces.ParseOptions{
			Extensions: append([]string(nil), cfg.Markdown.Extensions...),
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		},
		DryRun: cfg.Posts.DryRun,
	}
}
