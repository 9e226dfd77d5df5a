// Package blogdata turns a directory of Markdown blog posts into a generated
// TypeScript (or JSON) module holding one typed record per post, newest
// first.
package blogdata

import (
	"context"

	postscmd "github.com/goliatone/go-blogdata/internal/commands/posts"
	"github.com/goliatone/go-blogdata/internal/di"
	"github.com/goliatone/go-blogdata/internal/logging"
	"github.com/goliatone/go-blogdata/internal/posts"
	"github.com/goliatone/go-blogdata/internal/runtimeconfig"
	"github.com/goliatone/go-blogdata/pkg/interfaces"
)

type (
	Config         = runtimeconfig.Config
	PostsConfig    = runtimeconfig.PostsConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig

	Post   = posts.Post
	Result = posts.Result
	Format = posts.Format

	GeneratePostsCommand = postscmd.GeneratePostsCommand
	GeneratePostsHandler = postscmd.GeneratePostsHandler
	CronRegistrar        = postscmd.CronRegistrar

	Option = di.Option
)

const (
	FormatTypeScript = posts.FormatTypeScript
	FormatJSON       = posts.FormatJSON
)

var (
	ErrDirectoryAccess = posts.ErrDirectoryAccess
	ErrParse           = posts.ErrParse
	ErrWrite           = posts.ErrWrite

	ErrSourceDirRequired      = runtimeconfig.ErrSourceDirRequired
	ErrOutputPathRequired     = runtimeconfig.ErrOutputPathRequired
	ErrFormatInvalid          = runtimeconfig.ErrFormatInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrConfigFileNotFound     = runtimeconfig.ErrConfigFileNotFound
)

var (
	WithLoggerProvider   = di.WithLoggerProvider
	WithLogWriter        = di.WithLogWriter
	WithGeneratorOptions = di.WithGeneratorOptions
	WithHandlerOptions   = di.WithHandlerOptions
	WithCommandRegistry  = di.WithCommandRegistry
	WithCronSchedule     = di.WithCronSchedule
	WithClock            = posts.WithClock
)

// DefaultConfig returns the configuration for the conventional blog layout.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads configuration from env files, a YAML file and the
// environment. See runtimeconfig.Load.
func LoadConfig(path string, envFiles ...string) (Config, error) {
	return runtimeconfig.Load(path, envFiles...)
}

// DescribeEnvironment lists the environment variables LoadConfig understands.
func DescribeEnvironment() string {
	return runtimeconfig.Describe()
}

// Module is the configured generator.
type Module struct {
	container *di.Container
}

// New validates cfg and wires the module.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Generate regenerates the posts module described by the configuration.
func (m *Module) Generate(ctx context.Context) (*Result, error) {
	return m.container.GeneratePostsHandler().Generate(ctx, m.container.GeneratePostsCommand())
}

// GenerateWith runs cmd instead of the configured command. Unset optional
// fields fall back to the configuration.
func (m *Module) GenerateWith(ctx context.Context, cmd GeneratePostsCommand) (*Result, error) {
	return m.container.GeneratePostsHandler().Generate(ctx, cmd)
}

// Command returns the generate command derived from the configuration.
func (m *Module) Command() GeneratePostsCommand {
	return m.container.GeneratePostsCommand()
}

// Handler exposes the command handler, e.g. for dispatcher registration.
func (m *Module) Handler() *GeneratePostsHandler {
	return m.container.GeneratePostsHandler()
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config()
}

// Logger returns a logger named after module, backed by the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), module)
}
