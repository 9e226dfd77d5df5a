package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvConfigPath names the variable consulted when Load receives no path.
const EnvConfigPath = "BLOGDATA_CONFIG"

// DefaultEnvFile is loaded, when present, before reading configuration.
const DefaultEnvFile = ".env"

// Derived descriptions never exceed this many characters.
const maxDescriptionLimit = 150

var ErrSourceDirRequired = errors.New("blogdata config: posts source directory is required")
var ErrOutputPathRequired = errors.New("blogdata config: posts output path is required")
var ErrFormatInvalid = errors.New("blogdata config: posts format must be ts or json")
var ErrDescriptionLimitInvalid = errors.New("blogdata config: description limit must be between 4 and 150")
var ErrTimeoutInvalid = errors.New("blogdata config: timeout must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("blogdata config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blogdata config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blogdata config: logging format is invalid")
var ErrConfigFileNotFound = errors.New("blogdata config: config file does not exist")

// Config aggregates the settings of one generator invocation.
// Loading order: DefaultConfig, then the YAML file, then environment
// variables. Command-line flags are applied by the caller on top.
type Config struct {
	Posts    PostsConfig    `yaml:"posts"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Logging  LoggingConfig  `yaml:"logging"`
	// Timeout bounds a whole generate command; zero disables it.
	Timeout time.Duration `yaml:"timeout" env:"BLOGDATA_TIMEOUT" env-description:"generate command timeout"`
}

// PostsConfig captures source, destination and record defaults.
type PostsConfig struct {
	SourceDir        string `yaml:"sourceDir" env:"BLOGDATA_SOURCE_DIR" env-description:"directory holding the Markdown posts"`
	OutputPath       string `yaml:"outputPath" env:"BLOGDATA_OUTPUT_PATH" env-description:"generated module path"`
	ImagesDir        string `yaml:"imagesDir" env:"BLOGDATA_IMAGES_DIR" env-description:"images directory, defaults to <sourceDir>/images"`
	ImageURLPrefix   string `yaml:"imageUrlPrefix" env:"BLOGDATA_IMAGE_URL_PREFIX" env-description:"public prefix for image paths"`
	DiscoverImages   bool   `yaml:"discoverImages" env:"BLOGDATA_DISCOVER_IMAGES" env-description:"attach images matching the post filename"`
	Format           string `yaml:"format" env:"BLOGDATA_FORMAT" env-description:"output format, ts or json"`
	IncludeContent   bool   `yaml:"includeContent" env:"BLOGDATA_INCLUDE_CONTENT" env-description:"render post bodies to HTML"`
	DefaultReadTime  string `yaml:"defaultReadTime" env:"BLOGDATA_DEFAULT_READ_TIME" env-description:"readTime used when a post omits it"`
	DefaultCategory  string `yaml:"defaultCategory" env:"BLOGDATA_DEFAULT_CATEGORY" env-description:"category used when a post omits it"`
	DescriptionLimit int    `yaml:"descriptionLimit" env:"BLOGDATA_DESCRIPTION_LIMIT" env-description:"maximum derived description length"`
	DryRun           bool   `yaml:"dryRun" env:"BLOGDATA_DRY_RUN" env-description:"render without writing the output"`
}

// MarkdownConfig tunes HTML rendering when content is included.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions" env:"BLOGDATA_MARKDOWN_EXTENSIONS" env-separator:"," env-description:"goldmark extensions"`
	HardWraps  bool     `yaml:"hardWraps" env:"BLOGDATA_MARKDOWN_HARD_WRAPS" env-description:"render soft line breaks as <br>"`
	SafeMode   bool     `yaml:"safeMode" env:"BLOGDATA_MARKDOWN_SAFE_MODE" env-description:"drop raw HTML from post bodies"`
}

// LoggingConfig selects the logging provider.
type LoggingConfig struct {
	Provider string `yaml:"provider" env:"BLOGDATA_LOG_PROVIDER" env-description:"console or gologger"`
	Level    string `yaml:"level" env:"BLOGDATA_LOG_LEVEL" env-description:"trace, debug, info, warn, error or fatal"`
	Format   string `yaml:"format" env:"BLOGDATA_LOG_FORMAT" env-description:"gologger format: console, json or pretty"`
}

// DefaultConfig matches the layout of the blog front-end.
func DefaultConfig() Config {
	return Config{
		Posts: PostsConfig{
			SourceDir:        filepath.Join("src", "content", "blogs"),
			OutputPath:       filepath.Join("src", "content", "blogData.ts"),
			ImageURLPrefix:   "/images/",
			DiscoverImages:   true,
			Format:           "ts",
			DefaultReadTime:  "5 min read",
			DefaultCategory:  "Uncategorized",
			DescriptionLimit: 150,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm"},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Timeout: 30 * time.Second,
	}
}

// Validate ensures the configuration can drive a generator run.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Posts.SourceDir) == "" {
		return ErrSourceDirRequired
	}
	if strings.TrimSpace(cfg.Posts.OutputPath) == "" && !cfg.Posts.DryRun {
		return ErrOutputPathRequired
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Posts.Format)) {
	case "", "ts", "typescript", "json":
	default:
		return ErrFormatInvalid
	}
	if limit := cfg.Posts.DescriptionLimit; limit != 0 && (limit <= len("...") || limit > maxDescriptionLimit) {
		return ErrDescriptionLimitInvalid
	}
	if cfg.Timeout < 0 {
		return ErrTimeoutInvalid
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
	switch provider {
	case "", "console", "gologger":
	default:
		return ErrLoggingProviderUnknown
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	if provider == "gologger" {
		switch strings.ToLower(strings.TrimSpace(cfg.Logging.Format)) {
		case "", "console", "json", "pretty":
		default:
			return ErrLoggingFormatInvalid
		}
	}
	return nil
}

// Load builds a Config starting from DefaultConfig. Env files are loaded
// first without overriding variables already set; with none given, a .env in
// the working directory is used when present. The YAML file comes from path,
// else BLOGDATA_CONFIG; with neither, only the environment is read.
func Load(path string, envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path = strings.TrimSpace(path); path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("blogdata config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("blogdata config: read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Describe lists the environment variables understood by Load.
func Describe() string {
	cfg := DefaultConfig()
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return ""
	}
	return text
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		files = []string{DefaultEnvFile}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("blogdata config: load env files: %w", err)
	}
	return nil
}
