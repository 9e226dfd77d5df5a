package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-blogdata"
)

var moduleBuilder = blogdata.New

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		log.Fatalf("blogdata: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("blogdata", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML config file (defaults to $BLOGDATA_CONFIG)")
	source := fs.String("source", "", "Directory holding the Markdown posts")
	out := fs.String("out", "", "Generated module path")
	images := fs.String("images", "", "Images directory (defaults to <source>/images)")
	imagePrefix := fs.String("image-prefix", "", "Public URL prefix for images")
	format := fs.String("format", "", "Output format: ts or json")
	content := fs.Bool("content", false, "Render post bodies to HTML into the content field")
	noImages := fs.Bool("no-images", false, "Skip image discovery")
	dryRun := fs.Bool("dry-run", false, "Print the generated module instead of writing it")
	logLevel := fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
	logProvider := fs.String("log-provider", "", "Logging provider: console or gologger")
	logFormat := fs.String("log-format", "", "go-logger format: console, json or pretty")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: blogdata [flags]")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
		if env := blogdata.DescribeEnvironment(); env != "" {
			fmt.Fprintln(stderr)
			fmt.Fprintln(stderr, env)
		}
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := blogdata.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	// Explicit flags win over file and environment values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Posts.SourceDir = *source
		case "out":
			cfg.Posts.OutputPath = *out
		case "images":
			cfg.Posts.ImagesDir = *images
		case "image-prefix":
			cfg.Posts.ImageURLPrefix = *imagePrefix
		case "format":
			cfg.Posts.Format = *format
		case "content":
			cfg.Posts.IncludeContent = *content
		case "no-images":
			cfg.Posts.DiscoverImages = !*noImages
		case "dry-run":
			cfg.Posts.DryRun = *dryRun
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-provider":
			cfg.Logging.Provider = *logProvider
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})

	module, err := moduleBuilder(cfg, blogdata.WithLogWriter(stderr))
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}

	result, err := module.Generate(ctx)
	if err != nil {
		return err
	}

	if cfg.Posts.DryRun {
		_, err := stdout.Write(result.Output)
		return err
	}
	fmt.Fprintf(stdout, "generated %d posts into %s\n", result.Count(), result.OutputPath)
	return nil
}
