package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-blogdata/pkg/interfaces"
)

const (
	rootModule  = "blogdata"
	postsModule = "blogdata.posts"
)

const (
	fieldRunID      = "run_id"
	fieldSourcePath = "source_path"
	fieldPostFile   = "post_file"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. Every entry carries the module
// name under the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PostsLogger returns the logger namespace used by the post generator.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// WithRunContext tags logger with the generator run id and source directory.
// Empty values are skipped.
func WithRunContext(logger interfaces.Logger, runID, sourceDir string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		fields[fieldRunID] = trimmed
	}
	if trimmed := strings.TrimSpace(sourceDir); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	return WithFields(logger, fields)
}

// WithPostFile tags logger with the post file currently being processed.
func WithPostFile(logger interfaces.Logger, file string) interfaces.Logger {
	trimmed := strings.TrimSpace(file)
	if trimmed == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldPostFile: trimmed})
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
