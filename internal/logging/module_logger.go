package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

const (
	rootModule    = "mdsite"
	sitegenModule = "mdsite.sitegen"
)

const (
	fieldPost = "post"
	fieldFile = "file"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per module.
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

// SitegenLogger returns the logger namespace reserved for the conversion driver.
func SitegenLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sitegenModule)
}

// WithFileContext enriches the logger with the post directory and source file
// being converted. Empty values are ignored.
func WithFileContext(logger interfaces.Logger, post, file string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(post); trimmed != "" {
		fields[fieldPost] = trimmed
	}
	if trimmed := strings.TrimSpace(file); trimmed != "" {
		fields[fieldFile] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
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
