// Package mdsite turns a tree of Markdown posts into static HTML pages
// wrapped with a shared header and footer.
package mdsite

import (
	"context"

	buildcmd "github.com/goliatone/go-mdsite/internal/commands/build"
	"github.com/goliatone/go-mdsite/internal/di"
	"github.com/goliatone/go-mdsite/internal/sitegen"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

type (
	// BuildResult reports the outcome of a build.
	BuildResult = sitegen.BuildResult
	// FileDiagnostic describes how far one source got.
	FileDiagnostic = sitegen.FileDiagnostic
	// RenderedFile describes one written page.
	RenderedFile = sitegen.RenderedFile
	// MarkdownParser is the conversion collaborator contract.
	MarkdownParser = interfaces.MarkdownParser
)

// BuildOptions alters a single build.
type BuildOptions struct {
	DryRun bool
	// FailFast overrides Config.FailFast when set.
	FailFast *bool
}

// Module represents the top level site builder façade.
type Module struct {
	container *di.Container
}

// New constructs a site builder using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Build converts every post. The result is returned alongside the error when
// some files failed, so callers can report them individually.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	var result *BuildResult
	err := m.container.BuildHandler().Execute(ctx, buildcmd.BuildSiteCommand{
		DryRun:   opts.DryRun,
		FailFast: opts.FailFast,
		ResultCallback: func(env buildcmd.ResultEnvelope) {
			result = env.Result
		},
	})
	return result, err
}

// Clean empties the output root.
func (m *Module) Clean(ctx context.Context) error {
	return m.container.CleanHandler().Execute(ctx, buildcmd.CleanSiteCommand{})
}

// Parser returns the configured Markdown parser.
func (m *Module) Parser() MarkdownParser {
	return m.container.MarkdownParser()
}
