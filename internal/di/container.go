package di

import (
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-mdsite/internal/commands"
	buildcmd "github.com/goliatone/go-mdsite/internal/commands/build"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/internal/logging/console"
	"github.com/goliatone/go-mdsite/internal/logging/gologger"
	"github.com/goliatone/go-mdsite/internal/markdown"
	"github.com/goliatone/go-mdsite/internal/runtimeconfig"
	"github.com/goliatone/go-mdsite/internal/sitegen"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Container wires the build pipeline from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	parser         interfaces.MarkdownParser
	contentFS      fs.FS
	templatesFS    fs.FS
	writer         sitegen.ArtifactWriter

	sitegenSvc   sitegen.Service
	buildHandler *buildcmd.BuildSiteHandler
	cleanHandler *buildcmd.CleanSiteHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithContentFS overrides the content tree read from disk.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithTemplatesFS overrides the filesystem header and footer are read from.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.templatesFS = fsys
	}
}

// WithArtifactWriter overrides the on-disk output writer.
func WithArtifactWriter(writer sitegen.ArtifactWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// NewContainer validates cfg and builds every collaborator it names.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureParser()
	c.configureSources()
	c.configureSitegen()
	c.configureCommands()

	logging.ModuleLogger(c.loggerProvider, "").Debug("container.configured",
		"content_dir", cfg.ResolvePath(cfg.ContentDir),
		"output_dir", cfg.ResolvePath(cfg.OutputDir),
		"fail_fast", cfg.FailFast,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		// Progress goes to stderr so stdout only carries the final banner.
		level := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   os.Stderr,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureParser() {
	if c.parser != nil {
		return
	}
	md := c.Config.Markdown
	c.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: md.Extensions,
		HardWraps:  md.HardWraps,
		SafeMode:   md.SafeMode,
	})
}

func (c *Container) configureSources() {
	cfg := c.Config
	if c.contentFS == nil {
		c.contentFS = os.DirFS(cfg.ResolvePath(cfg.ContentDir))
	}
	if c.templatesFS == nil {
		c.templatesFS = os.DirFS(cfg.ResolvePath("."))
	}
	if c.writer == nil {
		c.writer = sitegen.NewFilesystemWriter(cfg.ResolvePath(cfg.OutputDir))
	}
}

func (c *Container) configureSitegen() {
	cfg := c.Config
	c.sitegenSvc = sitegen.NewService(sitegen.Config{
		Pattern:    cfg.Pattern,
		HeaderFile: cfg.HeaderFile,
		FooterFile: cfg.FooterFile,
		FailFast:   cfg.FailFast,
	}, sitegen.Dependencies{
		Content:   c.contentFS,
		Templates: c.templatesFS,
		Writer:    c.writer,
		Parser:    c.parser,
		Logger:    logging.SitegenLogger(c.loggerProvider),
	})
}

func (c *Container) configureCommands() {
	logger := commands.CommandLogger(c.loggerProvider, "site")
	c.buildHandler = buildcmd.NewBuildSiteHandler(c.sitegenSvc, logger)
	c.cleanHandler = buildcmd.NewCleanSiteHandler(c.sitegenSvc, logger)
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkdownParser exposes the configured parser.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	return c.parser
}

// SitegenService returns the configured build driver.
func (c *Container) SitegenService() sitegen.Service {
	return c.sitegenSvc
}

// BuildHandler returns the command handler running builds.
func (c *Container) BuildHandler() *buildcmd.BuildSiteHandler {
	return c.buildHandler
}

// CleanHandler returns the command handler emptying the output root.
func (c *Container) CleanHandler() *buildcmd.CleanSiteHandler {
	return c.cleanHandler
}
