package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrOutputOverlapsContent = errors.New("mdsite config: output directory must not contain or equal the content directory")
var ErrLoggingProviderUnknown = errors.New("mdsite config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mdsite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mdsite config: logging format is invalid")

// Config captures the site layout and runtime behaviour of a build.
type Config struct {
	// SiteDir is the directory holding the content tree and the templates.
	// Relative content, output and template paths are resolved against it.
	SiteDir    string
	ContentDir string
	OutputDir  string
	HeaderFile string
	FooterFile string
	// Pattern selects the source files converted inside a post directory.
	Pattern string
	// FailFast aborts the build on the first failing file instead of
	// recording the failure and continuing with the remaining files.
	FailFast bool
	Markdown MarkdownConfig
	Logging  LoggingConfig
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the fixed layout the mdsite binary builds:
// content/<post>/*.md plus header.html and footer.html in the working
// directory, rendered into html/.
func DefaultConfig() Config {
	return Config{
		SiteDir:    ".",
		ContentDir: "content",
		OutputDir:  "html",
		HeaderFile: "header.html",
		FooterFile: "footer.html",
		Pattern:    "*.md",
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// ResolvePath joins a configured path with SiteDir unless it is absolute.
func (cfg Config) ResolvePath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	site := cfg.SiteDir
	if strings.TrimSpace(site) == "" {
		site = "."
	}
	return filepath.Join(site, p)
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	err := validation.ValidateStruct(&cfg,
		validation.Field(&cfg.ContentDir, validation.Required),
		validation.Field(&cfg.OutputDir, validation.Required),
		validation.Field(&cfg.HeaderFile, validation.Required, validation.By(withinSite)),
		validation.Field(&cfg.FooterFile, validation.Required, validation.By(withinSite)),
		validation.Field(&cfg.Pattern, validation.Required, validation.By(validGlob)),
	)
	if err != nil {
		return err
	}

	if overlaps(cfg.ResolvePath(cfg.OutputDir), cfg.ResolvePath(cfg.ContentDir)) {
		return ErrOutputOverlapsContent
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
	switch provider {
	case "", "console", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func validGlob(value any) error {
	pattern, _ := value.(string)
	if _, err := filepath.Match(pattern, ""); err != nil {
		return validation.NewError("validation_pattern_invalid", "must be a valid glob pattern")
	}
	return nil
}

// withinSite requires template paths to stay inside SiteDir; they are read
// through an fs.FS rooted there.
func withinSite(value any) error {
	name, _ := value.(string)
	if !fs.ValidPath(path.Clean(filepath.ToSlash(name))) {
		return validation.NewError("validation_path_outside_site", "must be a relative path inside the site directory")
	}
	return nil
}

// overlaps reports whether output equals content or is one of its ancestors;
// cleaning such an output root would delete the sources.
func overlaps(output, content string) bool {
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return false
	}
	contentAbs, err := filepath.Abs(content)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(outAbs, contentAbs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
