package mdsite

import "github.com/goliatone/go-mdsite/internal/runtimeconfig"

var (
	ErrOutputOverlapsContent  = runtimeconfig.ErrOutputOverlapsContent
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the fixed content/, html/, header.html, footer.html
// layout relative to the working directory.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
