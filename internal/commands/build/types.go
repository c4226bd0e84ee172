package buildcmd

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdsite/internal/sitegen"
)

const (
	buildSiteMessageType = "mdsite.site.build"
	cleanSiteMessageType = "mdsite.site.clean"
)

// ResultCallback receives build results produced by the site builder. The
// callback is optional and is invoked synchronously from the handler, also
// when the build failed, as long as a result is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a build command.
type ResultEnvelope struct {
	Result   *sitegen.BuildResult
	Err      error
	Metadata map[string]any
}

// BuildSiteCommand converts every post under the content root.
type BuildSiteCommand struct {
	DryRun bool `json:"dry_run,omitempty"`
	// FailFast overrides the configured error policy when set.
	FailFast       *bool          `json:"fail_fast,omitempty"`
	Timeout        string         `json:"timeout,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate checks the optional timeout override.
func (m BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Timeout, validation.By(validDuration)),
	)
}

// CleanSiteCommand empties the output root.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// timeout parses the override; zero means no deadline.
func (m BuildSiteCommand) timeout() time.Duration {
	d, _ := time.ParseDuration(strings.TrimSpace(m.Timeout))
	return d
}

func validDuration(value any) error {
	raw, _ := value.(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return validation.NewError("mdsite.site.build.timeout_invalid", "timeout must be a positive duration")
	}
	return nil
}
