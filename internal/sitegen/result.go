package sitegen

import (
	"time"

	"github.com/google/uuid"
)

// Stage names the step of a file conversion a diagnostic refers to.
type Stage string

const (
	StageList     Stage = "list"
	StageTemplate Stage = "template"
	StageRead     Stage = "read"
	StageConvert  Stage = "convert"
	StageWrite    Stage = "write"
	StageCanceled Stage = "canceled"
	StageDone     Stage = "done"
)

// BuildOptions narrows or alters a single run.
type BuildOptions struct {
	// DryRun converts every source but writes nothing; the output root is
	// left untouched.
	DryRun bool
	// FailFast overrides the service configuration when set.
	FailFast *bool
}

// BuildResult reports the outcome of a run.
type BuildResult struct {
	BuildID     uuid.UUID
	Posts       int
	FilesBuilt  int
	FilesFailed int
	Rendered    []RenderedFile
	Diagnostics []FileDiagnostic
	Errors      []error
	Duration    time.Duration
	DryRun      bool
}

// RenderedFile describes one written artifact.
type RenderedFile struct {
	Post   string
	Source string
	Output string
	Size   int
	// Checksum is the hex SHA-256 of header, fragment and footer as written.
	Checksum string
}

// FileDiagnostic records how far one source (or, with an empty Source, one
// post directory) got. Err is nil for successful conversions.
type FileDiagnostic struct {
	Post   string
	Source string
	Output string
	Stage  Stage
	Err    error
}

// Failed lists the diagnostics that carry an error.
func (r *BuildResult) Failed() []FileDiagnostic {
	if r == nil {
		return nil
	}
	var out []FileDiagnostic
	for _, diag := range r.Diagnostics {
		if diag.Err != nil {
			out = append(out, diag)
		}
	}
	return out
}

func (r *BuildResult) fail(diag FileDiagnostic, files int) {
	r.Diagnostics = append(r.Diagnostics, diag)
	r.Errors = append(r.Errors, diag.Err)
	r.FilesFailed += files
}

func (r *BuildResult) succeed(file RenderedFile) {
	r.Diagnostics = append(r.Diagnostics, FileDiagnostic{
		Post:   file.Post,
		Source: file.Source,
		Output: file.Output,
		Stage:  StageDone,
	})
	r.Rendered = append(r.Rendered, file)
	r.FilesBuilt++
}
