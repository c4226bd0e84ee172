// Package report is the single exit point of the mdsite binary: it prints the
// outcome banner and terminates the process.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdsite/internal/sitegen"
)

// Reporter writes the final status and exits.
type Reporter struct {
	Stdout io.Writer
	Stderr io.Writer
	Exit   func(code int)
}

// New returns a reporter bound to the process streams and os.Exit.
func New() *Reporter {
	return &Reporter{Stdout: os.Stdout, Stderr: os.Stderr, Exit: os.Exit}
}

// Die prints the formatted message under a [SUCCESS] or [ERROR] banner and
// exits with code. The message is written as formatted; callers end it with a
// newline. Die does not return when Exit terminates the process.
func (r *Reporter) Die(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if code == 0 {
		fmt.Fprintf(r.stdout(), "[SUCCESS]\n%sExiting with code 0...\n", msg)
	} else {
		fmt.Fprintf(r.stderr(), "[ERROR]\n%sExiting with error code %d...\n", msg, code)
	}
	r.exit(code)
}

// Finish reports a completed build. A nil err exits 0 with a summary; any
// error exits with ExitCode(err) and one line per failed file.
func (r *Reporter) Finish(result *sitegen.BuildResult, err error) {
	if err == nil {
		r.Die(0, "%s\n", summary(result))
		return
	}
	r.Die(ExitCode(err), "%s\n", describe(result, err))
}

// ExitCode maps err to a process status: the OS error number when one is in
// the chain, 1 otherwise, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	return 1
}

func summary(result *sitegen.BuildResult) string {
	if result == nil {
		return "Done."
	}
	verb := "Built"
	if result.DryRun {
		verb = "Converted (dry run)"
	}
	return fmt.Sprintf("%s %d file(s) from %d post(s) in %s.", verb, result.FilesBuilt, result.Posts, result.Duration)
}

func describe(result *sitegen.BuildResult, err error) string {
	if result == nil || len(result.Failed()) == 0 {
		return message(err)
	}
	out := fmt.Sprintf("%d file(s) built, %d failed:", result.FilesBuilt, result.FilesFailed)
	for _, diag := range result.Failed() {
		target := diag.Source
		if target == "" {
			target = "(all sources)"
		}
		out += fmt.Sprintf("\n  %s/%s [%s]: %s", diag.Post, target, diag.Stage, message(diag.Err))
	}
	return out
}

// message prefers the go-errors message over the full chain rendering.
func message(err error) string {
	var gerr *goerrors.Error
	if errors.As(err, &gerr) && gerr == err {
		if gerr.Source != nil {
			return fmt.Sprintf("%s: %v", gerr.Message, gerr.Source)
		}
		return gerr.Message
	}
	return err.Error()
}

func (r *Reporter) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Reporter) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

func (r *Reporter) exit(code int) {
	if r.Exit != nil {
		r.Exit(code)
		return
	}
	os.Exit(code)
}
