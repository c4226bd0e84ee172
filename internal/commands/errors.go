package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to failures raised by the command layer itself. Errors
// already categorised by the build driver keep their own SITEGEN_* codes.
const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// tag categorises err unless it already carries a category, so a joined set
// of per-file build failures reaches the reporter as it left the driver.
func tag(err error, category goerrors.Category, message, code string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return tag(err, goerrors.CategoryValidation, "invalid site command", commandValidationCode)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return tag(err, goerrors.CategoryCommand, "site command cancelled", commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return tag(err, goerrors.CategoryCommand, "site command timed out", commandContextTimeout)
	default:
		return tag(err, goerrors.CategoryCommand, "site command context error", commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	return tag(err, goerrors.CategoryCommand, "site command failed", commandExecuteFailed)
}
