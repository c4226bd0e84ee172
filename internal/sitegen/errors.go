package sitegen

import (
	"errors"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeContentNotFound = "SITEGEN_CONTENT_NOT_FOUND"
	codeListFailed      = "SITEGEN_LIST_FAILED"
	codeSourceNotFound  = "SITEGEN_SOURCE_NOT_FOUND"
	codeReadFailed      = "SITEGEN_READ_FAILED"
	codeTemplateMissing = "SITEGEN_TEMPLATE_MISSING"
	codeConvertFailed   = "SITEGEN_CONVERT_FAILED"
	codeWriteFailed     = "SITEGEN_WRITE_FAILED"
	codeResetFailed     = "SITEGEN_OUTPUT_RESET_FAILED"
)

func wrapListError(err error, dir string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	label := "directory " + dir
	if dir == "." {
		label = "content root"
	}
	if errors.Is(err, fs.ErrNotExist) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, label+" not found").
			WithTextCode(codeContentNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "list "+label).
		WithTextCode(codeListFailed)
}

func wrapReadError(err error, name string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "source not found: "+name).
			WithTextCode(codeSourceNotFound)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "read source "+name).
		WithTextCode(codeReadFailed)
}

func wrapTemplateError(err error, name string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryNotFound, "template unavailable: "+name).
		WithTextCode(codeTemplateMissing)
}

func wrapConvertError(err error, name string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "convert "+name).
		WithTextCode(codeConvertFailed)
}

func wrapWriteError(err error, name string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "write "+name).
		WithTextCode(codeWriteFailed)
}

func wrapResetError(err error, root string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "reset output root "+root).
		WithTextCode(codeResetFailed)
}

// ErrorCode returns the text code attached to a build error, or "" when err
// was not produced by this package.
func ErrorCode(err error) string {
	var gerr *goerrors.Error
	if errors.As(err, &gerr) {
		return gerr.TextCode
	}
	return ""
}
