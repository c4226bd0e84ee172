package buildcmd

import (
	goerrors "github.com/goliatone/go-errors"
)

var errServiceMissing = goerrors.New("site build service is not configured", goerrors.CategoryInternal).
	WithTextCode("BUILDCMD_SERVICE_MISSING")
