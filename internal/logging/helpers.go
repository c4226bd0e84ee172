package logging

import (
	"maps"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// WithFields returns logger enriched with fields, such as build_id or post,
// when it implements interfaces.FieldsLogger. Other loggers come back as is.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}
