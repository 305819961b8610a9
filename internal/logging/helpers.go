package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-localegen/pkg/interfaces"
)

const (
	fieldAssetPath = "asset_path"
	fieldLocale    = "locale"
	fieldBuildSet  = "build_set"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithAssetContext enriches the provided logger with common pipeline fields
// such as asset path, locale, and build set. Empty values are ignored.
func WithAssetContext(logger interfaces.Logger, path, locale, set string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldAssetPath] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(set); trimmed != "" {
		fields[fieldBuildSet] = trimmed
	}
	return WithFields(logger, fields)
}
