package logging

import (
	"fmt"
	"strings"
)

// ValidLogLevels is the set of levels accepted by acactl flags, the docapi
// LOG_LEVEL variable and deployment profiles.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel reports whether level is supported. Levels are uppercase.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel returns an error for unsupported levels.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}

// NormalizeLogLevel uppercases level and maps the "WARNING" spelling onto
// WARN.
func NormalizeLogLevel(level string) string {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "WARNING" {
		return "WARN"
	}
	return level
}
