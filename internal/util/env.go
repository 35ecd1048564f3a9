// Package util holds small helpers that do not belong to any one component.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// ParseBoolEnv reads a boolean environment variable. Accepted values are
// true/1/yes/on and false/0/no/off, case-insensitive. An unset variable or
// anything else yields def.
func ParseBoolEnv(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	slog.Warn("ParseBoolEnv: unrecognized value, using default", "key", key, "value", raw, "default", def)
	return def
}
