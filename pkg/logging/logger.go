// Package logging builds the hclog loggers used by the CLI and library.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Environment variables read by the CLI.
const (
	EnvLogLevel = "HUFFCRYPT_LOG_LEVEL"
	EnvJSONLog  = "HUFFCRYPT_JSON_LOG"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

const linePrefix = "🔐 "

// NewLogger creates a new hclog logger with standard settings. Text output
// gets a prefix on every line; JSON output is left untouched.
func NewLogger(name string, level string, jsonFormat bool, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	if !jsonFormat {
		output = NewPrefixWriter(linePrefix, output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      ParseLevel(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// ParseLevel maps a level name to an hclog level. Unknown names fall back
// to DefaultLevel rather than hclog's NoLevel.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(strings.TrimSpace(level))
	if l == hclog.NoLevel {
		return hclog.LevelFromString(DefaultLevel)
	}
	return l
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = DefaultLevel
	}
	return level
}

// JSONFromEnv reports whether HUFFCRYPT_JSON_LOG asks for JSON output.
func JSONFromEnv() bool {
	switch strings.ToLower(os.Getenv(EnvJSONLog)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
