package config

import (
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// ParseLogLevel maps a case-insensitive level name to its slog level.
func ParseLogLevel(raw string) (slog.Level, error) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(raw))) {
	case LogLevelDebug:
		return slog.LevelDebug, nil
	case LogLevelInfo, "":
		return slog.LevelInfo, nil
	case LogLevelWarn, "warning":
		return slog.LevelWarn, nil
	case LogLevelError:
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.ConfigError(fmt.Sprintf("invalid logging.level %q (want debug, info, warn or error)", raw)).Build()
}

func ParseLogFormat(raw string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case LogFormatText, "":
		return LogFormatText, nil
	case LogFormatJSON:
		return f, nil
	}
	return LogFormatText, errors.ConfigError(fmt.Sprintf("invalid logging.format %q (want text or json)", raw)).Build()
}
