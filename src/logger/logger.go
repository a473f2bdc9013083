// Package logger holds the process-wide structured logger. Every package
// logs through L; it is nil until InitLogger runs.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

var L *slog.Logger

// InitLogger builds the global JSON logger at the configured level. Call
// once at startup, after the config is loaded. An unknown level falls back
// to info.
func InitLogger(logLevelStr string) {
	var level slog.Level
	switch strings.ToLower(logLevelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		slog.Warn("Invalid LOG_LEVEL specified, defaulting to INFO", "configuredLevel", logLevelStr)
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// RFC3339 timestamps so log collectors can parse them.
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	L = slog.New(slog.NewJSONHandler(os.Stdout, opts))

	// Also catch packages that log through slog's top-level functions.
	slog.SetDefault(L)
	L.Info("Logger initialized", "level", level.String())
}
