package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents different logging levels.
type LogLevel int

// Log levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// LogConfig holds configuration for the cache logger.
type LogConfig struct {
	// Level sets the minimum log level.
	Level LogLevel
	// Output receives log records. Defaults to os.Stderr.
	Output io.Writer
	// EnableCacheOperations enables logging of individual hits and misses.
	// Disabled by default since lookups happen on every paint.
	EnableCacheOperations bool
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
	}
}

// Logger provides structured logging for caches and renderers.
// A nil *Logger and the logger returned by NopLogger discard everything.
type Logger struct {
	logger *slog.Logger
	config LogConfig
}

// NewLogger creates a slog-backed logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: config.Level.slogLevel(),
	})
	return &Logger{
		logger: slog.New(handler),
		config: config,
	}
}

// NopLogger returns a logger that discards all messages.
func NopLogger() *Logger {
	return &Logger{}
}

// Debug logs debug-level messages.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.DebugContext(ctx, msg, args...)
}

// Info logs info-level messages.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.InfoContext(ctx, msg, args...)
}

// Warn logs warning-level messages.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.WarnContext(ctx, msg, args...)
}

// Error logs error-level messages.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.ErrorContext(ctx, msg, args...)
}

// With returns a logger with additional context fields.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{
		logger: l.logger.With(args...),
		config: l.config,
	}
}

// logCacheHit logs a lookup answered from the cache.
func (l *Logger) logCacheHit(ctx context.Context, name string, users int) {
	if l == nil || !l.config.EnableCacheOperations {
		return
	}
	l.Debug(ctx, "cache hit", "resource", name, "users", users, "result", "hit")
}

// logCacheMiss logs a lookup that found no file on any search path.
func (l *Logger) logCacheMiss(ctx context.Context, name string, searched int) {
	if l == nil || !l.config.EnableCacheOperations {
		return
	}
	l.Debug(ctx, "cache miss", "resource", name, "search_paths", searched, "result", "miss")
}

// logEviction logs removal of an entry.
func (l *Logger) logEviction(ctx context.Context, name, reason string) {
	l.Debug(ctx, "cache entry evicted", "resource", name, "reason", reason)
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

func (lv LogLevel) slogLevel() slog.Level {
	switch lv {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
