package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/giygas/af3-jobgen/config"
)

type LoggingService struct {
	Logger *slog.Logger
}

var DefaultLoggingService *LoggingService

// InitLogger installs logger as the package and slog default
func InitLogger(logger *slog.Logger) {
	DefaultLoggingService = &LoggingService{
		Logger: logger,
	}
	slog.SetDefault(logger)
}

// parseLogLevel maps a LOG_LEVEL string to a slog level, info if unknown
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConsoleLogLevel picks the console level. Test runs stay quiet unless
// verbose; elsewhere an explicit LOG_LEVEL wins over the environment default.
func GetConsoleLogLevel(env config.Environment, logLevel string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}

	if logLevel != "" {
		return parseLogLevel(logLevel)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Package-level functions for direct access

func logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return nil
	}
	return DefaultLoggingService.Logger
}

func fallback(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func Info(msg string, args ...any) {
	if l := logger(); l != nil {
		l.Info(msg, args...)
		return
	}
	fallback(slog.LevelInfo).Info(msg, args...)
}

func Error(msg string, args ...any) {
	if l := logger(); l != nil {
		l.Error(msg, args...)
		return
	}
	fallback(slog.LevelError).Error(msg, args...)
}

func Warn(msg string, args ...any) {
	if l := logger(); l != nil {
		l.Warn(msg, args...)
		return
	}
	fallback(slog.LevelWarn).Warn(msg, args...)
}

// Debug is dropped when the logger is not initialised
func Debug(msg string, args ...any) {
	if l := logger(); l != nil {
		l.Debug(msg, args...)
	}
}

// With returns the default logger with args attached, for per-run context
func With(args ...any) *slog.Logger {
	if l := logger(); l != nil {
		return l.With(args...)
	}
	return fallback(slog.LevelInfo).With(args...)
}
