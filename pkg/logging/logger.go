package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel represents logging levels
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// ParseLevel converts a level name to a LogLevel, defaulting to info
func ParseLevel(s string) LogLevel {
	switch LogLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn, "warning":
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) slogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Config holds logger configuration
type Config struct {
	Level       LogLevel
	ServiceName string
	Environment string
	Version     string
	Output      io.Writer
	AddSource   bool
}

// DefaultConfig reads LOG_LEVEL, ENVIRONMENT and VERSION from the environment
func DefaultConfig(serviceName string) *Config {
	return &Config{
		Level:       ParseLevel(os.Getenv("LOG_LEVEL")),
		ServiceName: serviceName,
		Environment: envOr("ENVIRONMENT", "development"),
		Version:     envOr("VERSION", "unknown"),
		Output:      os.Stdout,
	}
}

// Logger is a JSON slog logger tagged with the scheduler service identity
type Logger struct {
	*slog.Logger
}

// New creates a JSON logger writing to config.Output
func New(config *Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level:       config.Level.slogLevel(),
		AddSource:   config.AddSource,
		ReplaceAttr: utcTimestamps,
	})

	return &Logger{Logger: slog.New(handler).With(
		"service", config.ServiceName,
		"environment", config.Environment,
		"version", config.Version,
	)}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

func utcTimestamps(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.TimeKey {
		return a
	}
	if t, ok := a.Value.Any().(time.Time); ok {
		a.Value = slog.StringValue(t.UTC().Format(time.RFC3339Nano))
	}
	return a
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithError adds an error to the logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with("error", err.Error())
}

// WithComponent tags entries with the emitting component
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// SetDefault sets this logger as the default slog logger
func (l *Logger) SetDefault() {
	slog.SetDefault(l.Logger)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
