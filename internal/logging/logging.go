// Package logging builds the slog loggers used by the humanizer binary.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/humanizer/internal/model"
)

// Config holds the logger settings
type Config struct {
	Level     slog.Level
	Format    string // text or json
	Output    io.Writer
	Component string
}

// FromModel converts the application logging section into a Config
func FromModel(cfg model.LoggingConfig) (Config, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return Config{}, err
	}
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	switch format {
	case "", "text", "json":
	default:
		return Config{}, fmt.Errorf("unknown log format: %s (supported: text, json)", cfg.Format)
	}
	return Config{Level: level, Format: format, Output: os.Stderr, Component: "humanizer"}, nil
}

// New creates a logger; sensitive attribute values are redacted
func New(cfg Config) *slog.Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if shouldRedact(a.Key) {
				a.Value = slog.StringValue("[REDACTED]")
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	if cfg.Component != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("component", cfg.Component)})
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses debug, info, warn or error; empty means info
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

func shouldRedact(key string) bool {
	k := strings.ToLower(key)
	for _, sensitive := range []string{"api_key", "apikey", "token", "secret", "password", "authorization"} {
		if strings.Contains(k, sensitive) {
			return true
		}
	}
	return false
}

type contextKey int

const requestIDKey contextKey = iota

// ContextWithRequestID stores a request id in ctx
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id stored in ctx, if any
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns logger annotated with the request id found in ctx
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return logger.With(slog.String("request_id", id))
	}
	return logger
}
