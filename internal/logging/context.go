package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for
	// component names. The console handler promotes it to a message
	// prefix.
	FieldComponent = "component"
	// FieldRequestID is the standardized structured logging key for the
	// identifier correlating every log line of one extraction request.
	FieldRequestID = "request_id"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom extracts the correlation identifier if present.
func RequestIDFrom(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithContext returns a logger augmented with structured fields derived
// from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	if id, ok := RequestIDFrom(ctx); ok {
		return logger.With(attrsToArgs([]Attr{String(FieldRequestID, id)})...)
	}
	return logger
}
