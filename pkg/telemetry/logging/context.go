package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// BuildIDKey is the context key for the build correlation ID.
	BuildIDKey contextKey = "build_id"

	// SourceKey is the context key for the source being built.
	SourceKey contextKey = "source"
)

// NewBuildID returns a fresh build correlation ID.
func NewBuildID() string {
	return uuid.New().String()
}

// WithBuildID adds a build ID to the context.
func WithBuildID(ctx context.Context, buildID string) context.Context {
	return context.WithValue(ctx, BuildIDKey, buildID)
}

// GetBuildID retrieves the build ID from the context.
func GetBuildID(ctx context.Context) string {
	if buildID, ok := ctx.Value(BuildIDKey).(string); ok {
		return buildID
	}
	return ""
}

// WithSource adds the source name (file path or "repl") to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the source name from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// contextAttrs extracts the log fields stored in ctx.
func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if buildID := GetBuildID(ctx); buildID != "" {
		attrs = append(attrs, slog.String(string(BuildIDKey), buildID))
	}

	if source := GetSource(ctx); source != "" {
		attrs = append(attrs, slog.String(string(SourceKey), source))
	}

	return attrs
}
