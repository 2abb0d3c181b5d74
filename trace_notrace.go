//go:build notrace

package tidy

import (
	"context"
	"log/slog"
	"time"
)

// No-op implementations when built with -tags notrace

type Span interface {
	End()
}

type noOpSpan struct{}

func (noOpSpan) End() {}

// SpanInfo holds information about a tracing span
type SpanInfo struct {
	ID       string
	ParentID string
	Name     string
	Start    time.Time
	Tags     map[string]string
}

var TracingEnabled = false

func WithTraceLogger(ctx context.Context, _ *slog.Logger) context.Context {
	return ctx
}

func WithSpan(ctx context.Context, _ string) (context.Context, *SpanInfo) {
	return ctx, nil
}

func StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, noOpSpan{}
}

func TraceEvent(context.Context, string, ...slog.Attr) {}

func TraceError(context.Context, error, string, ...slog.Attr) {}

func getTraceLogFromContext(context.Context) *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func generateSpanID() string {
	return ""
}
