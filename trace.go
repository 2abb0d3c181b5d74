//go:build !notrace

package tidy

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

type traceLoggerKey struct{}
type spanIDKey struct{}

// the null logger is a logger that does nothing
var nullLogger = slog.New(slog.DiscardHandler)

var TracingEnabled = true

// Span marks the extent of a traced operation.
type Span interface {
	End()
}

// SpanInfo holds information about a tracing span
type SpanInfo struct {
	ID       string
	ParentID string
	Name     string
	Start    time.Time
	Tags     map[string]string
}

type logSpan struct {
	ctx  context.Context
	info *SpanInfo
}

func (s *logSpan) End() {
	getTraceLogFromContext(s.ctx).Debug("END",
		slog.String("span_id", s.info.ID),
		slog.String("span_name", s.info.Name),
		slog.Duration("duration", time.Since(s.info.Start)),
	)
}

func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	// If the context already has a trace logger, return the context as is
	if _, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return ctx
	}
	return context.WithValue(ctx, traceLoggerKey{}, tlog)
}

// WithSpan starts a child span of the span in ctx, if any.
func WithSpan(ctx context.Context, name string) (context.Context, *SpanInfo) {
	info := &SpanInfo{
		ID:    generateSpanID(),
		Name:  name,
		Start: time.Now(),
	}
	if parent, ok := ctx.Value(spanIDKey{}).(*SpanInfo); ok {
		info.ParentID = parent.ID
	}
	return context.WithValue(ctx, spanIDKey{}, info), info
}

// StartSpan is WithSpan plus START and END log records.
func StartSpan(ctx context.Context, spanName string) (context.Context, Span) {
	ctx, info := WithSpan(ctx, spanName)
	getTraceLogFromContext(ctx).Debug("START",
		slog.String("span_id", info.ID),
		slog.String("span_name", info.Name),
	)
	return ctx, &logSpan{ctx: ctx, info: info}
}

func spanAttrs(ctx context.Context, attrs []slog.Attr) []any {
	args := make([]any, 0, len(attrs)+1)
	if info, ok := ctx.Value(spanIDKey{}).(*SpanInfo); ok {
		args = append(args, slog.String("span_id", info.ID))
	}
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func TraceEvent(ctx context.Context, msg string, attrs ...slog.Attr) {
	getTraceLogFromContext(ctx).Debug(msg, spanAttrs(ctx, attrs)...)
}

func TraceError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	getTraceLogFromContext(ctx).Error(msg, spanAttrs(ctx, attrs)...)
}

func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	if tlog, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		// Retrieve the function name of the caller for tracing
		pc, _, _, ok := runtime.Caller(2)
		if ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				tlog = tlog.With(slog.String("fn", fn.Name()))
			}
		}
		return tlog
	}
	return nullLogger
}

var spanSeq atomic.Uint64

// generateSpanID returns 16 hex digits, unique within the process.
func generateSpanID() string {
	n := spanSeq.Add(1)
	return fmt.Sprintf("%016x", n*0x9E3779B97F4A7C15)
}
