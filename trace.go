//go:build !notrace

package jxtmpl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

type traceLoggerKey struct{}
type spanIDKey struct{}

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
}

// TracingEnabled is false when built with -tags notrace
const TracingEnabled = true

var tracingOn atomic.Bool

func init() {
	tracingOn.Store(true)
}

// the null logger is a logger that does nothing
var nullLogger = slog.New(slog.DiscardHandler)

// SetTracingEnabled turns trace output on or off at runtime.
func SetTracingEnabled(enabled bool) {
	tracingOn.Store(enabled)
}

// WithTraceLogger returns a context carrying tlog. The parser reports
// parse progress, variable bindings and errors to it at debug level.
func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	// If the context already has a trace logger, return the context as is
	if _, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return ctx
	}
	return context.WithValue(ctx, traceLoggerKey{}, tlog)
}

func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	if tlog, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		// Retrieve the function name of the caller for tracing
		if pc, _, _, ok := runtime.Caller(2); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				tlog = tlog.With(slog.String("fn", fn.Name()))
			}
		}
		return tlog
	}
	return nullLogger
}

// WithSpan creates a span that is a child of the span in ctx, if any.
func WithSpan(ctx context.Context, name string) (context.Context, *SpanInfo) {
	span := &SpanInfo{
		ID:    generateSpanID(),
		Name:  name,
		Start: time.Now(),
	}
	if parent, ok := ctx.Value(spanIDKey{}).(*SpanInfo); ok {
		span.ParentID = parent.ID
	}
	return context.WithValue(ctx, spanIDKey{}, span), span
}

type span struct {
	ctx  context.Context
	info *SpanInfo
}

// StartSpan logs the start of an operation. Call End on the returned
// Span when it finishes.
func StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, info := WithSpan(ctx, name)
	TraceEvent(ctx, "START")
	return ctx, &span{ctx: ctx, info: info}
}

func (s *span) End() {
	TraceEvent(s.ctx, "END", slog.Duration("duration", time.Since(s.info.Start)))
}

func spanAttrs(ctx context.Context, attrs []slog.Attr) []slog.Attr {
	if info, ok := ctx.Value(spanIDKey{}).(*SpanInfo); ok {
		attrs = append(attrs,
			slog.String("span_id", info.ID),
			slog.String("span_name", info.Name),
		)
	}
	return attrs
}

// TraceEvent logs msg at debug level to the trace logger in ctx.
func TraceEvent(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !tracingOn.Load() {
		return
	}
	tlog := getTraceLogFromContext(ctx)
	tlog.LogAttrs(ctx, slog.LevelDebug, msg, spanAttrs(ctx, attrs)...)
}

// TraceError logs err at error level to the trace logger in ctx.
func TraceError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {
	if !tracingOn.Load() {
		return
	}
	tlog := getTraceLogFromContext(ctx)
	attrs = append(attrs, slog.String("error", err.Error()))
	tlog.LogAttrs(ctx, slog.LevelError, msg, spanAttrs(ctx, attrs)...)
}

func generateSpanID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
