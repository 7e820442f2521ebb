package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// traceAttrsHandler decorates records with trace_id/span_id when the logging
// context carries an active span, so a log line can be joined to its trace.
// Records logged off-span pass through untouched.
type traceAttrsHandler struct {
	next slog.Handler
}

func withTraceAttrs(next slog.Handler) slog.Handler {
	return &traceAttrsHandler{next: next}
}

func (h *traceAttrsHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *traceAttrsHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, r)
}

func (h *traceAttrsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceAttrsHandler{next: h.next.WithAttrs(attrs)}
}

func (h *traceAttrsHandler) WithGroup(name string) slog.Handler {
	return &traceAttrsHandler{next: h.next.WithGroup(name)}
}
