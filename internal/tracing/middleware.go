package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/emacskeys/internal/emacs"
)

// NewDispatchMiddleware creates middleware that wraps every dispatched
// command in a "gesture.<command id>" span parented to ctx.
//
// If tracer is nil, the middleware is a pass-through.
func NewDispatchMiddleware(ctx context.Context, tracer trace.Tracer) emacs.Middleware {
	if tracer == nil {
		return func(next emacs.CommandHandler) emacs.CommandHandler { return next }
	}

	return func(next emacs.CommandHandler) emacs.CommandHandler {
		return func(e *emacs.Editor, gesture string, cmd emacs.Command) emacs.ExecuteResult {
			_, span := tracer.Start(ctx, SpanPrefixGesture+cmd.ID(),
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			buf := e.Buffer()
			killer := e.Keymap().Killer()
			gen := buf.ChangeGeneration()
			ringBefore := killer.Len()

			span.SetAttributes(
				attribute.String(AttrGestureKeys, gesture),
				attribute.String(AttrCommandID, cmd.ID()),
				attribute.String(AttrBufferID, buf.ID()),
				attribute.String(AttrPrefix, e.PrefixString()),
			)
			if edits, known := emacs.ChangesContent(cmd); known {
				span.SetAttributes(attribute.Bool(AttrCommandEdits, edits))
			}

			result := next(e, gesture, cmd)

			span.SetAttributes(
				attribute.String(AttrCommandResult, result.String()),
				attribute.Bool(AttrBufferChanged, !buf.IsClean(gen)),
				attribute.String(AttrCursor, buf.Cursor().String()),
				attribute.Int(AttrKillRingSize, killer.Len()),
			)
			if killer.Len() > ringBefore {
				span.AddEvent(EventKillRingGrew)
			}

			switch result {
			case emacs.Skipped:
				span.AddEvent(EventCommandSkipped)
			case emacs.PassThrough:
				span.AddEvent(EventPassedThrough)
			}
			span.SetStatus(codes.Ok, "")
			return result
		}
	}
}

// StartSession opens the root span that gesture spans hang under.
func StartSession(ctx context.Context, tracer trace.Tracer, mode, file string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanPrefixSession+mode,
		trace.WithAttributes(
			attribute.String(AttrSessionMode, mode),
			attribute.String(AttrSessionFile, file),
		),
	)
}
