package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/textarea"
)

// setupTestTracer creates a test tracer with an in-memory exporter.
func setupTestTracer(t *testing.T) (trace.Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return provider.Tracer("test-tracer"), exporter
}

func getSpanByName(exporter *tracetest.InMemoryExporter, name string) (tracetest.SpanStub, bool) {
	for _, span := range exporter.GetSpans() {
		if span.Name == name {
			return span, true
		}
	}
	return tracetest.SpanStub{}, false
}

func getAttributeValue(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func hasEvent(span tracetest.SpanStub, name string) bool {
	for _, ev := range span.Events {
		if ev.Name == name {
			return true
		}
	}
	return false
}

func tracedEditor(ctx context.Context, tracer trace.Tracer, text string) (*emacs.Editor, *textarea.Buffer) {
	buf := textarea.New(text)
	km := emacs.NewKeymap(nil, emacs.WithMiddleware(NewDispatchMiddleware(ctx, tracer)))
	return km.Attach(buf), buf
}

func TestNewDispatchMiddleware_NilTracer_ReturnsPassThrough(t *testing.T) {
	ed, buf := tracedEditor(context.Background(), nil, "abc")
	require.Equal(t, emacs.Handled, ed.Dispatch("Ctrl-D"))
	require.Equal(t, "bc", buf.Text())
}

func TestDispatchMiddleware_SpanPerCommand(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	ed, _ := tracedEditor(context.Background(), tracer, "one\ntwo")

	ed.Dispatch("Ctrl-2")
	ed.Dispatch("Ctrl-K")

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "gesture.prefix.digit_2", spans[0].Name)
	assert.Equal(t, "gesture.kill.line", spans[1].Name)
}

func TestDispatchMiddleware_SetsAttributes(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	ed, buf := tracedEditor(context.Background(), tracer, "one\ntwo")

	ed.Dispatch("Ctrl-2")
	ed.Dispatch("Ctrl-K")

	span, ok := getSpanByName(exporter, "gesture.kill.line")
	require.True(t, ok)

	want := map[string]any{
		AttrGestureKeys:   "Ctrl-K",
		AttrCommandID:     "kill.line",
		AttrBufferID:      buf.ID(),
		AttrPrefix:        "C-u 2",
		AttrCommandResult: "executed",
		AttrBufferChanged: true,
		AttrCursor:        "0:0",
		AttrKillRingSize:  int64(1),
	}
	for key, expected := range want {
		v, ok := getAttributeValue(span, key)
		require.True(t, ok, "missing %s", key)
		assert.Equal(t, expected, v.AsInterface(), key)
	}
	assert.True(t, hasEvent(span, EventKillRingGrew))
}

func TestDispatchMiddleware_RecordsContentTrait(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	ed, _ := tracedEditor(context.Background(), tracer, "one two")

	ed.Dispatch("Alt-F")
	ed.Dispatch("Ctrl-K")
	ed.Dispatch("Ctrl-T")

	motion, ok := getSpanByName(exporter, "gesture.move.word_forward")
	require.True(t, ok)
	edits, ok := getAttributeValue(motion, AttrCommandEdits)
	require.True(t, ok)
	assert.False(t, edits.AsBool())

	kill, ok := getSpanByName(exporter, "gesture.kill.line")
	require.True(t, ok)
	edits, ok = getAttributeValue(kill, AttrCommandEdits)
	require.True(t, ok)
	assert.True(t, edits.AsBool())

	transpose, ok := getSpanByName(exporter, "gesture.edit.transpose_chars")
	require.True(t, ok)
	_, ok = getAttributeValue(transpose, AttrCommandEdits)
	assert.False(t, ok, "commands without a declared trait carry no attribute")
}

func TestDispatchMiddleware_SkippedAndPassThroughEvents(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	ed, _ := tracedEditor(context.Background(), tracer, "")

	ed.Dispatch("Alt-Y")  // empty ring
	ed.Dispatch("Ctrl-S") // no host

	skipped, ok := getSpanByName(exporter, "gesture.yank.pop")
	require.True(t, ok)
	assert.True(t, hasEvent(skipped, EventCommandSkipped))
	changed, _ := getAttributeValue(skipped, AttrBufferChanged)
	assert.False(t, changed.AsBool())

	passed, ok := getSpanByName(exporter, "gesture.host.find")
	require.True(t, ok)
	assert.True(t, hasEvent(passed, EventPassedThrough))
}

func TestDispatchMiddleware_ParentedToSession(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	ctx, session := StartSession(context.Background(), tracer, "replay", "notes.txt")
	ed, _ := tracedEditor(ctx, tracer, "abc")

	ed.Dispatch("Ctrl-F")
	session.End()

	root, ok := getSpanByName(exporter, "session.replay")
	require.True(t, ok)
	file, _ := getAttributeValue(root, AttrSessionFile)
	assert.Equal(t, "notes.txt", file.AsString())

	child, ok := getSpanByName(exporter, "gesture.move.char_forward")
	require.True(t, ok)
	assert.Equal(t, root.SpanContext.SpanID(), child.Parent.SpanID())
	assert.Equal(t, root.SpanContext.TraceID(), child.SpanContext.TraceID())
}

func TestDispatchMiddleware_UnboundGestureHasNoSpan(t *testing.T) {
	tracer, exporter := setupTestTracer(t)
	ed, _ := tracedEditor(context.Background(), tracer, "")

	require.Equal(t, emacs.Unbound, ed.Dispatch("A"))
	require.Equal(t, emacs.Pending, ed.Dispatch("Ctrl-X"))
	require.Empty(t, exporter.GetSpans())
}
