package tracing

// Span attribute keys.
const (
	AttrGestureKeys   = "gesture.keys"
	AttrCommandID     = "command.id"
	AttrCommandResult = "command.result"
	AttrCommandEdits  = "command.changes_content"
	AttrBufferID      = "buffer.id"
	AttrBufferChanged = "buffer.changed"
	AttrPrefix        = "prefix.text"
	AttrCursor        = "cursor"
	AttrKillRingSize  = "kill_ring.size"
	AttrSessionFile   = "session.file"
	AttrSessionMode   = "session.mode"
)

// Span name prefixes.
const (
	SpanPrefixGesture = "gesture."
	SpanPrefixSession = "session."
)

// Event names for span events.
const (
	EventCommandSkipped = "command.skipped"
	EventPassedThrough  = "gesture.passed_through"
	EventKillRingGrew   = "kill_ring.grew"
)
