package emacs

import (
	"strings"

	"github.com/zjrosen/emacskeys/internal/log"
	"github.com/zjrosen/emacskeys/internal/pubsub"
)

// Result reports how Dispatch handled a gesture.
type Result int

const (
	// Unbound means no command claimed the gesture; the host should apply
	// its default handling (usually inserting the typed text via Input).
	Unbound Result = iota
	// Handled means a command ran or an unknown sequence was swallowed.
	Handled
	// Pending means the gesture started or continued a multi-key sequence.
	Pending
)

func (r Result) String() string {
	switch r {
	case Unbound:
		return "unbound"
	case Handled:
		return "handled"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Event is the payload published for every gesture, input and kill.
type Event struct {
	BufferID string
	Gesture  string
	Command  string
	Result   Result
	Text     string
	Prefix   string
}

type yankRecord struct {
	from, to Position
	gen      uint64
}

// Editor is the per-buffer dispatch state: the numeric prefix, the prefix
// map flag, any half-typed key sequence and the last yank. Editors are not
// safe for concurrent use; drive each from a single goroutine.
type Editor struct {
	keymap      *Keymap
	buf         TextBuffer
	host        any
	prefix      Prefix
	prefixMap   bool
	pending     []string
	lastCommand string
	lastYank    *yankRecord
}

// Buffer returns the attached buffer.
func (e *Editor) Buffer() TextBuffer { return e.buf }

// Keymap returns the keymap the editor was attached through.
func (e *Editor) Keymap() *Keymap { return e.keymap }

// SetHost registers an object offering Prompter or HostCommander. Without
// one the buffer itself is checked for those capabilities.
func (e *Editor) SetHost(host any) { e.host = host }

// PrefixString renders the accumulated prefix, "" when idle.
func (e *Editor) PrefixString() string { return e.prefix.String() }

// PrefixMapActive reports whether plain digits currently build the prefix.
func (e *Editor) PrefixMapActive() bool { return e.prefixMap }

// PendingKeys returns the half-typed key sequence, "" when none.
func (e *Editor) PendingKeys() string { return strings.Join(e.pending, " ") }

// LastCommand returns the ID of the most recent command, "" after input.
func (e *Editor) LastCommand() string { return e.lastCommand }

// Dispatch resolves one gesture (a key chord such as "Ctrl-K") against the
// bindings and runs the bound command.
func (e *Editor) Dispatch(gesture string) Result {
	g := NormalizeGesture(gesture)
	if g == "" {
		return Unbound
	}
	seq := g
	if len(e.pending) > 0 {
		seq = strings.Join(e.pending, " ") + " " + g
	}

	if len(e.pending) == 0 && e.prefixMap {
		if id, ok := e.keymap.prefixMapCommand(g); ok {
			return e.run(g, id)
		}
	}

	id, ok, isPrefix := e.keymap.resolve(seq)
	switch {
	case ok:
		e.pending = nil
		return e.run(seq, id)
	case isPrefix:
		e.pending = append(e.pending, g)
		e.afterGesture(seq, nil, e.buf.ChangeGeneration())
		e.publish(pubsub.GestureEvent, Event{Gesture: seq, Result: Pending})
		return Pending
	case len(e.pending) > 0:
		e.pending = nil
		log.Debug(log.CatKeymap, "undefined sequence", "buffer", e.buf.ID(), "keys", seq)
		e.afterGesture(seq, nil, e.buf.ChangeGeneration())
		e.publish(pubsub.GestureEvent, Event{Gesture: seq, Result: Handled})
		return Handled
	default:
		return Unbound
	}
}

func (e *Editor) run(seq, id string) Result {
	cmd, ok := e.keymap.registry.Get(id)
	if !ok {
		log.Warn(log.CatKeymap, "binding to unknown command", "keys", seq, "command", id)
		return Unbound
	}
	gen := e.buf.ChangeGeneration()
	result := e.keymap.handler(e, seq, cmd)
	e.afterGesture(seq, cmd, gen)

	res := Handled
	if result == PassThrough {
		res = Unbound
	}
	e.publish(pubsub.GestureEvent, Event{Gesture: seq, Command: id, Result: res})
	return res
}

// afterGesture runs the bookkeeping every handled gesture triggers.
func (e *Editor) afterGesture(seq string, cmd Command, gen uint64) {
	if e.prefixMap && !keepsPrefixMap(seq) {
		e.prefixMap = false
	}
	e.prefix.gestureHandled(seq, e.prefixMap)

	if cmd == nil || !keepsGoalColumn(cmd) {
		e.buf.SetGoalColumn(-1)
	}
	if cmd == nil || !recordsYank(cmd) {
		e.lastYank = nil
	}
	if e.buf.ChangeGeneration() != gen {
		e.buf.SetExtending(false)
	}
	if cmd != nil {
		e.lastCommand = cmd.ID()
	}
}

// Input inserts typed text over the selection. An active prefix repeats
// the text, so "C-u 3 a" inserts "aaa".
func (e *Editor) Input(text string) {
	if text == "" {
		return
	}
	e.pending = nil
	r := NewRange(e.buf.Anchor(), e.buf.Cursor())
	e.buf.ReplaceRange(text, r.From, r.To, OriginInput)

	e.prefixMap = false
	if dup := e.prefix.duplicate(text); dup != "" {
		cur := e.buf.Cursor()
		e.buf.ReplaceRange(dup, cur, cur, OriginInput)
	}

	e.buf.SetExtending(false)
	e.buf.SetGoalColumn(-1)
	e.lastYank = nil
	e.lastCommand = ""
	e.publish(pubsub.InputEvent, Event{Text: text})
}

// Play feeds parsed keystrokes through Dispatch, inserting a keystroke's
// text whenever its gesture is unbound.
func (e *Editor) Play(keys []Keystroke) {
	for _, ks := range keys {
		if ks.Gesture != "" && e.Dispatch(ks.Gesture) != Unbound {
			continue
		}
		e.Input(ks.Text)
	}
}

// ============================================================================
// Helpers shared by commands
// ============================================================================

func (e *Editor) killer() *Killer { return e.keymap.killer }

// findEnd applies by count times from pos, consuming the prefix. A negative
// count flips the direction. Stops early when a step makes no progress.
func (e *Editor) findEnd(pos Position, by Boundary, dir int) Position {
	n := e.prefix.Count()
	if n < 0 {
		dir, n = -dir, -n
	}
	for i := 0; i < n; i++ {
		next := by(e.buf, pos, dir)
		if next == pos {
			break
		}
		pos = next
	}
	return pos
}

// repeat runs fn count times, consuming the prefix. It always runs at
// least once and stops when fn reports no progress.
func (e *Editor) repeat(fn func() bool) {
	n := e.prefix.Count()
	if !fn() {
		return
	}
	for i := 1; i < n; i++ {
		if !fn() {
			return
		}
	}
}

func (e *Editor) kill(from, to Position, mayMerge bool) {
	text := e.killer().kill(e.buf, from, to, mayMerge)
	e.publishKill(text)
}

func (e *Editor) killText(from, to Position, mayMerge bool, text string) {
	e.killer().killText(e.buf, from, to, mayMerge, text)
	e.publishKill(text)
}

func (e *Editor) publishKill(text string) {
	e.publish(pubsub.KillEvent, Event{Text: text})
}

func (e *Editor) recordYank(from, to Position) {
	e.lastYank = &yankRecord{from: from, to: to, gen: e.buf.ChangeGeneration()}
}

func (e *Editor) clearMark() {
	e.buf.SetExtending(false)
	cur := e.buf.Cursor()
	e.buf.SetSelection(cur, cur)
}

func (e *Editor) prompter() Prompter {
	if p, ok := e.host.(Prompter); ok {
		return p
	}
	if p, ok := e.buf.(Prompter); ok {
		return p
	}
	return nil
}

func (e *Editor) hostCommander() HostCommander {
	if h, ok := e.host.(HostCommander); ok {
		return h
	}
	if h, ok := e.buf.(HostCommander); ok {
		return h
	}
	return nil
}

func (e *Editor) publish(t pubsub.EventType, ev Event) {
	ev.BufferID = e.buf.ID()
	ev.Prefix = e.prefix.String()
	e.keymap.events.Publish(t, ev)
}
