package emacs

import (
	"sort"
	"time"

	"github.com/zjrosen/emacskeys/internal/log"
)

// ExecuteResult indicates the outcome of command execution.
type ExecuteResult int

const (
	// Executed means the command ran and consumed the gesture.
	Executed ExecuteResult = iota
	// PassThrough means the command declined the gesture so the host may handle it.
	PassThrough
	// Skipped means pre-conditions weren't met (e.g. nothing to kill).
	Skipped
)

func (r ExecuteResult) String() string {
	switch r {
	case Executed:
		return "executed"
	case PassThrough:
		return "pass_through"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Command is an operation a gesture can be bound to.
//
// Commands are stateless prototypes shared by every Editor; any per-buffer
// state lives on the Editor they receive.
type Command interface {
	// Execute runs the command against the editor's buffer.
	Execute(e *Editor) ExecuteResult

	// ID returns the hierarchical identifier used in binding tables,
	// configuration overrides, logs and spans.
	// Examples: "move.word_forward", "kill.line", "yank.pop"
	ID() string
}

// Describer is implemented by commands that provide a one-line description
// for the key reference.
type Describer interface {
	Description() string
}

// ============================================================================
// Base structs for command traits
// ============================================================================

// MotionBase marks commands that only move the cursor.
type MotionBase struct{}

// ChangesContent reports that motions leave the text alone.
func (MotionBase) ChangesContent() bool { return false }

// VerticalBase marks commands that keep the goal column alive between
// consecutive invocations.
type VerticalBase struct{}

// KeepsGoalColumn reports that the goal column survives this command.
func (VerticalBase) KeepsGoalColumn() bool { return true }

// KillBase marks commands that remove text into the kill ring.
type KillBase struct{}

// ChangesContent reports that kills edit the buffer.
func (KillBase) ChangesContent() bool { return true }

// YankBase marks commands whose inserted text a following yank-pop may replace.
type YankBase struct{}

// RecordsYank reports that the command leaves a yank record behind.
func (YankBase) RecordsYank() bool { return true }

type contentChanger interface {
	ChangesContent() bool
}

type goalKeeper interface {
	KeepsGoalColumn() bool
}

type yankRecorder interface {
	RecordsYank() bool
}

// ChangesContent reports whether cmd is declared to edit the buffer. known
// is false for commands that embed neither MotionBase nor KillBase.
func ChangesContent(cmd Command) (changes, known bool) {
	c, ok := cmd.(contentChanger)
	if !ok {
		return false, false
	}
	return c.ChangesContent(), true
}

func keepsGoalColumn(cmd Command) bool {
	g, ok := cmd.(goalKeeper)
	return ok && g.KeepsGoalColumn()
}

func recordsYank(cmd Command) bool {
	y, ok := cmd.(yankRecorder)
	return ok && y.RecordsYank()
}

// ============================================================================
// Registry
// ============================================================================

// Registry maps command IDs to command prototypes.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd under its ID, replacing any previous command.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.ID()] = cmd
}

// Get retrieves a command by ID.
func (r *Registry) Get(id string) (Command, bool) {
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Describe returns the description of id, or "" when the command is
// unknown or has none.
func (r *Registry) Describe(id string) string {
	if d, ok := r.commands[id].(Describer); ok {
		return d.Description()
	}
	return ""
}

// IDs returns every registered ID in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ============================================================================
// Middleware
// ============================================================================

// CommandHandler executes a resolved command for a gesture.
type CommandHandler func(e *Editor, gesture string, cmd Command) ExecuteResult

// Middleware wraps a CommandHandler with cross-cutting behaviour.
type Middleware func(next CommandHandler) CommandHandler

func runCommand(e *Editor, _ string, cmd Command) ExecuteResult {
	return cmd.Execute(e)
}

func chain(h CommandHandler, mws []Middleware) CommandHandler {
	// Apply in reverse so the first middleware is outermost.
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// LoggingMiddleware logs every dispatched command with its outcome and
// duration under the keymap category.
func LoggingMiddleware() Middleware {
	return func(next CommandHandler) CommandHandler {
		return func(e *Editor, gesture string, cmd Command) ExecuteResult {
			start := time.Now()
			result := next(e, gesture, cmd)
			log.Debug(log.CatKeymap, "dispatch",
				"buffer", e.buf.ID(),
				"gesture", gesture,
				"command", cmd.ID(),
				"result", result,
				"duration", time.Since(start))
			return result
		}
	}
}
