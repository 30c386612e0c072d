package emacs

// Origin tags a text change so the host can group undo history.
type Origin string

const (
	OriginInput     Origin = "+input"
	OriginDelete    Origin = "+delete"
	OriginPaste     Origin = "paste"
	OriginTranspose Origin = "+transpose"
	OriginEdit      Origin = "+edit"
)

// Unit selects the granularity of the host's primitive motions.
type Unit int

const (
	UnitChar Unit = iota
	UnitWord
	UnitLine
	UnitPage
)

func (u Unit) String() string {
	switch u {
	case UnitChar:
		return "char"
	case UnitWord:
		return "word"
	case UnitLine:
		return "line"
	case UnitPage:
		return "page"
	default:
		return "unknown"
	}
}

// Token is the syntactic token that ends at or spans a column. Start and End
// are columns on the token's line; an empty String means no token.
type Token struct {
	Start  int
	End    int
	String string
}

// BracketMatch describes the bracket adjacent to a position and its partner.
// From is the bracket next to the queried position and To its partner.
type BracketMatch struct {
	From    Position
	To      Position
	Matched bool
	Forward bool
}

// Dir returns +1 for an opening bracket and -1 for a closing one.
func (m BracketMatch) Dir() int {
	if m.Forward {
		return 1
	}
	return -1
}

// TextBuffer is the editing surface the engine drives. Implementations own
// the text, the selection and the change history; the engine never holds
// positions across calls except for kill-merge bookkeeping.
type TextBuffer interface {
	// ID identifies the buffer instance; kills only merge within one buffer.
	ID() string

	// Cursor returns the selection head.
	Cursor() Position
	// Anchor returns the selection anchor. Equal to Cursor when nothing is selected.
	Anchor() Position
	SetSelection(anchor, head Position)
	// ExtendSelection moves the head, keeping the anchor only when Extending is on.
	ExtendSelection(head Position)
	Extending() bool
	SetExtending(on bool)

	// GoalColumn is the sticky column for vertical motion, -1 when unset.
	GoalColumn() int
	SetGoalColumn(col int)

	Range(from, to Position) string
	// ReplaceRange swaps [from, to) for text. Selection endpoints inside the
	// replaced span move to the end of the inserted text.
	ReplaceRange(text string, from, to Position, origin Origin)

	// FindPosH steps dir units horizontally. Char and word steps cross line
	// boundaries. A step that cannot move returns pos unchanged.
	FindPosH(pos Position, dir int, unit Unit) Position
	// FindPosV steps dir lines or pages vertically aiming for goalCol
	// (pos.Ch when negative).
	FindPosV(pos Position, dir int, unit Unit, goalCol int) Position

	TokenAt(pos Position) Token
	MatchingBracket(pos Position) (BracketMatch, bool)

	FirstLine() int
	LastLine() int
	Line(n int) string
	LineLength(n int) int
	ClipPos(pos Position) Position

	// ChangeGeneration returns a token that changes whenever the text does.
	ChangeGeneration() uint64
	// IsClean reports whether the text is unchanged since gen was observed.
	IsClean(gen uint64) bool
}

// Undoer is implemented by buffers with an undo history.
type Undoer interface {
	Undo() bool
}

// Prompter is implemented by hosts that can ask the user for a line of text.
// done is invoked with the answer, or never when the prompt is dismissed.
type Prompter interface {
	Prompt(label string, done func(answer string))
}

// HostCommander runs host-defined commands such as save or find.
// ExecHost reports false when the host does not know the command.
type HostCommander interface {
	ExecHost(name string) bool
}

func lineEnd(buf TextBuffer, line int) Position {
	return Pos(line, buf.LineLength(line))
}

func docStart(buf TextBuffer) Position {
	return Pos(buf.FirstLine(), 0)
}

func docEnd(buf TextBuffer) Position {
	return lineEnd(buf, buf.LastLine())
}
