package emacs

import "strings"

// DefaultRegistry holds every built-in command.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()

	// Motions
	move := func(id, desc string, by Boundary, dir int) *MoveCommand {
		return &MoveCommand{id: id, desc: desc, by: by, dir: dir}
	}
	r.Register(move("move.char_forward", "Forward one character", ByChar, 1))
	r.Register(move("move.char_backward", "Back one character", ByChar, -1))
	r.Register(move("move.word_forward", "Forward one word", ByWord, 1))
	r.Register(move("move.word_backward", "Back one word", ByWord, -1))
	r.Register(&VerticalMoveCommand{MoveCommand: *move("move.line_down", "Next line", ByLine, 1)})
	r.Register(&VerticalMoveCommand{MoveCommand: *move("move.line_up", "Previous line", ByLine, -1)})
	r.Register(&VerticalMoveCommand{MoveCommand: *move("move.page_down", "Scroll down one page", ByPage, 1)})
	r.Register(&VerticalMoveCommand{MoveCommand: *move("move.page_up", "Scroll up one page", ByPage, -1)})
	r.Register(move("move.paragraph_forward", "Forward one paragraph", ByParagraph, 1))
	r.Register(move("move.paragraph_backward", "Back one paragraph", ByParagraph, -1))
	r.Register(move("move.sentence_forward", "Forward one sentence", BySentence, 1))
	r.Register(move("move.sentence_backward", "Back one sentence", BySentence, -1))
	r.Register(move("move.expr_forward", "Forward one balanced expression", ByExpr, 1))
	r.Register(move("move.expr_backward", "Back one balanced expression", ByExpr, -1))
	r.Register(&LineEdgeCommand{})
	r.Register(&LineEdgeCommand{end: true})
	r.Register(&DocEdgeCommand{})
	r.Register(&DocEdgeCommand{end: true})
	r.Register(&GotoLineCommand{})
	r.Register(&UpListCommand{})

	// Kills
	kill := func(id, desc string, by Boundary, dir int) *KillToCommand {
		return &KillToCommand{id: id, desc: desc, by: by, dir: dir, merge: true}
	}
	r.Register(kill("kill.char_forward", "Delete next character", ByChar, 1))
	r.Register(kill("kill.char_backward", "Delete previous character", ByChar, -1))
	r.Register(kill("kill.word_forward", "Kill next word", ByWord, 1))
	r.Register(kill("kill.word_backward", "Kill previous word", ByWord, -1))
	r.Register(kill("kill.sentence_forward", "Kill to end of sentence", BySentence, 1))
	r.Register(kill("kill.sentence_backward", "Kill to start of sentence", BySentence, -1))
	r.Register(kill("kill.expr_forward", "Kill next balanced expression", ByExpr, 1))
	r.Register(kill("kill.expr_backward", "Kill previous balanced expression", ByExpr, -1))
	r.Register(&KillLineCommand{})
	r.Register(&KillRegionCommand{})
	r.Register(&CopyRegionCommand{})
	r.Register(&YankCommand{})
	r.Register(&YankPopCommand{})

	// Mark
	r.Register(&SetMarkCommand{})
	r.Register(&ExchangeMarkCommand{})
	r.Register(&SelectAllCommand{})
	r.Register(&MarkExprCommand{})
	r.Register(&QuitCommand{})

	// Editing
	r.Register(&OpenLineCommand{})
	r.Register(&TransposeCharsCommand{})
	r.Register(&TransposeExprsCommand{})
	r.Register(&WordCaseCommand{id: "edit.capitalize_word", desc: "Capitalize next word", op: capitalize})
	r.Register(&WordCaseCommand{id: "edit.upcase_word", desc: "Upcase next word", op: strings.ToUpper})
	r.Register(&WordCaseCommand{id: "edit.downcase_word", desc: "Downcase next word", op: strings.ToLower})
	r.Register(&JustOneSpaceCommand{})
	r.Register(&NewlineIndentCommand{})
	r.Register(&IndentRigidlyCommand{})
	r.Register(&InsertTabCommand{})
	r.Register(&UndoCommand{})

	// Prefix
	for _, d := range "0123456789" {
		r.Register(&PrefixArgCommand{token: string(d)})
	}
	r.Register(&PrefixArgCommand{token: "-"})
	r.Register(&UniversalArgumentCommand{})
	r.Register(&PrefixCancelCommand{})

	// Host
	for _, h := range hostCommands {
		r.Register(&HostCommand{name: h[0], desc: h[1]})
	}

	return r
}

// hostCommands are forwarded to the host by name.
var hostCommands = [][2]string{
	{"save", "Save buffer"},
	{"save_as", "Write buffer to a new file"},
	{"save_all", "Save all buffers"},
	{"open", "Open a file"},
	{"close", "Close buffer"},
	{"quit", "Quit the editor"},
	{"find", "Search forward"},
	{"find_prev", "Search backward"},
	{"replace", "Query replace"},
	{"autocomplete", "Complete at point"},
	{"toggle_comment", "Toggle comment"},
	{"indent_auto", "Indent line"},
}

// DefaultBindings returns a fresh copy of the built-in gesture table.
// Keys are normalized gestures; multi-key sequences are space separated.
func DefaultBindings() map[string]string {
	b := map[string]string{
		"Right":              "move.char_forward",
		"Ctrl-F":             "move.char_forward",
		"Left":               "move.char_backward",
		"Ctrl-B":             "move.char_backward",
		"Alt-F":              "move.word_forward",
		"Alt-B":              "move.word_backward",
		"Down":               "move.line_down",
		"Ctrl-N":             "move.line_down",
		"Up":                 "move.line_up",
		"Ctrl-P":             "move.line_up",
		"Ctrl-V":             "move.page_down",
		"PageDown":           "move.page_down",
		"Alt-V":              "move.page_up",
		"PageUp":             "move.page_up",
		"Ctrl-Down":          "move.paragraph_forward",
		"Alt-}":              "move.paragraph_forward",
		"Ctrl-Up":            "move.paragraph_backward",
		"Alt-{":              "move.paragraph_backward",
		"Alt-E":              "move.sentence_forward",
		"Alt-A":              "move.sentence_backward",
		"Ctrl-Alt-F":         "move.expr_forward",
		"Ctrl-Alt-B":         "move.expr_backward",
		"Ctrl-A":             "move.line_start",
		"Home":               "move.line_start",
		"Ctrl-E":             "move.line_end",
		"End":                "move.line_end",
		"Shift-Alt-,":        "move.doc_start",
		"Alt-<":              "move.doc_start",
		"Ctrl-Home":          "move.doc_start",
		"Shift-Alt-.":        "move.doc_end",
		"Alt->":              "move.doc_end",
		"Ctrl-End":           "move.doc_end",
		"Alt-G G":            "move.goto_line",
		"Alt-G Alt-G":        "move.goto_line",
		"Ctrl-Alt-U":         "move.up_list",
		"Ctrl-D":             "kill.char_forward",
		"Delete":             "kill.char_forward",
		"Ctrl-H":             "kill.char_backward",
		"Backspace":          "kill.char_backward",
		"Alt-D":              "kill.word_forward",
		"Alt-Backspace":      "kill.word_backward",
		"Alt-K":              "kill.sentence_forward",
		"Ctrl-X Delete":      "kill.sentence_backward",
		"Ctrl-Alt-K":         "kill.expr_forward",
		"Ctrl-Alt-Backspace": "kill.expr_backward",
		"Ctrl-K":             "kill.line",
		"Ctrl-W":             "kill.region",
		"Alt-W":              "kill.copy_region",
		"Ctrl-Y":             "yank.at_cursor",
		"Alt-Y":              "yank.pop",
		"Ctrl-Space":         "mark.set",
		"Shift-Ctrl-2":       "mark.set",
		"Ctrl-X Ctrl-X":      "mark.exchange",
		"Ctrl-X H":           "mark.select_all",
		"Shift-Ctrl-Alt-2":   "mark.expr",
		"Ctrl-G":             "mark.quit",
		"Ctrl-O":             "edit.open_line",
		"Ctrl-T":             "edit.transpose_chars",
		"Ctrl-Alt-T":         "edit.transpose_exprs",
		"Alt-C":              "edit.capitalize_word",
		"Alt-U":              "edit.upcase_word",
		"Alt-L":              "edit.downcase_word",
		"Alt-Space":          "edit.just_one_space",
		"Ctrl-J":             "edit.newline_indent",
		"Ctrl-X Tab":         "edit.indent_rigidly",
		"Ctrl-Q Tab":         "edit.insert_tab",
		"Ctrl-/":             "edit.undo",
		"Shift-Ctrl--":       "edit.undo",
		"Ctrl-Z":             "edit.undo",
		"Cmd-Z":              "edit.undo",
		"Ctrl-X U":           "edit.undo",
		"Ctrl--":             "prefix.negative",
		"Ctrl-U":             "prefix.universal",
		"Ctrl-X Ctrl-S":      "host.save",
		"Ctrl-X Ctrl-W":      "host.save_as",
		"Ctrl-X S":           "host.save_all",
		"Ctrl-X F":           "host.open",
		"Ctrl-X Ctrl-F":      "host.open",
		"Ctrl-X K":           "host.close",
		"Ctrl-X Ctrl-C":      "host.quit",
		"Ctrl-S":             "host.find",
		"Ctrl-R":             "host.find_prev",
		"Shift-Alt-5":        "host.replace",
		"Alt-/":              "host.autocomplete",
		"Alt-;":              "host.toggle_comment",
		"Tab":                "host.indent_auto",
	}
	for _, d := range "0123456789" {
		b["Ctrl-"+string(d)] = "prefix.digit_" + string(d)
	}
	return b
}

// prefixMapBindings are active only while the prefix map is engaged.
func prefixMapBindings() map[string]string {
	b := map[string]string{
		"-":      "prefix.negative",
		"Ctrl-G": "prefix.cancel",
	}
	for _, d := range "0123456789" {
		b[string(d)] = "prefix.digit_" + string(d)
	}
	return b
}

// keepsPrefixMap reports whether gesture leaves the prefix map engaged.
func keepsPrefixMap(gesture string) bool {
	if gesture == "Ctrl-U" || gesture == "-" {
		return true
	}
	return len(gesture) == 1 && gesture[0] >= '0' && gesture[0] <= '9'
}
