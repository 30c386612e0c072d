package emacs

// ============================================================================
// Mark Commands
// ============================================================================

// SetMarkCommand drops the mark at the cursor and toggles selection
// extension.
type SetMarkCommand struct{}

// Execute collapses the selection and flips the extending flag.
func (c *SetMarkCommand) Execute(e *Editor) ExecuteResult {
	cur := e.buf.Cursor()
	e.buf.SetSelection(cur, cur)
	e.buf.SetExtending(!e.buf.Extending())
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *SetMarkCommand) ID() string { return "mark.set" }

// Description returns the key reference text.
func (c *SetMarkCommand) Description() string { return "Set or toggle the mark" }

// ExchangeMarkCommand swaps the cursor and the mark.
type ExchangeMarkCommand struct{}

// Execute swaps anchor and head.
func (c *ExchangeMarkCommand) Execute(e *Editor) ExecuteResult {
	e.buf.SetSelection(e.buf.Cursor(), e.buf.Anchor())
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *ExchangeMarkCommand) ID() string { return "mark.exchange" }

// Description returns the key reference text.
func (c *ExchangeMarkCommand) Description() string { return "Exchange point and mark" }

// SelectAllCommand selects the whole buffer with the cursor at the end.
type SelectAllCommand struct{}

// Execute selects everything.
func (c *SelectAllCommand) Execute(e *Editor) ExecuteResult {
	e.buf.SetSelection(docStart(e.buf), docEnd(e.buf))
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *SelectAllCommand) ID() string { return "mark.select_all" }

// Description returns the key reference text.
func (c *SelectAllCommand) Description() string { return "Select the whole buffer" }

// MarkExprCommand selects from the cursor to the end of the next count
// expressions, leaving the cursor in place.
type MarkExprCommand struct{}

// Execute puts the mark after the expression.
func (c *MarkExprCommand) Execute(e *Editor) ExecuteResult {
	cur := e.buf.Cursor()
	e.buf.SetSelection(e.findEnd(cur, ByExpr, 1), cur)
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *MarkExprCommand) ID() string { return "mark.expr" }

// Description returns the key reference text.
func (c *MarkExprCommand) Description() string { return "Mark balanced expression" }

// QuitCommand cancels the mark and asks the host to clear any search.
type QuitCommand struct{}

// Execute clears the selection and the mark.
func (c *QuitCommand) Execute(e *Editor) ExecuteResult {
	if h := e.hostCommander(); h != nil {
		h.ExecHost("clear_search")
	}
	e.clearMark()
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *QuitCommand) ID() string { return "mark.quit" }

// Description returns the key reference text.
func (c *QuitCommand) Description() string { return "Quit: clear mark and search" }

// ============================================================================
// Prefix Commands
// ============================================================================

// PrefixArgCommand adds a digit or "-" to the numeric prefix.
type PrefixArgCommand struct {
	token string
}

// Execute feeds the token into the prefix.
func (c *PrefixArgCommand) Execute(e *Editor) ExecuteResult {
	e.prefix.Add(c.token)
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *PrefixArgCommand) ID() string {
	if c.token == "-" {
		return "prefix.negative"
	}
	return "prefix.digit_" + c.token
}

// Description returns the key reference text.
func (c *PrefixArgCommand) Description() string {
	if c.token == "-" {
		return "Negative prefix argument"
	}
	return "Prefix argument digit " + c.token
}

// UniversalArgumentCommand engages the prefix map so that plain digits and
// "-" build the prefix until some other gesture or input arrives.
type UniversalArgumentCommand struct{}

// Execute engages the prefix map.
func (c *UniversalArgumentCommand) Execute(e *Editor) ExecuteResult {
	e.prefixMap = true
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *UniversalArgumentCommand) ID() string { return "prefix.universal" }

// Description returns the key reference text.
func (c *UniversalArgumentCommand) Description() string { return "Begin a numeric argument" }

// PrefixCancelCommand discards the accumulated prefix.
type PrefixCancelCommand struct{}

// Execute clears the prefix.
func (c *PrefixCancelCommand) Execute(e *Editor) ExecuteResult {
	e.prefix.Clear()
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *PrefixCancelCommand) ID() string { return "prefix.cancel" }

// Description returns the key reference text.
func (c *PrefixCancelCommand) Description() string { return "Cancel the numeric argument" }

// ============================================================================
// Host Commands
// ============================================================================

// HostCommand forwards to a host-defined command such as save or find.
type HostCommand struct {
	name string
	desc string
}

// Execute runs the host command, passing the gesture through when no host
// implements it.
func (c *HostCommand) Execute(e *Editor) ExecuteResult {
	h := e.hostCommander()
	if h == nil || !h.ExecHost(c.name) {
		return PassThrough
	}
	return Executed
}

// ID returns the hierarchical identifier for this command.
func (c *HostCommand) ID() string { return "host." + c.name }

// Description returns the key reference text.
func (c *HostCommand) Description() string { return c.desc }
