package editorview

import (
	"github.com/zjrosen/emacskeys/internal/emacs"
)

// hostRequest is a host command the view must act on after dispatch.
type hostRequest int

const (
	requestSave hostRequest = iota
	requestSaveAs
	requestQuit
	requestWrite // save without the unchanged-buffer check
)

// prompt is an open minibuffer question.
type prompt struct {
	label string
	done  func(answer string)
}

// host receives the editor's Prompter and HostCommander calls during
// Dispatch. Calls are queued and drained by the model once Dispatch
// returns, since a tea.Cmd can only be returned from Update.
type host struct {
	requests []hostRequest
	prompt   *prompt
}

// Prompt opens the minibuffer. A second prompt replaces the first.
func (h *host) Prompt(label string, done func(answer string)) {
	h.prompt = &prompt{label: label, done: done}
}

// ExecHost queues the commands this view implements and declines the rest.
func (h *host) ExecHost(name string) bool {
	switch name {
	case "save", "save_all":
		h.requests = append(h.requests, requestSave)
	case "save_as":
		h.requests = append(h.requests, requestSaveAs)
	case "quit", "close":
		h.requests = append(h.requests, requestQuit)
	default:
		return false
	}
	return true
}

// drain returns and clears the queued requests.
func (h *host) drain() []hostRequest {
	out := h.requests
	h.requests = nil
	return out
}

// takePrompt returns and clears a newly opened prompt.
func (h *host) takePrompt() *prompt {
	p := h.prompt
	h.prompt = nil
	return p
}

var (
	_ emacs.Prompter      = (*host)(nil)
	_ emacs.HostCommander = (*host)(nil)
)
