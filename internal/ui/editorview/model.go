// Package editorview is a Bubble Tea host for one text buffer driven by the
// emacs keymap.
//
// The view translates terminal keys into gestures, answers the editor's
// minibuffer prompts and host commands (save, save as, quit), and renders
// the buffer with a mode line and echo area. Everything else, from motions
// to the kill ring, is the keymap's business.
package editorview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/emacskeys/internal/config"
	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/flags"
	"github.com/zjrosen/emacskeys/internal/keys"
	"github.com/zjrosen/emacskeys/internal/log"
	"github.com/zjrosen/emacskeys/internal/pubsub"
	"github.com/zjrosen/emacskeys/internal/textarea"
)

// Options configures a Model.
type Options struct {
	// Path is where C-x C-s writes. Empty means a scratch buffer that asks
	// for a file name on first save.
	Path string
	Text string

	// Keymap defaults to a fresh keymap honouring Config.Editor.IndentUnit.
	Keymap *emacs.Keymap
	Config config.Config
	Flags  *flags.Registry

	// Reloads delivers pubsub.ReloadEvent from the config watcher; Reload is
	// called for each and should rebind Keymap.
	Reloads *pubsub.Listener[string]
	Reload  func() error

	// Logs, when set, surfaces warnings and errors in the echo area.
	Logs *log.Listener
}

// savedMsg reports a finished write.
type savedMsg struct {
	path string
	gen  uint64
}

// errMsg reports a failed background operation.
type errMsg struct{ err error }

type reloadMsg struct{ path string }

type logMsg struct{ entry string }

// Model is the editor view state.
type Model struct {
	buf    *textarea.Buffer
	editor *emacs.Editor
	keymap *emacs.Keymap
	host   *host
	unhook func()

	path     string
	savedGen uint64
	cfg      config.Config
	flags    *flags.Registry
	keys     keys.EditorKeyMap

	width  int
	height int
	top    int

	minibuffer textinput.Model
	prompt     *prompt
	help       help.Model
	showHelp   bool
	showRing   bool

	message    string
	messageErr bool
	echo       string
	quitting   bool

	reloads *pubsub.Listener[string]
	reload  func() error
	logs    *log.Listener
}

// New creates the view and attaches its buffer to the keymap.
func New(opts Options) *Model {
	var bufOpts []textarea.Option
	if opts.Config.Editor.PageLines > 0 {
		bufOpts = append(bufOpts, textarea.WithPageSize(opts.Config.Editor.PageLines))
	}
	buf := textarea.New(opts.Text, bufOpts...)

	km := opts.Keymap
	if km == nil {
		km = emacs.NewKeymap(nil, emacs.WithIndentUnit(opts.Config.Editor.IndentUnit))
	}
	if opts.Flags == nil {
		opts.Flags = flags.New(opts.Config.Flags)
	}
	h := &host{}
	ed := km.Attach(buf)
	ed.SetHost(h)

	mini := textinput.New()
	mini.Prompt = ""
	_ = mini.Cursor.SetMode(cursor.CursorStatic)

	m := &Model{
		buf:        buf,
		editor:     ed,
		keymap:     km,
		host:       h,
		path:       opts.Path,
		savedGen:   buf.ChangeGeneration(),
		cfg:        opts.Config,
		flags:      opts.Flags,
		minibuffer: mini,
		help:       help.New(),
		showRing:   opts.Flags.Enabled(flags.FlagKillRingPanel),
		reloads:    opts.Reloads,
		reload:     opts.Reload,
		logs:       opts.Logs,
	}
	m.refreshHelp()
	m.unhook = km.Events().AddHook(m.onEditorEvent)
	return m
}

// Init starts the reload and log listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listenReloads(), m.listenLogs())
}

// Close detaches the buffer from the keymap.
func (m *Model) Close() {
	if m.unhook != nil {
		m.unhook()
		m.unhook = nil
	}
	m.keymap.Detach(m.buf)
}

// Buffer returns the edited buffer.
func (m *Model) Buffer() *textarea.Buffer { return m.buf }

// Editor returns the buffer's emacs editor.
func (m *Model) Editor() *emacs.Editor { return m.editor }

// Path returns the file the buffer saves to.
func (m *Model) Path() string { return m.path }

// Modified reports whether the buffer changed since it was loaded or saved.
func (m *Model) Modified() bool { return !m.buf.IsClean(m.savedGen) }

// Message returns the echo area message.
func (m *Model) Message() string { return m.message }

// Quitting reports whether the view asked the program to exit.
func (m *Model) Quitting() bool { return m.quitting }

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.cfg.Editor.PageLines <= 0 {
			m.buf.SetPageSize(max(m.bodyHeight()-2, 1))
		}
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case savedMsg:
		m.path = msg.path
		m.savedGen = msg.gen
		m.setMessage("Wrote " + msg.path)
		log.Info(log.CatUI, "saved buffer", "path", msg.path)
		return m, nil

	case errMsg:
		m.setError(msg.err)
		return m, nil

	case reloadMsg:
		if m.reload != nil {
			if err := m.reload(); err != nil {
				m.setError(fmt.Errorf("reloading %s: %w", msg.path, err))
			} else {
				m.refreshHelp()
				m.setMessage("Reloaded key bindings")
			}
		}
		return m, m.listenReloads()

	case logMsg:
		if strings.Contains(msg.entry, "[WARN]") || strings.Contains(msg.entry, "[ERROR]") {
			m.message = logSummary(msg.entry)
			m.messageErr = true
		}
		return m, m.listenLogs()
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.minibuffer, cmd = m.minibuffer.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}

	switch {
	case m.editor.PendingKeys() == "" && key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.KillRing):
		m.showRing = !m.showRing
		return m, nil
	}

	ks := KeystrokeFromKey(msg)
	if ks.Gesture == "" && ks.Text == "" {
		return m, nil
	}
	m.message = ""
	m.echo = ""
	m.editor.Play([]emacs.Keystroke{ks})
	m.scrollToCursor()
	return m, m.afterDispatch()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Minibuffer.Submit):
		p, answer := m.prompt, m.minibuffer.Value()
		m.closePrompt()
		p.done(answer)
		m.scrollToCursor()
		return m, m.afterDispatch()
	case key.Matches(msg, keys.Minibuffer.Cancel):
		m.closePrompt()
		m.setMessage("Quit")
		return m, nil
	}
	var cmd tea.Cmd
	m.minibuffer, cmd = m.minibuffer.Update(msg)
	return m, cmd
}

// afterDispatch acts on whatever the editor asked of the host.
func (m *Model) afterDispatch() tea.Cmd {
	var cmds []tea.Cmd
	if p := m.host.takePrompt(); p != nil {
		cmds = append(cmds, m.openPrompt(p))
	}
	for _, req := range m.host.drain() {
		switch req {
		case requestSave:
			cmds = append(cmds, m.save())
		case requestSaveAs:
			cmds = append(cmds, m.openPrompt(m.saveAsPrompt()))
		case requestWrite:
			cmds = append(cmds, m.write())
		case requestQuit:
			cmds = append(cmds, m.quit())
		}
	}
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	return tea.Batch(cmds...)
}

func (m *Model) openPrompt(p *prompt) tea.Cmd {
	m.prompt = p
	m.minibuffer.Reset()
	m.minibuffer.Prompt = p.label
	if !strings.HasSuffix(p.label, " ") {
		m.minibuffer.Prompt += ": "
	}
	log.Debug(log.CatUI, "minibuffer opened", "label", p.label)
	return m.minibuffer.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = nil
	m.minibuffer.Blur()
}

func (m *Model) saveAsPrompt() *prompt {
	return &prompt{label: "Write file: ", done: func(answer string) {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return
		}
		m.path = answer
		m.host.requests = append(m.host.requests, requestWrite)
	}}
}

// save writes the buffer in the background. A scratch buffer asks for a
// file name first.
func (m *Model) save() tea.Cmd {
	if m.path == "" {
		return m.openPrompt(m.saveAsPrompt())
	}
	if !m.Modified() {
		m.setMessage("(No changes need to be saved)")
		return nil
	}
	return m.write()
}

// write saves the buffer to the current path unconditionally.
func (m *Model) write() tea.Cmd {
	path, text, gen := m.path, m.buf.Text(), m.buf.ChangeGeneration()
	return func() tea.Msg {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return errMsg{fmt.Errorf("creating %s: %w", dir, err)}
			}
		}
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // G306: edited files keep normal permissions
			return errMsg{fmt.Errorf("writing %s: %w", path, err)}
		}
		return savedMsg{path: path, gen: gen}
	}
}

// quit exits, asking first when the buffer has unsaved changes.
func (m *Model) quit() tea.Cmd {
	if !m.Modified() {
		m.quitting = true
		return nil
	}
	return m.openPrompt(&prompt{
		label: "Modified buffer exists; exit anyway? (yes or no) ",
		done: func(answer string) {
			if a := strings.ToLower(strings.TrimSpace(answer)); a == "yes" || a == "y" {
				m.quitting = true
			}
		},
	})
}

// onEditorEvent echoes dispatched commands for this buffer.
func (m *Model) onEditorEvent(ev pubsub.Event[emacs.Event]) {
	if ev.Payload.BufferID != m.buf.ID() || ev.Type != pubsub.GestureEvent {
		return
	}
	if ev.Payload.Command != "" && m.flags.Enabled(flags.FlagEchoKeys) {
		m.echo = ev.Payload.Gesture + " → " + ev.Payload.Command
	}
}

func (m *Model) refreshHelp() {
	m.keys = keys.Editor.WithBindings(keys.FromGestures(m.keymap.Bindings(), m.keymap.Registry().Describe))
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.messageErr = false
}

func (m *Model) setError(err error) {
	log.ErrorErr(log.CatUI, "editor view", err)
	m.message = err.Error()
	m.messageErr = true
}

func (m *Model) listenReloads() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	next := m.reloads.Listen()
	return func() tea.Msg {
		for {
			ev, ok := next().(pubsub.Event[string])
			if !ok {
				return nil
			}
			if ev.Type == pubsub.ReloadEvent {
				return reloadMsg{path: ev.Payload}
			}
		}
	}
}

func (m *Model) listenLogs() tea.Cmd {
	if m.logs == nil {
		return nil
	}
	next := m.logs.Listen()
	return func() tea.Msg {
		if ev, ok := next().(log.Event); ok {
			return logMsg{entry: ev.Payload}
		}
		return nil
	}
}

// logSummary drops the timestamp from a log entry.
func logSummary(entry string) string {
	entry = strings.TrimSpace(entry)
	if _, rest, ok := strings.Cut(entry, " "); ok {
		return rest
	}
	return entry
}
