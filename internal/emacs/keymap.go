package emacs

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/zjrosen/emacskeys/internal/log"
	"github.com/zjrosen/emacskeys/internal/pubsub"
)

// DefaultIndentUnit is the column count used by indent-rigidly without a
// prefix.
const DefaultIndentUnit = 2

// Keymap binds gestures to commands and owns the shared Killer. Every
// buffer attached through the same Keymap shares one kill ring and sees
// binding changes immediately.
type Keymap struct {
	mu         sync.RWMutex
	killer     *Killer
	registry   *Registry
	bindings   map[string]string
	prefixes   map[string]bool
	prefixMap  map[string]string
	handler    CommandHandler
	events     *pubsub.Broker[Event]
	editors    map[string]*Editor
	indentUnit int
}

// Option configures a Keymap.
type Option func(*Keymap)

// WithRegistry resolves command IDs against r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(k *Keymap) { k.registry = r }
}

// WithMiddleware wraps command execution. The first middleware is outermost.
func WithMiddleware(mws ...Middleware) Option {
	return func(k *Keymap) { k.handler = chain(k.handler, mws) }
}

// WithEvents publishes gesture, input and kill events on broker.
func WithEvents(broker *pubsub.Broker[Event]) Option {
	return func(k *Keymap) { k.events = broker }
}

// WithIndentUnit sets the indent-rigidly step used without a prefix.
func WithIndentUnit(n int) Option {
	return func(k *Keymap) {
		if n > 0 {
			k.indentUnit = n
		}
	}
}

// NewKeymap creates a keymap with the default bindings. A nil killer gets a
// fresh one.
func NewKeymap(killer *Killer, opts ...Option) *Keymap {
	if killer == nil {
		killer = NewKiller()
	}
	k := &Keymap{
		killer:     killer,
		registry:   DefaultRegistry,
		bindings:   DefaultBindings(),
		prefixMap:  prefixMapBindings(),
		handler:    runCommand,
		editors:    make(map[string]*Editor),
		indentUnit: DefaultIndentUnit,
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.events == nil {
		k.events = pubsub.NewBroker[Event]()
	}
	k.rebuildPrefixes()
	return k
}

// Killer returns the shared killer.
func (k *Keymap) Killer() *Killer { return k.killer }

// Registry returns the registry commands are resolved from.
func (k *Keymap) Registry() *Registry { return k.registry }

// Events returns the broker editor events are published on.
func (k *Keymap) Events() *pubsub.Broker[Event] { return k.events }

// Bindings returns a copy of the gesture table.
func (k *Keymap) Bindings() map[string]string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make(map[string]string, len(k.bindings))
	for g, id := range k.bindings {
		out[g] = id
	}
	return out
}

// Gestures returns the gestures bound to id in sorted order.
func (k *Keymap) Gestures(id string) []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	var out []string
	for g, bound := range k.bindings {
		if bound == id {
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// MergeInto copies the gesture table into dst, overwriting entries dst
// already has for the same gestures and leaving the rest. A nil dst is
// allocated. Hosts use this to layer the table over their own key map.
func (k *Keymap) MergeInto(dst map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string)
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	for g, id := range k.bindings {
		dst[g] = id
	}
	return dst
}

// Override rebinds gestures. An empty command ID unbinds the gesture.
// Unknown IDs reject the whole set and leave the table untouched.
func (k *Keymap) Override(overrides map[string]string) error {
	return k.rebind(overrides, false)
}

// Reset restores the default table and then applies overrides, so a
// binding dropped from the overrides reverts to its default. Attached
// editors see the new table on their next gesture.
func (k *Keymap) Reset(overrides map[string]string) error {
	return k.rebind(overrides, true)
}

func (k *Keymap) rebind(overrides map[string]string, reset bool) error {
	normalized := make(map[string]string, len(overrides))
	var unknown []string
	for g, id := range overrides {
		key := NormalizeGesture(g)
		if key == "" {
			return fmt.Errorf("empty gesture bound to %q", id)
		}
		if id != "" {
			if _, ok := k.registry.Get(id); !ok {
				unknown = append(unknown, fmt.Sprintf("%s=%s", g, id))
				continue
			}
		}
		normalized[key] = id
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown command in key overrides: %s", strings.Join(unknown, ", "))
	}

	k.mu.Lock()
	if reset {
		k.bindings = DefaultBindings()
	}
	for g, id := range normalized {
		if id == "" {
			delete(k.bindings, g)
		} else {
			k.bindings[g] = id
		}
	}
	k.rebuildPrefixesLocked()
	k.mu.Unlock()

	log.Info(log.CatKeymap, "bindings overridden", "count", len(normalized), "reset", reset)
	return nil
}

// Attach returns the editor for buf, creating it on first use. Attaching the
// same buffer again returns the existing editor with its state intact.
func (k *Keymap) Attach(buf TextBuffer) *Editor {
	k.mu.Lock()
	defer k.mu.Unlock()
	if ed, ok := k.editors[buf.ID()]; ok && ed.buf == buf {
		return ed
	}
	ed := &Editor{keymap: k, buf: buf}
	k.editors[buf.ID()] = ed
	log.Debug(log.CatKeymap, "attached", "buffer", buf.ID())
	return ed
}

// Detach forgets the editor for buf.
func (k *Keymap) Detach(buf TextBuffer) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.editors, buf.ID())
}

// Attached returns the number of attached buffers.
func (k *Keymap) Attached() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.editors)
}

// resolve looks seq up. isPrefix is true when some longer binding starts
// with seq.
func (k *Keymap) resolve(seq string) (id string, ok bool, isPrefix bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	id, ok = k.bindings[seq]
	return id, ok, k.prefixes[seq]
}

func (k *Keymap) prefixMapCommand(gesture string) (string, bool) {
	id, ok := k.prefixMap[gesture]
	return id, ok
}

func (k *Keymap) rebuildPrefixes() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.rebuildPrefixesLocked()
}

func (k *Keymap) rebuildPrefixesLocked() {
	k.prefixes = make(map[string]bool)
	for g := range k.bindings {
		keys := strings.Split(g, " ")
		for i := 1; i < len(keys); i++ {
			k.prefixes[strings.Join(keys[:i], " ")] = true
		}
	}
}
