package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 64

// Broker is a generic pub/sub event broker.
//
// Channel subscribers receive events asynchronously and may miss events when
// their buffer is full. Hooks run synchronously on the publishing goroutine,
// in registration order, before Publish returns.
type Broker[T any] struct {
	subs       map[chan Event[T]]struct{}
	hooks      []hookEntry[T]
	nextHook   int
	mu         sync.RWMutex
	done       chan struct{}
	bufferSize int
}

type hookEntry[T any] struct {
	id int
	fn Hook[T]
}

// NewBroker creates a new broker with the default buffer size (64).
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a new broker with a custom buffer size.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: size,
	}
}

// Subscribe creates a new subscription channel.
// The channel is automatically closed when ctx is cancelled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := make(chan Event[T], b.bufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed() {
			return
		}
		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// AddHook registers fn to run synchronously on every Publish.
// The returned func removes the hook; calling it twice is harmless.
func (b *Broker[T]) AddHook(fn Hook[T]) (remove func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextHook++
	id := b.nextHook
	b.hooks = append(b.hooks, hookEntry[T]{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, h := range b.hooks {
			if h.id == id {
				b.hooks = append(b.hooks[:i:i], b.hooks[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers an event to every hook and then to every subscriber.
// Channel delivery is non-blocking: full subscribers drop the event.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.mu.RLock()
	if b.closed() {
		b.mu.RUnlock()
		return
	}
	hooks := make([]Hook[T], len(b.hooks))
	for i, h := range b.hooks {
		hooks[i] = h.fn
	}
	for sub := range b.subs {
		select {
		case sub <- event:
		default:
		}
	}
	b.mu.RUnlock()

	// Hooks run outside the lock so they may publish or unsubscribe.
	for _, fn := range hooks {
		fn(event)
	}
}

// Close shuts down the broker and all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		return
	}
	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
	b.hooks = nil
}

// SubscriberCount returns the number of active channel subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// HookCount returns the number of registered hooks.
func (b *Broker[T]) HookCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.hooks)
}

// closed must be called with mu held.
func (b *Broker[T]) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
