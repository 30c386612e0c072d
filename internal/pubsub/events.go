// Package pubsub provides a generic publish/subscribe event system used to
// fan editor notifications out to the terminal view, tracing and tests.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	GestureEvent EventType = "gesture" // a bound gesture ran or advanced a key sequence
	InputEvent   EventType = "input"   // plain text was inserted
	KillEvent    EventType = "kill"    // text entered the kill ring
	ReloadEvent  EventType = "reload"  // configuration was reloaded from disk
	LogEvent     EventType = "log"     // a formatted log entry was written
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

// Hook is called synchronously for every published event.
type Hook[T any] func(Event[T])
