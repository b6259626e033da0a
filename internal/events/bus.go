// Package events delivers fire-and-forget notifications about effect and
// immunity state changes. Delivery is best-effort: a failing listener is
// logged and skipped, never propagated back into engine state.
package events

import (
	"log"
	"sort"
	"sync"
)

// Listener processes engine notifications
type Listener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// Publisher is the engine-facing side of the bus
type Publisher interface {
	Publish(event Event)
}

// Bus manages event distribution
type Bus struct {
	listeners map[Type][]Listener
	mu        sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[Type][]Listener),
	}
}

// Subscribe adds a listener for a specific event type
func (b *Bus) Subscribe(eventType Type, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], listener)

	// Sort by priority
	sort.Slice(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
	})
}

// Unsubscribe removes a listener
func (b *Bus) Unsubscribe(eventType Type, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[eventType]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		b.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
		return
	}
}

// Publish delivers the event to all listeners in priority order. Listener
// errors are logged and swallowed so notification failures cannot disturb
// the state change that triggered them.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners[event.Type]))
	copy(listeners, b.listeners[event.Type])
	b.mu.RUnlock()

	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			log.Printf("EventBus: listener %s failed on %s: %v", listener.ID(), event.Type, err)
		}
	}
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[Type][]Listener)
}

// NoopPublisher drops every event, for wiring the engine without a bus
type NoopPublisher struct{}

// Publish drops the event
func (NoopPublisher) Publish(Event) {}
