package game

import (
	"sync"

	"github.com/google/uuid"
)

// EventKind names what changed in a session.
type EventKind string

const (
	EventState  EventKind = "state"  // any player-visible state change
	EventTick   EventKind = "tick"   // countdown moved by one second
	EventNotice EventKind = "notice" // a message for the player, see Event.Message
)

// NoticeFillAll is published when a guess is submitted before it is ready.
const NoticeFillAll = "Fill all 10 colors"

// Event is delivered to subscribers after the session lock is released, so
// handlers may query the session.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message,omitempty"`
}

// Notifier fans events out to subscribers.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]func(Event)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]func(Event))}
}

// Subscribe registers fn and returns an id for Unsubscribe.
func (n *Notifier) Subscribe(fn func(Event)) string {
	id := uuid.NewString()
	n.mu.Lock()
	n.subs[id] = fn
	n.mu.Unlock()
	return id
}

// Unsubscribe removes a subscriber. Unknown ids are ignored.
func (n *Notifier) Unsubscribe(id string) {
	n.mu.Lock()
	delete(n.subs, id)
	n.mu.Unlock()
}

// Publish calls every subscriber synchronously on the caller's goroutine.
func (n *Notifier) Publish(e Event) {
	n.mu.RLock()
	fns := make([]func(Event), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
