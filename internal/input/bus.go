// Package input fans semantic input events out to subscribed listeners.
//
// A session subscribes when it starts and calls the returned unsubscribe
// function when it stops. Once unsubscribe has returned the listener is
// never invoked again, even if another goroutine is publishing.
package input

import (
	"sync"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Event is one input occurrence: a key action, a pointer click, or both.
type Event struct {
	Action  core.Action
	Pointer *core.Pointer
}

// Listener receives events. It runs while the bus holds its read lock and
// must not subscribe or unsubscribe from inside the call.
type Listener func(Event)

// Bus is a set of listeners. The zero value is ready to use.
type Bus struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers l and returns a function that removes it. The
// returned function is safe to call more than once.
func (b *Bus) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	if b.listeners == nil {
		b.listeners = make(map[int]Listener)
	}
	id := b.next
	b.next++
	b.listeners[id] = l
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers ev to every current listener.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, l := range b.listeners {
		l(ev)
	}
}

// PublishAction is shorthand for publishing a key action.
func (b *Bus) PublishAction(a core.Action) {
	b.Publish(Event{Action: a})
}

// PublishPointer is shorthand for publishing a click.
func (b *Bus) PublishPointer(p core.Pointer) {
	b.Publish(Event{Pointer: &p})
}

// Len returns the number of live listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
