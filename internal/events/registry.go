package events

import (
	"sync"

	"github.com/google/uuid"
)

// Listener receives dispatched events.
type Listener func(*Event)

// Registry holds the listeners of one host. Listeners run in subscription
// order, outside the lock, so they may subscribe or unsubscribe.
type Registry struct {
	mu        sync.RWMutex
	listeners map[string]Listener // listenerID -> listener
	order     []string
}

func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[string]Listener),
	}
}

// Subscribe registers fn and returns the id to unsubscribe it with.
func (r *Registry) Subscribe(fn Listener) string {
	id := uuid.New().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[id] = fn
	r.order = append(r.order, id)
	return id
}

// Unsubscribe removes a listener. It reports whether id was registered.
func (r *Registry) Unsubscribe(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listeners[id]; !ok {
		return false
	}
	delete(r.listeners, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of listeners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// Clear drops every listener.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = make(map[string]Listener)
	r.order = nil
}

// Dispatch delivers ev to every listener and returns how many received it.
func (r *Registry) Dispatch(ev *Event) int {
	r.mu.RLock()
	listeners := make([]Listener, 0, len(r.order))
	for _, id := range r.order {
		listeners = append(listeners, r.listeners[id])
	}
	r.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
	return len(listeners)
}
