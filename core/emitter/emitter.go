package emitter

import "sync"

// Listener receives an event payload
type Listener func(data any)

// Emitter is a minimal in-process event bus. Modules emit named events
// (e.g. "search.history.created") and infrastructure like the websocket
// hub subscribes to them.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

// New creates an empty emitter
func New() *Emitter {
	return &Emitter{
		listeners: make(map[string][]Listener),
	}
}

// On registers a listener for the given event name
func (e *Emitter) On(event string, listener Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], listener)
}

// Emit calls every listener registered for the event, synchronously and in
// registration order. Listeners must not block.
func (e *Emitter) Emit(event string, data any) {
	e.mu.RLock()
	listeners := make([]Listener, len(e.listeners[event]))
	copy(listeners, e.listeners[event])
	e.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}
