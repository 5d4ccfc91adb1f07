package runtime

import (
	"slices"
	"sync"

	"messenger/contract"

	"github.com/google/uuid"
)

var _ contract.IRegistry = (*Registry)(nil)

// Registry keeps the sinks subscribed to the store, in subscription order.
type Registry struct {
	mu    sync.RWMutex
	sinks map[uuid.UUID]contract.EventSink
	order []uuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{sinks: make(map[uuid.UUID]contract.EventSink)}
}

// Subscribe registers a sink and returns the func removing it.
// Calling the returned func more than once is harmless.
func (r *Registry) Subscribe(sink contract.EventSink) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	r.sinks[id] = sink
	r.order = append(r.order, id)
	return func() { r.unsubscribe(id) }
}

func (r *Registry) unsubscribe(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sinks[id]; !ok {
		return
	}
	delete(r.sinks, id)
	r.order = slices.DeleteFunc(r.order, func(other uuid.UUID) bool { return other == id })
}

// Sinks returns a copy of the active sinks.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.order))
	for _, id := range r.order {
		sinks = append(sinks, r.sinks[id])
	}
	return sinks
}
