package handler

import (
	"sync"

	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// Registry is a map-backed implementation of interfaces.HandlerRegistry.
// Registration happens at startup; Lookup is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[types.ActionType]interfaces.ActionHandler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[types.ActionType]interfaces.ActionHandler),
	}
}

// Register binds a handler to an action type, replacing any previous binding
func (r *Registry) Register(t types.ActionType, h interfaces.ActionHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = h
}

// Lookup returns the handler for t, or false if none is registered
func (r *Registry) Lookup(t types.ActionType) (interfaces.ActionHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[t]
	return h, ok
}

// Types returns the action types with a registered handler
func (r *Registry) Types() []types.ActionType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.ActionType, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	return out
}
