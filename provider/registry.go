package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/RileyEv/databridge/schema"
)

// Factory builds a provider instance from a descriptor.
type Factory func(ctx context.Context, descriptor *schema.Descriptor) (Provider, error)

// Registry resolves descriptor kinds to factories. The bridge endpoint looks
// kinds up here instead of hard-coding provider implementations.
type Registry struct {
	mux       sync.RWMutex
	factories map[string]Factory
}

// Register binds a descriptor kind to a factory, replacing any previous
// binding for that kind.
func (r *Registry) Register(kind string, factory Factory) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.factories[kind] = factory
}

// Lookup returns the factory for kind.
func (r *Registry) Lookup(kind string) (Factory, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	factory, ok := r.factories[kind]
	return factory, ok
}

// New resolves descriptor.Kind and builds the provider.
func (r *Registry) New(ctx context.Context, descriptor *schema.Descriptor) (Provider, error) {
	factory, ok := r.Lookup(descriptor.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown provider kind: %q", descriptor.Kind)
	}
	return factory(ctx, descriptor)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}
