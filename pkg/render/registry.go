package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the named renderers an orchestrator can dispatch to. The
// zero value is usable for lookups; registration initialises the backing map
// on first use. All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a renderer under its Name(). A nil renderer, an empty name,
// or a name already taken is an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.renderers[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics when registration fails. Meant for construction-time
// wiring, where a duplicate name is a programming error.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get looks a renderer up by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// List returns the registered renderer names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}
