package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/barisa/untangled-ui/pkg/form"
)

// Registry stores field renderers by field kind, populated at composition
// time. It deliberately mirrors the validator registry: an open mapping with
// duplication safeguards, separate so presentation never mixes with domain
// validation.
type Registry struct {
	mu        sync.RWMutex
	renderers map[form.Kind]FieldRenderer
}

// NewRegistry creates an empty field renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[form.Kind]FieldRenderer)}
}

// Register adds a renderer for a field kind. Duplicate kinds return an error.
func (r *Registry) Register(kind form.Kind, renderer FieldRenderer) error {
	if kind == "" {
		return fmt.Errorf("render: field kind is required")
	}
	if renderer == nil {
		return fmt.Errorf("render: renderer for kind %q is required", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[kind]; exists {
		return fmt.Errorf("render: renderer for kind %q already registered", kind)
	}
	r.renderers[kind] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind form.Kind, renderer FieldRenderer) {
	if err := r.Register(kind, renderer); err != nil {
		panic(err)
	}
}

// Get retrieves the renderer for a field kind.
func (r *Registry) Get(kind form.Kind) (FieldRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[kind]
	if !ok {
		return nil, fmt.Errorf("render: no renderer for field kind %q", kind)
	}
	return renderer, nil
}

// Has reports whether a renderer is registered for the kind.
func (r *Registry) Has(kind form.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[kind]
	return ok
}

// Kinds returns the sorted registered field kinds.
func (r *Registry) Kinds() []form.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]form.Kind, 0, len(r.renderers))
	for kind := range r.renderers {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
