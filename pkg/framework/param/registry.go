package param

import (
	"fmt"
	"sync"
)

// Registry holds a fixed number of parameters addressed by index.
// Parameters live inside the registry, so a *Parameter obtained from it stays valid.
type Registry struct {
	params []Parameter
	byName map[string]int
	mu     sync.RWMutex
}

// NewRegistry creates a registry of count uninitialized parameters
func NewRegistry(count int) *Registry {
	return &Registry{
		params: make([]Parameter, max(count, 0)),
		byName: make(map[string]int),
	}
}

// Len returns the number of parameter slots
func (r *Registry) Len() int {
	return len(r.params)
}

// IsValid reports whether index addresses a slot
func (r *Registry) IsValid(index int) bool {
	return index >= 0 && index < len(r.params)
}

// Get returns the parameter at index, or nil if the index is out of range
func (r *Registry) Get(index int) *Parameter {
	if !r.IsValid(index) {
		return nil
	}
	return &r.params[index]
}

// Init initializes the parameter at index from b and indexes it by name
func (r *Registry) Init(index int, b *Builder) (*Parameter, error) {
	if !r.IsValid(index) {
		return nil, fmt.Errorf("parameter index %d out of range [0, %d)", index, len(r.params))
	}
	p := &r.params[index]
	if p.Initialized() {
		return nil, fmt.Errorf("parameter %d already initialized as %q", index, p.Name())
	}

	b.Init(p)
	if !p.Initialized() {
		return nil, fmt.Errorf("parameter %d: initialization rejected", index)
	}
	if err := r.index(index, p.Name()); err != nil {
		return p, err
	}
	return p, nil
}

// Added registers the name of a parameter initialized directly through Get(index).Init
func (r *Registry) Added(index int) error {
	p := r.Get(index)
	if p == nil || !p.Initialized() {
		return fmt.Errorf("parameter %d is not initialized", index)
	}
	return r.index(index, p.Name())
}

func (r *Registry) index(index int, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok && existing != index {
		return fmt.Errorf("parameter name %q already used by parameter %d", name, existing)
	}
	r.byName[name] = index
	return nil
}

// Lookup returns the index of the parameter with the given full name
func (r *Registry) Lookup(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, ok := r.byName[name]
	return index, ok
}

// Name returns the full name of the parameter at index, or "" for an invalid or uninitialized slot
func (r *Registry) Name(index int) string {
	if p := r.Get(index); p != nil {
		return p.Name()
	}
	return ""
}

// All returns every parameter slot in index order
func (r *Registry) All() []*Parameter {
	result := make([]*Parameter, len(r.params))
	for i := range r.params {
		result[i] = &r.params[i]
	}
	return result
}
