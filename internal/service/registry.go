package service

import (
	"sort"
	"sync"
)

// Registry holds every registered dictionary service descriptor.
// Registration happens once at startup from a fixed list of service
// packages; repeated registration of the same name is a no-op.
type Registry struct {
	mu       sync.RWMutex
	services []Descriptor
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a descriptor to the registry. Registering a name that
// is already present is a no-op, which keeps discovery idempotent.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.services {
		if s.Name() == d.Name() {
			return
		}
	}
	r.services = append(r.services, d)
}

// All returns every registered descriptor ordered by its sort key, with
// each descriptor's public index re-numbered to match its position.
func (r *Registry) All() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Descriptor, len(r.services))
	copy(out, r.services)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order() < out[j].Order()
	})
	for i, d := range out {
		d.SetID(i)
	}
	return out
}

// Lookup returns the descriptor with the given name, or nil.
func (r *Registry) Lookup(name string) Descriptor {
	for _, d := range r.All() {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// First returns the first descriptor in sort order, or nil when the
// registry is empty.
func (r *Registry) First() Descriptor {
	all := r.All()
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// Len reports the number of registered services.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.services)
}
