// Package tripdata supplies the console's grid data: trip plans and quick
// orders, served through registered data sources with paging, caching,
// and debounced search support.
package tripdata

import (
	"fmt"
	"sync"
)

// Registry is a registry of data sources keyed by id. Grids look their
// source up by id so pages can be wired by configuration.
type Registry struct {
	mu      sync.Mutex
	sources map[string]Source
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Add registers a source under its own id, replacing any source already
// registered there.
func (r *Registry) Add(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources[src.ID()] = src
}

// Get returns the source registered under id.
//
// If no source is registered there, it returns an error.
func (r *Registry) Get(id string) (Source, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if src, ok := r.sources[id]; !ok {
		return nil, fmt.Errorf("data source %q not found", id)
	} else {
		return src, nil
	}
}

// Remove removes the source registered under id and returns it, or nil
// when nothing was registered there.
func (r *Registry) Remove(id string) Source {
	r.mu.Lock()
	defer r.mu.Unlock()

	if src, ok := r.sources[id]; !ok {
		return nil
	} else {
		delete(r.sources, id)
		return src
	}
}

// IDs returns the registered source ids, unordered.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.sources))
	for id := range r.sources {
		ids = append(ids, id)
	}
	return ids
}
