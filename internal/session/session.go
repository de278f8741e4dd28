// Package session holds the named drivetrain configurations a user builds
// up during one interactive or web session. The registry lives in memory
// only; a new process starts empty.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/velotools/gearrange-cli/internal/apperr"
	"github.com/velotools/gearrange-cli/internal/drivetrain"
	"github.com/velotools/gearrange-cli/internal/export"
)

// Entry is one configured drivetrain plus the cadence it is evaluated at.
type Entry struct {
	ID         string
	Name       string
	Drivetrain *drivetrain.Drivetrain
	Cadence    drivetrain.Cadence
}

// Speed returns the entry's speed table for its configured cadence.
func (e *Entry) Speed() []drivetrain.SpeedEntry {
	return e.Drivetrain.Speed(e.Cadence)
}

// Registry is a name-keyed collection of entries. Each Drivetrain is
// immutable, so the only state the mutex guards is the map and ordering;
// one registry serves one session (CLI process or web server instance).
type Registry struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Add stores a configuration under the given name. Adding an existing
// name replaces the configuration but keeps its position in the listing.
func (r *Registry) Add(name string, d *drivetrain.Drivetrain, cadence drivetrain.Cadence) (*Entry, error) {
	if name == "" {
		return nil, apperr.Invalid("configuration name must not be empty")
	}
	if d == nil {
		return nil, apperr.Invalid("configuration needs a drivetrain")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := &Entry{
		ID:         uuid.NewString(),
		Name:       name,
		Drivetrain: d,
		Cadence:    cadence,
	}
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = entry
	return entry, nil
}

// Remove deletes a configuration by name and reports whether it existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Keep removes every configuration whose name is not in the given list.
func (r *Registry) Keep(names []string) {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	for _, n := range r.order {
		if keep[n] {
			kept = append(kept, n)
		} else {
			delete(r.entries, n)
		}
	}
	r.order = kept
}

// Get looks up a configuration by name.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	return e, ok
}

// List returns all entries in the order they were first added.
func (r *Registry) List() []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Entry, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.entries[n])
	}
	return out
}

// Len returns the number of configurations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Tables assembles the export tables for every configuration, in listing
// order. An empty registry yields an empty slice, which the exporter
// turns into a header-only CSV.
func (r *Registry) Tables() []export.Table {
	entries := r.List()
	tables := make([]export.Table, 0, len(entries))
	for _, e := range entries {
		tables = append(tables, export.Table{
			Configuration: e.Name,
			Rows:          e.Speed(),
		})
	}
	return tables
}
