// Package registry holds the tool descriptor table. The table is populated
// exactly once at process start; afterwards it only serves reads and is safe
// for concurrent use.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/schema"
)

// Registry manages the available tool descriptors.
type Registry struct {
	mu    sync.RWMutex
	table map[string]domain.Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		table: make(map[string]domain.Descriptor),
	}
}

// Register adds a descriptor to the table. It returns
// domain.ErrDuplicateTool if the name is already taken, and rejects
// malformed descriptors outright so schema mistakes surface at startup
// rather than at call time.
func (r *Registry) Register(d domain.Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("register tool: name is empty")
	}
	if d.Handler == nil {
		return fmt.Errorf("register tool %q: handler is nil", d.Name)
	}
	if err := checkSchema(d.Params); err != nil {
		return fmt.Errorf("register tool %q: %w", d.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.table[d.Name]; exists {
		return fmt.Errorf("register tool %q: %w", d.Name, domain.ErrDuplicateTool)
	}
	r.table[d.Name] = d
	return nil
}

// MustRegister registers descriptors and panics on failure. Intended for
// startup wiring where a bad descriptor is a programming error.
func (r *Registry) MustRegister(descriptors ...domain.Descriptor) {
	for _, d := range descriptors {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

// Get looks up a descriptor by name.
func (r *Registry) Get(name string) (domain.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.table[name]
	return d, ok
}

// All returns every descriptor sorted by name.
func (r *Registry) All() []domain.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Descriptor, 0, len(r.table))
	for _, d := range r.table {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.table)
}

// checkSchema verifies that every field declares a kind and that any default
// satisfies its own declaration.
func checkSchema(s schema.Schema) error {
	for _, key := range s.Keys() {
		field := s[key]
		if field.Type == nil {
			return fmt.Errorf("field %q: no kind declared", key)
		}
		if field.Default != nil {
			if err := field.Type.Validate(field.Default); err != nil {
				return fmt.Errorf("field %q: default %v: %w", key, field.Default, err)
			}
		}
	}
	return nil
}
