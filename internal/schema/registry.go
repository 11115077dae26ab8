package schema

import "fmt"

// Registry maps table names to their record type descriptors. It is built
// once from an explicit list of descriptors and is read-only afterwards.
type Registry struct {
	tables map[string]Table
	order  []string
}

// NewRegistry builds a registry from the given descriptors. Every descriptor
// is validated; duplicate table names are rejected.
func NewRegistry(tables ...Table) (*Registry, error) {
	r := &Registry{tables: make(map[string]Table, len(tables))}
	for _, t := range tables {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid table descriptor: %w", err)
		}
		if _, exists := r.tables[t.Name]; exists {
			return nil, fmt.Errorf("table %q registered twice", t.Name)
		}
		r.tables[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r, nil
}

// Resolve looks up a table descriptor by name. The match is case-sensitive.
func (r *Registry) Resolve(name string) (Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Names returns all registered table names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return len(r.order)
}
