// Package registry holds the tests registered for a run.
package registry

import (
	"batchtest/internal/domain"
)

// Group is the ordered list of tests of one test type.
type Group struct {
	Name  string
	Tests []domain.TestRecord
}

// Registry maps group names to tests, preserving insertion order.
type Registry struct {
	groups []*Group
	index  map[string]*Group
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]*Group)}
}

// Reset drops every registered test.
func (r *Registry) Reset() {
	r.groups = nil
	r.index = make(map[string]*Group)
}

// Add appends rec to its group, creating the group on first use.
func (r *Registry) Add(rec domain.TestRecord) {
	g, ok := r.index[rec.Group]
	if !ok {
		g = &Group{Name: rec.Group}
		r.index[rec.Group] = g
		r.groups = append(r.groups, g)
	}
	g.Tests = append(g.Tests, rec)
}

// Groups returns copies of the groups in discovery order.
func (r *Registry) Groups() []Group {
	gs := make([]Group, len(r.groups))
	for i, g := range r.groups {
		gs[i] = Group{Name: g.Name, Tests: append([]domain.TestRecord(nil), g.Tests...)}
	}
	return gs
}

// Len returns the number of registered tests.
func (r *Registry) Len() int {
	n := 0
	for _, g := range r.groups {
		n += len(g.Tests)
	}
	return n
}
