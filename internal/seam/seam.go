// Package seam is the registry of seam-marked edges.
//
// Seams are stored as canonical original-vertex pairs, so callers may query with
// the endpoints in either order.
package seam

import "github.com/gogpu/unwrap/internal/mesh"

// Set is the seam registry of one shape.
type Set struct {
	edges map[mesh.Edge]struct{}
	order []mesh.Edge
}

// New builds a registry from edges given in any orientation.
// Duplicates are collapsed; the first occurrence fixes the iteration order.
func New(edges []mesh.Edge) *Set {
	s := &Set{edges: make(map[mesh.Edge]struct{}, len(edges))}
	for _, e := range edges {
		s.Add(e.Lo, e.Hi)
	}
	return s
}

// Add marks the edge a-b as a seam. Pairs with a == b are ignored.
func (s *Set) Add(a, b int) {
	if a == b {
		return
	}
	e := mesh.MakeEdge(a, b)
	if _, ok := s.edges[e]; ok {
		return
	}
	s.edges[e] = struct{}{}
	s.order = append(s.order, e)
}

// Contains reports whether a-b is a seam.
func (s *Set) Contains(a, b int) bool {
	return s.Has(mesh.MakeEdge(a, b))
}

// Has reports whether the canonical edge e is a seam.
func (s *Set) Has(e mesh.Edge) bool {
	if s == nil {
		return false
	}
	_, ok := s.edges[mesh.MakeEdge(e.Lo, e.Hi)]
	return ok
}

// Len returns the number of distinct seam edges.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Edges returns the seam edges in insertion order.
func (s *Set) Edges() []mesh.Edge {
	if s == nil {
		return nil
	}
	return s.order
}
