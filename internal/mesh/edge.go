package mesh

// Edge is an unordered pair of original vertex indices stored as Lo < Hi.
type Edge struct {
	Lo, Hi int
}

// MakeEdge canonicalizes the pair (a, b).
func MakeEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{Lo: a, Hi: b}
}

// Has reports whether v is one of the edge's endpoints.
func (e Edge) Has(v int) bool {
	return e.Lo == v || e.Hi == v
}

// Other returns the endpoint opposite to v.
func (e Edge) Other(v int) int {
	if e.Lo == v {
		return e.Hi
	}
	return e.Lo
}
