package chart

import (
	"log/slog"

	"github.com/gogpu/unwrap/internal/mesh"
	"github.com/gogpu/unwrap/internal/seam"
)

// DefaultEndpointVisitLimit is how many walk visits an unlocked chain endpoint
// tolerates before the walk stops expanding triangles that touch only that
// endpoint. It keeps the walk from circling a fan vertex where three or more
// seams meet.
const DefaultEndpointVisitLimit = 3

// SplitOptions tunes Split.
type SplitOptions struct {
	// EndpointVisitLimit overrides DefaultEndpointVisitLimit when positive.
	EndpointVisitLimit int

	// Logger receives per-chain diagnostics. Nil disables them.
	Logger *slog.Logger
}

// SplitStats summarizes what Split did.
type SplitStats struct {
	Chains             int // seam chains processed
	AmbiguousChains    int // chains skipped because no unique seed triangle exists
	LockedEndpoints    int // chain endpoints kept shared to preserve connectivity
	ChainDuplicates    int // vertices appended while cutting chains
	ReconciledVertices int // vertices appended to separate charts
	UnexpectedTopology int // vertices referenced by more than two charts
}

// Split duplicates vertices so that seams inside a chart are cut open and no
// vertex index is shared between charts. chartCount must come from Segment.
func Split(m *mesh.Mesh, seams *seam.Set, chartCount int, opts SplitOptions) SplitStats {
	var stats SplitStats
	if opts.EndpointVisitLimit <= 0 {
		opts.EndpointVisitLimit = DefaultEndpointVisitLimit
	}
	if len(m.Triangles) == 0 || chartCount == 0 {
		return stats
	}
	if seams.Len() > 0 {
		s := splitter{m: m, seams: seams, adj: m.BuildAdjacency(), opts: opts, stats: &stats}
		for chartID := 0; chartID < chartCount; chartID++ {
			s.cutChart(chartID)
		}
	}
	reconcile(m, &stats, opts.Logger)
	return stats
}

type splitter struct {
	m     *mesh.Mesh
	seams *seam.Set
	adj   mesh.Adjacency
	opts  SplitOptions
	stats *SplitStats
}

// cutChart handles every seam chain lying inside chartID.
func (s *splitter) cutChart(chartID int) {
	edges := s.interiorSeams(chartID)
	if len(edges) == 0 {
		return
	}
	for _, chain := range connectChains(edges) {
		if len(chain) < 2 {
			continue
		}
		s.stats.Chains++
		s.cutChain(chartID, chain)
	}
}

// interiorSeams collects, in triangle order, the seam edges whose two bordering
// triangles both belong to chartID.
func (s *splitter) interiorSeams(chartID int) []mesh.Edge {
	var out []mesh.Edge
	seen := make(map[mesh.Edge]struct{})
	for ti := range s.m.Triangles {
		t := &s.m.Triangles[ti]
		if t.Chart != chartID {
			continue
		}
		for j := 0; j < 3; j++ {
			e := t.OrigEdge(j)
			if !s.seams.Has(e) {
				continue
			}
			if _, ok := seen[e]; ok {
				continue
			}
			other, ok := s.adj.Across(s.m, ti, e)
			if !ok || s.m.Triangles[other].Chart != chartID {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// cutChain duplicates the chain's vertices for the triangles on one side of it.
func (s *splitter) cutChain(chartID int, chain []int) {
	last := len(chain) - 1
	locked := make([]bool, len(chain))
	locked[0] = s.endpointLocked(chain[0], chartID)
	locked[last] = s.endpointLocked(chain[last], chartID)
	for _, l := range []bool{locked[0], locked[last]} {
		if l {
			s.stats.LockedEndpoints++
		}
	}

	seeds := s.adj.ForwardTriangles(s.m, chain[0], chain[1])
	if len(seeds) != 1 || s.m.Triangles[seeds[0]].Chart != chartID {
		s.stats.AmbiguousChains++
		if s.opts.Logger != nil {
			s.opts.Logger.Debug("seam chain skipped: no unique seed triangle",
				"chart", chartID, "from", chain[0], "to", chain[1], "candidates", len(seeds))
		}
		return
	}

	side := s.walkSide(chartID, chain, locked, seeds[0])

	// A vertex may occur twice in a closed chain; its first position owns the copy.
	dup := make([]int, len(chain))
	for i, v := range chain {
		dup[i] = -1
		if locked[i] {
			continue
		}
		if first := indexOf(chain, v); first != i {
			dup[i] = dup[first]
			continue
		}
		dup[i] = s.m.Duplicate(v)
		s.stats.ChainDuplicates++
	}

	for _, ti := range side {
		t := &s.m.Triangles[ti]
		for k := range t.Corners {
			idx := indexOf(chain, t.Corners[k].Orig)
			if idx < 0 || locked[idx] {
				continue
			}
			t.Corners[k].V = dup[idx]
		}
	}
}

// walkSide collects the triangles of chartID that lie on the seed's side of the
// chain: it expands across non-seam chart-internal edges and only enters
// triangles touching a chain vertex.
func (s *splitter) walkSide(chartID int, chain []int, locked []bool, seed int) []int {
	last := len(chain) - 1
	visits := make([]int, len(chain))
	visited := map[int]bool{seed: true}
	side := []int{seed}
	stack := []int{seed}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t := &s.m.Triangles[cur]

		for j := 0; j < 3; j++ {
			e := t.OrigEdge(j)
			if s.seams.Has(e) {
				continue
			}
			next, ok := s.adj.Across(s.m, cur, e)
			if !ok || visited[next] || s.m.Triangles[next].Chart != chartID {
				continue
			}

			touching := 0
			stop := false
			for _, c := range s.m.Triangles[next].Corners {
				idx := indexOf(chain, c.Orig)
				if idx < 0 {
					continue
				}
				touching++
				visits[idx]++
				if (idx == 0 || idx == last) && visits[idx] >= 2 {
					if locked[idx] || visits[idx] > s.opts.EndpointVisitLimit {
						stop = true
					}
				}
			}
			if touching == 0 {
				continue
			}
			visited[next] = true
			side = append(side, next)
			if touching == 1 && stop {
				continue
			}
			stack = append(stack, next)
		}
	}
	return side
}

// endpointLocked reports whether v is attached to chartID through at least one
// chart-internal polygon edge that is not a seam. Such a vertex must stay shared
// or the cut would disconnect the chart.
func (s *splitter) endpointLocked(v, chartID int) bool {
	faces := make(map[int]struct{})
	var order []int
	for _, ti := range s.adj.At(v) {
		t := &s.m.Triangles[ti]
		if t.Chart != chartID {
			continue
		}
		if _, ok := faces[t.Face]; !ok {
			faces[t.Face] = struct{}{}
			order = append(order, t.Face)
		}
	}

	seen := make(map[mesh.Edge]struct{})
	for _, f := range order {
		loop := s.m.Faces[f]
		n := len(loop)
		pos := indexOf(loop, v)
		if pos < 0 {
			continue
		}
		for _, w := range []int{loop[(pos+1)%n], loop[(pos-1+n)%n]} {
			e := mesh.MakeEdge(v, w)
			if e.Lo == e.Hi {
				continue
			}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			tris := s.adj.EdgeTriangles(s.m, e.Lo, e.Hi)
			if len(tris) != 2 {
				continue
			}
			if s.m.Triangles[tris[0]].Chart != chartID || s.m.Triangles[tris[1]].Chart != chartID {
				continue
			}
			if !s.seams.Has(e) {
				return true
			}
		}
	}
	return false
}

// reconcile gives each chart its own copy of any vertex index that corners of
// several charts still reference. The first chart to reach an index keeps it.
func reconcile(m *mesh.Mesh, stats *SplitStats, logger *slog.Logger) {
	// Keyed by the index a corner holds on entry; chain cuts above may already
	// have moved corners off their original vertex and must not be merged back.
	byIndex := make(map[int]map[int]int)

	for ti := range m.Triangles {
		t := &m.Triangles[ti]
		for k := range t.Corners {
			src := t.Corners[k].V
			perChart, ok := byIndex[src]
			if !ok {
				byIndex[src] = map[int]int{t.Chart: src}
				continue
			}
			if v, ok := perChart[t.Chart]; ok {
				t.Corners[k].V = v
				continue
			}
			v := m.Duplicate(src)
			perChart[t.Chart] = v
			t.Corners[k].V = v
			stats.ReconciledVertices++
			if len(perChart) == 3 {
				stats.UnexpectedTopology++
				if logger != nil {
					logger.Debug("unexpected topology: vertex shared by more than two charts",
						"vertex", t.Corners[k].Orig)
				}
			}
		}
	}
}
