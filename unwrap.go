package unwrap

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/unwrap/internal/atlas"
	"github.com/gogpu/unwrap/internal/chart"
	"github.com/gogpu/unwrap/internal/lscm"
	"github.com/gogpu/unwrap/internal/mesh"
	"github.com/gogpu/unwrap/internal/seam"
	"github.com/gogpu/unwrap/internal/triangulate"
)

// SplitStats reports what the seam cutting and chart separation did.
type SplitStats = chart.SplitStats

// Result describes one unwrap.
type Result struct {
	UVLayer   int // layer that received the UVs
	Triangles int
	Charts    int

	SkippedFaces int // faces that produced no triangle
	SkippedSeams int // seam ids outside the mesh's edge range
	Split        SplitStats

	Iterations          int
	Residual            float64 // relative normal equation residual at exit
	Converged           bool
	NonFinite           int // vertices whose UV was replaced by (0, 0)
	DegenerateTriangles int // triangles without area, left out of the solve

	PackedCharts int
}

// Unwrap computes a conformal UV layout for m, cut along the given seam edge ids,
// and writes one UV per face corner into uv.
//
// On error nothing is written.
func Unwrap(m Mesh, uv UVLayers, seams []int, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := Logger()

	if m == nil || uv == nil {
		return nil, ErrNilMesh
	}
	if m.NumVertices() == 0 || m.NumFaces() == 0 || m.NumEdges() == 0 {
		return nil, ErrEmptyMesh
	}
	if o.uvLayer < 0 {
		return nil, fmt.Errorf("unwrap: layer %d: %w", o.uvLayer, ErrInvalidUVLayer)
	}
	var sel FaceSelection
	if o.selectedOnly {
		s, ok := m.(FaceSelection)
		if !ok {
			return nil, ErrNoSelection
		}
		sel = s
	}

	res := &Result{UVLayer: o.uvLayer}
	em, skipped := ingest(m, sel, logger)
	res.SkippedFaces = skipped
	res.Triangles = len(em.Triangles)
	if res.Triangles == 0 {
		logger.Info("unwrap: no face to unwrap", "faces", m.NumFaces(), "skipped", skipped)
		return res, nil
	}

	set := seam.New(nil)
	for _, id := range seams {
		if id < 0 || id >= m.NumEdges() {
			res.SkippedSeams++
			logger.Warn("unwrap: seam edge out of range", "edge", id, "edges", m.NumEdges())
			continue
		}
		set.Add(m.Edge(id))
	}

	res.Charts = chart.Segment(em, set)
	res.Split = chart.Split(em, set, res.Charts, chart.SplitOptions{
		EndpointVisitLimit: o.endpointVisitLimit,
		Logger:             logger,
	})
	logger.Debug("unwrap: charts split",
		"charts", res.Charts, "seams", set.Len(), "chains", res.Split.Chains,
		"duplicates", res.Split.ChainDuplicates, "reconciled", res.Split.ReconciledVertices)
	if res.Split.AmbiguousChains > 0 {
		logger.Warn("unwrap: seam chains without a unique seed triangle were not cut",
			"chains", res.Split.AmbiguousChains)
	}
	if o.strictTopology && res.Split.UnexpectedTopology > 0 {
		return nil, fmt.Errorf("unwrap: %d vertices: %w", res.Split.UnexpectedTopology, ErrUnexpectedTopology)
	}

	lscm.Pin(em, em.ChartVertices(res.Charts))
	sr := lscm.Solve(em, lscm.Options{
		Tolerance:       o.tolerance,
		IterationFactor: o.iterationFactor,
		Logger:          logger,
	})
	res.Iterations = sr.Iterations
	res.Residual = sr.Residual
	res.Converged = sr.Converged
	res.NonFinite = sr.NonFinite
	res.DegenerateTriangles = sr.Degenerate
	if sr.NonFinite > 0 {
		logger.Warn("unwrap: non-finite UVs replaced by the origin", "vertices", sr.NonFinite)
	}

	if o.pack {
		st := atlas.Pack(em, res.Charts)
		res.PackedCharts = st.Placed
	}
	atlas.Normalize(em)

	writeBack(em, uv, o.uvLayer)
	return res, nil
}

// ingest triangulates every eligible face of m into a fresh engine mesh.
// It returns the mesh and the number of skipped faces.
func ingest(m Mesh, sel FaceSelection, logger *slog.Logger) (*mesh.Mesh, int) {
	nv := m.NumVertices()
	positions := make([]r3.Vec, nv)
	for i := range positions {
		positions[i] = m.Vertex(i)
	}

	em := mesh.New(positions, m.NumFaces())
	skipped := 0
	pts := make([]r3.Vec, 0, 8)
	for fi := 0; fi < m.NumFaces(); fi++ {
		if sel != nil && !sel.FaceActive(fi) {
			continue
		}
		face := m.Face(fi)
		pts = pts[:0]
		valid := true
		for _, v := range face {
			if v < 0 || v >= nv {
				valid = false
				break
			}
			pts = append(pts, positions[v])
		}
		if !valid {
			skipped++
			logger.Warn("unwrap: face references a missing vertex", "face", fi)
			continue
		}
		if em.AddFace(fi, face, triangulate.Polygon(pts)) == 0 {
			skipped++
			logger.Debug("unwrap: degenerate face skipped", "face", fi, "corners", len(face))
		}
	}
	return em, skipped
}

// writeBack copies the UV of every triangulated face corner into the target layer,
// appending layers until it exists.
func writeBack(em *mesh.Mesh, uv UVLayers, layer int) {
	for uv.NumUVLayers() <= layer {
		uv.AppendUVLayer()
	}
	type key struct{ face, slot int }
	done := make(map[key]struct{}, 3*len(em.Triangles))
	for i := range em.Triangles {
		t := &em.Triangles[i]
		for _, c := range t.Corners {
			k := key{t.Face, c.FaceSlot}
			if _, ok := done[k]; ok {
				continue
			}
			done[k] = struct{}{}
			p := em.Vertices[c.V].UV
			uv.SetFaceUV(layer, t.Face, c.FaceSlot, UV{U: p.X, V: p.Y})
		}
	}
}
