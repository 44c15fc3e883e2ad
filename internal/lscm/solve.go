package lscm

import (
	"log/slog"

	"github.com/gogpu/unwrap/internal/geom"
	"github.com/gogpu/unwrap/internal/mesh"
)

const (
	// DefaultTolerance is the relative residual at which the solve stops.
	DefaultTolerance = 1e-6

	// DefaultIterationFactor bounds the iteration count to this many times the
	// number of vertices.
	DefaultIterationFactor = 5
)

// Options configures Solve. Zero values select the defaults.
type Options struct {
	Tolerance       float64
	IterationFactor int
	Logger          *slog.Logger
}

// Result summarizes one solve.
type Result struct {
	Rows          int
	Unknowns      int
	Degenerate    int // triangles that contributed no rows
	Iterations    int
	MaxIterations int
	Residual      float64
	Converged     bool
	NonFinite     int // vertices whose UV was replaced by (0, 0)
}

// Solve computes UVs for every vertex of m. Locked vertices keep their UV and the
// UV of every other vertex is used as the starting guess, so Pin must run first.
// Vertices not referenced by any triangle keep their current UV.
func Solve(m *mesh.Mesh, opts Options) Result {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.IterationFactor <= 0 {
		opts.IterationFactor = DefaultIterationFactor
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sys, degenerate := Build(m)
	res := Result{Rows: sys.Rows(), Degenerate: degenerate}

	// Column index of each free unknown, -1 for locked ones.
	free := make([]int, sys.Cols)
	x0 := make([]float64, sys.Cols)
	n := 0
	for i := range m.Vertices {
		v := &m.Vertices[i]
		if v.Locked && !v.UV.IsFinite() {
			v.UV = geom.Vec2{}
			res.NonFinite++
		}
		x0[2*i], x0[2*i+1] = v.UV.X, v.UV.Y
		if v.Locked {
			free[2*i], free[2*i+1] = -1, -1
			continue
		}
		free[2*i], free[2*i+1] = n, n+1
		n += 2
	}
	res.Unknowns = n

	x := make([]float64, n)
	for col, c := range free {
		if c >= 0 {
			x[c] = x0[col]
		}
	}

	res.MaxIterations = opts.IterationFactor * len(m.Vertices)
	if n > 0 && res.Rows > 0 {
		a, b := reduce(sys, free, n, x0)
		cr := cgls(a, b, x, opts.Tolerance, res.MaxIterations)
		res.Iterations = cr.iterations
		res.Residual = cr.residual
		res.Converged = cr.converged
		if !cr.converged {
			logger.Warn("lscm: solve did not converge",
				"iterations", cr.iterations, "residual", cr.residual, "unknowns", n)
		}
	} else {
		res.Converged = true
	}

	for i := range m.Vertices {
		if m.Vertices[i].Locked {
			continue
		}
		uv := geom.V2(x[free[2*i]], x[free[2*i+1]])
		if !uv.IsFinite() {
			uv = geom.Vec2{}
			res.NonFinite++
		}
		m.Vertices[i].UV = uv
	}

	logger.Debug("lscm: solved",
		"rows", res.Rows, "unknowns", res.Unknowns, "iterations", res.Iterations,
		"residual", res.Residual, "degenerate", res.Degenerate)
	return res
}
