package lscm

import (
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
)

// reduce compresses the rows of sys onto the free unknowns. free maps each
// column of sys to its reduced column, or -1 when the unknown is locked; the
// contribution of locked unknowns, taken from x0, moves to the right-hand side.
func reduce(sys *System, free []int, n int, x0 []float64) (*sparse.CSR, []float64) {
	rows := sys.Rows()
	ptr := make([]int, 1, rows+1)
	var idx []int
	var val []float64
	b := make([]float64, rows)
	for r, row := range sys.rows {
		for _, e := range row {
			if c := free[e.col]; c >= 0 {
				idx = append(idx, c)
				val = append(val, e.val)
			} else {
				b[r] -= e.val * x0[e.col]
			}
		}
		ptr = append(ptr, len(idx))
	}
	return sparse.NewCSR(rows, n, ptr, idx, val), b
}

// mulVec computes dst = A x, or dst = Aᵀ x when trans is set.
func mulVec(a *sparse.CSR, dst []float64, trans bool, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	a.MulVecTo(dst, trans, x)
}

// cglsResult reports how the iteration ended.
type cglsResult struct {
	iterations int
	residual   float64 // ‖Aᵀ(b - A x)‖ relative to its starting value
	converged  bool
}

// cgls minimizes ‖A x - b‖ starting from x, which is updated in place.
// It stops once the normal equation residual dropped below tol relative to the
// starting one, or after maxIter iterations.
func cgls(a *sparse.CSR, b, x []float64, tol float64, maxIter int) cglsResult {
	rows, cols := a.Dims()
	r := make([]float64, rows)
	q := make([]float64, rows)
	s := make([]float64, cols)

	mulVec(a, r, false, x)
	floats.SubTo(r, b, r)
	mulVec(a, s, true, r)

	p := make([]float64, cols)
	copy(p, s)

	gamma := floats.Dot(s, s)
	norm0 := math.Sqrt(gamma)
	if norm0 == 0 {
		return cglsResult{converged: true}
	}

	res := cglsResult{residual: 1}
	for res.iterations < maxIter {
		mulVec(a, q, false, p)
		qq := floats.Dot(q, q)
		if qq == 0 {
			break
		}
		alpha := gamma / qq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		mulVec(a, s, true, r)
		res.iterations++

		next := floats.Dot(s, s)
		res.residual = math.Sqrt(next) / norm0
		if res.residual <= tol {
			res.converged = true
			break
		}
		floats.Scale(next/gamma, p)
		floats.Add(p, s)
		gamma = next
	}
	return res
}
