// Package lscm computes least squares conformal maps.
//
// Every triangle contributes two rows (the real and imaginary parts of the
// discrete Cauchy-Riemann equation in the triangle's own plane) to one sparse
// least squares system with two unknowns per vertex: u at column 2i and v at
// column 2i+1. Two vertices per chart are pinned to their projection on the
// chart's dominant plane, which removes the similarity ambiguity of the
// conformal energy. The pinned columns move to the right-hand side and the rest
// is solved with conjugate gradients on the normal equations (CGLS).
//
// All charts share one solve; they stay independent because no vertex index is
// shared between charts once the mesh has been split.
package lscm
