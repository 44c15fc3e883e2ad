package unwrap

import (
	"github.com/gogpu/unwrap/internal/chart"
	"github.com/gogpu/unwrap/internal/lscm"
)

// Solver and split defaults used when no option overrides them.
const (
	DefaultTolerance          = lscm.DefaultTolerance
	DefaultIterationFactor    = lscm.DefaultIterationFactor
	DefaultEndpointVisitLimit = chart.DefaultEndpointVisitLimit
)

// Option configures a call to Unwrap.
//
// Example:
//
//	res, err := unwrap.Unwrap(m, m, seams,
//	    unwrap.WithUVLayer(1),
//	    unwrap.WithSelectedFacesOnly(),
//	)
type Option func(*options)

type options struct {
	uvLayer            int
	selectedOnly       bool
	tolerance          float64
	iterationFactor    int
	endpointVisitLimit int
	pack               bool
	strictTopology     bool
}

func defaultOptions() options {
	return options{
		tolerance:          DefaultTolerance,
		iterationFactor:    DefaultIterationFactor,
		endpointVisitLimit: DefaultEndpointVisitLimit,
		pack:               true,
	}
}

// WithUVLayer selects the UV layer to write. Missing layers are appended until
// the index exists. The default is layer 0.
func WithUVLayer(layer int) Option {
	return func(o *options) {
		o.uvLayer = layer
	}
}

// WithSelectedFacesOnly restricts the unwrap to the faces the mesh reports as
// active through [FaceSelection]. UVs of other faces are left untouched.
func WithSelectedFacesOnly() Option {
	return func(o *options) {
		o.selectedOnly = true
	}
}

// WithTolerance sets the relative residual at which the conformal solve stops.
// Non-positive values keep the default of 1e-6.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithIterationFactor caps the solver at factor times the number of vertices.
// Non-positive values keep the default of 5.
func WithIterationFactor(factor int) Option {
	return func(o *options) {
		if factor > 0 {
			o.iterationFactor = factor
		}
	}
}

// WithEndpointVisitLimit tunes how far the seam cutting walk may circle an
// unlocked chain endpoint. Non-positive values keep the default.
func WithEndpointVisitLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.endpointVisitLimit = n
		}
	}
}

// WithoutPacking leaves every chart where the solver put it. The layout is
// still normalized, so charts may overlap.
func WithoutPacking() Option {
	return func(o *options) {
		o.pack = false
	}
}

// WithStrictTopology makes Unwrap fail with ErrUnexpectedTopology when a vertex
// ends up shared by more than two charts.
func WithStrictTopology() Option {
	return func(o *options) {
		o.strictTopology = true
	}
}
