package unwrap

import "errors"

// Input errors returned by Unwrap before anything is written.
var (
	// ErrNilMesh is returned when the mesh or the UV sink is nil.
	ErrNilMesh = errors.New("unwrap: nil mesh")

	// ErrEmptyMesh is returned for meshes without vertices, faces or edges.
	ErrEmptyMesh = errors.New("unwrap: mesh has no vertices, faces or edges")

	// ErrInvalidUVLayer is returned for a negative UV layer index.
	ErrInvalidUVLayer = errors.New("unwrap: invalid UV layer")

	// ErrNoSelection is returned by WithSelectedFacesOnly when the mesh does not
	// implement FaceSelection.
	ErrNoSelection = errors.New("unwrap: mesh does not report a face selection")

	// ErrUnexpectedTopology is returned under WithStrictTopology when a vertex is
	// shared by more than two charts.
	ErrUnexpectedTopology = errors.New("unwrap: vertex shared by more than two charts")
)

// Seam data errors.
var (
	// ErrSeamVersion is returned for seam data with an unknown version tag.
	ErrSeamVersion = errors.New("unwrap: unsupported seam data version")

	// ErrSeamData is returned for truncated or malformed seam data.
	ErrSeamData = errors.New("unwrap: malformed seam data")
)
