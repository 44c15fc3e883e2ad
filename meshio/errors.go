package meshio

import "errors"

var (
	// ErrFormat is returned for file extensions meshio does not handle.
	ErrFormat = errors.New("meshio: unsupported format")

	// ErrOBJ wraps syntax and index errors in OBJ input.
	ErrOBJ = errors.New("meshio: invalid obj")

	// ErrGLTF wraps structural errors in glTF input.
	ErrGLTF = errors.New("meshio: invalid gltf")

	// ErrLayer is returned when a UV layer index does not exist.
	ErrLayer = errors.New("meshio: uv layer out of range")
)
