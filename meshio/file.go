package meshio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/unwrap"
)

// Load reads a mesh, choosing the format from the file extension.
func Load(path string) (*unwrap.PolyMesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("meshio: %w", err)
		}
		defer f.Close()
		return ReadOBJ(f)
	case ".gltf", ".glb":
		return ReadGLTF(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Save writes m with the given UV layer, choosing the format from the file
// extension. A negative layer omits texture coordinates.
func Save(path string, m *unwrap.PolyMesh, layer int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("meshio: %w", err)
		}
		if err := WriteOBJ(f, m, layer); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".gltf", ".glb":
		return WriteGLTF(path, m, layer)
	}
	return fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}
