package meshio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/unwrap"
	"github.com/gogpu/unwrap/internal/triangulate"
)

// ReadGLTF loads the triangle primitives of every mesh in a .gltf or .glb
// file into one PolyMesh. Vertices with bit-identical positions are welded so
// that UV splits in the file do not become holes in the topology.
func ReadGLTF(path string) (*unwrap.PolyMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open %s: %w", path, err)
	}
	return fromDocument(doc)
}

func fromDocument(doc *gltf.Document) (*unwrap.PolyMesh, error) {
	var (
		positions []r3.Vec
		faces     [][]int
		faceUVs   [][]unwrap.UV
		allUV     = true
	)
	weld := make(map[[3]float32]int)

	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				unwrap.Logger().Debug("meshio: gltf primitive skipped", "mesh", mi, "primitive", pi, "mode", prim.Mode)
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok || int(posIdx) >= len(doc.Accessors) {
				return nil, fmt.Errorf("%w: mesh %d primitive %d has no POSITION", ErrGLTF, mi, pi)
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("%w: mesh %d primitive %d: %w", ErrGLTF, mi, pi, err)
			}

			var uvs [][2]float32
			if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok && int(uvIdx) < len(doc.Accessors) {
				uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("%w: mesh %d primitive %d: %w", ErrGLTF, mi, pi, err)
				}
			}
			if len(uvs) != len(pos) {
				allUV = false
			}

			var indices []uint32
			if prim.Indices != nil {
				if int(*prim.Indices) >= len(doc.Accessors) {
					return nil, fmt.Errorf("%w: mesh %d primitive %d: indices accessor out of range", ErrGLTF, mi, pi)
				}
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("%w: mesh %d primitive %d: %w", ErrGLTF, mi, pi, err)
				}
			} else {
				indices = make([]uint32, len(pos))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}

			welded := make([]int, len(pos))
			for i, p := range pos {
				v, ok := weld[p]
				if !ok {
					v = len(positions)
					weld[p] = v
					positions = append(positions, r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])})
				}
				welded[i] = v
			}

			for i := 0; i+2 < len(indices); i += 3 {
				tri := indices[i : i+3]
				face := make([]int, 3)
				faceUV := make([]unwrap.UV, 3)
				for k, idx := range tri {
					if int(idx) >= len(pos) {
						return nil, fmt.Errorf("%w: mesh %d primitive %d: index %d out of range", ErrGLTF, mi, pi, idx)
					}
					face[k] = welded[idx]
					if len(uvs) == len(pos) {
						faceUV[k] = unwrap.UV{U: float64(uvs[idx][0]), V: float64(uvs[idx][1])}
					}
				}
				faces = append(faces, face)
				faceUVs = append(faceUVs, faceUV)
			}
		}
	}

	m := unwrap.NewPolyMesh(positions, faces)
	if allUV && len(faces) > 0 {
		m.UVs = [][][]unwrap.UV{faceUVs}
	}
	return m, nil
}

// WriteGLTF saves m as a single-mesh glTF scene. A .glb path produces the
// binary container; anything else is written as JSON with an embedded buffer.
// Polygons are triangulated. When layer is a valid UV layer the primitive
// gets a TEXCOORD_0 attribute and vertices are split where corner UVs differ.
func WriteGLTF(path string, m *unwrap.PolyMesh, layer int) error {
	doc, err := toDocument(m, layer)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("meshio: save %s: %w", path, err)
	}
	return nil
}

type gltfVertex struct {
	v  int
	uv unwrap.UV
}

func toDocument(m *unwrap.PolyMesh, layer int) (*gltf.Document, error) {
	if layer >= m.NumUVLayers() {
		return nil, fmt.Errorf("%w: %d of %d", ErrLayer, layer, m.NumUVLayers())
	}

	var (
		positions [][3]float32
		texcoords [][2]float32
		indices   []uint32
	)
	index := make(map[gltfVertex]uint32)
	corner := func(f, k int) uint32 {
		key := gltfVertex{v: m.Faces[f][k]}
		if layer >= 0 {
			key.uv = m.FaceUV(layer, f, k)
		}
		if id, ok := index[key]; ok {
			return id
		}
		id := uint32(len(positions))
		index[key] = id
		p := m.Positions[key.v]
		positions = append(positions, [3]float32{float32(p.X), float32(p.Y), float32(p.Z)})
		if layer >= 0 {
			texcoords = append(texcoords, [2]float32{float32(key.uv.U), float32(key.uv.V)})
		}
		return id
	}

	for f, face := range m.Faces {
		if len(face) < 3 {
			continue
		}
		pts := make([]r3.Vec, len(face))
		for k, v := range face {
			pts[k] = m.Positions[v]
		}
		for _, tri := range triangulate.Polygon(pts) {
			for _, k := range tri {
				indices = append(indices, corner(f, k))
			}
		}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "unwrap"
	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(modeler.WritePosition(doc, positions)),
		},
		Indices: gltf.Index(uint32(modeler.WriteIndices(doc, indices))),
	}
	if layer >= 0 {
		prim.Attributes[gltf.TEXCOORD_0] = uint32(modeler.WriteTextureCoord(doc, texcoords))
	}
	doc.Meshes = []*gltf.Mesh{{Name: "unwrap", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))
	return doc, nil
}
