package meshio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/unwrap"
)

const quadOBJ = `# two quads sharing an edge
mtllib plane.mtl
o Plane.001
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 2 0 0
v 2 1 0
vt 0 0
vt 0.5 0
vt 0.5 1
vt 0 1
vt 1 0
vt 1 1
vn 0 0 1
usemtl Default
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
f -5/-5/-1 -2/-2/-1 -1/-1/-1 -4/-4/-1
`

func TestReadOBJ(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	if m.NumVertices() != 6 {
		t.Errorf("vertices = %d, want 6", m.NumVertices())
	}
	wantFaces := [][]int{{0, 1, 2, 3}, {1, 4, 5, 2}}
	if len(m.Faces) != len(wantFaces) {
		t.Fatalf("faces = %v, want %v", m.Faces, wantFaces)
	}
	for f := range wantFaces {
		for k := range wantFaces[f] {
			if m.Faces[f][k] != wantFaces[f][k] {
				t.Errorf("face %d = %v, want %v", f, m.Faces[f], wantFaces[f])
				break
			}
		}
	}
	if m.NumEdges() != 7 {
		t.Errorf("edges = %d, want 7", m.NumEdges())
	}
	if m.NumUVLayers() != 1 {
		t.Fatalf("uv layers = %d, want 1", m.NumUVLayers())
	}
	if got, want := m.FaceUV(0, 1, 1), (unwrap.UV{U: 1, V: 0}); got != want {
		t.Errorf("face 1 corner 1 uv = %v, want %v", got, want)
	}
}

func TestReadOBJRefForms(t *testing.T) {
	tests := []struct {
		name   string
		face   string
		wantUV bool
	}{
		{"plain", "f 1 2 3", false},
		{"texcoord", "f 1/1 2/2 3/3", true},
		{"normal only", "f 1//1 2//1 3//1", false},
		{"full", "f 1/1/1 2/2/1 3/3/1", true},
		{"mixed", "f 1/1 2 3/3", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nvn 0 0 1\n" + tt.face + "\n"
			m, err := ReadOBJ(strings.NewReader(src))
			if err != nil {
				t.Fatalf("ReadOBJ: %v", err)
			}
			if len(m.Faces) != 1 || len(m.Faces[0]) != 3 {
				t.Fatalf("faces = %v", m.Faces)
			}
			if got := m.NumUVLayers() == 1; got != tt.wantUV {
				t.Errorf("has uv = %v, want %v", got, tt.wantUV)
			}
		})
	}
}

func TestReadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"zero index", "v 0 0 0\nf 0 1 1\n"},
		{"index past end", "v 0 0 0\nv 1 0 0\nf 1 2 3\n"},
		{"relative past start", "v 0 0 0\nf -2 1 1\n"},
		{"short vertex", "v 0 0\nf 1 1 1\n"},
		{"texcoord past end", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/1 2/2 3/3\n"},
		{"face without indices", "v 0 0 0\nf a b c\n"},
		{"unknown statement", "v 0 0 0\nbogus 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.src))
			if !errors.Is(err, ErrOBJ) {
				t.Errorf("err = %v, want ErrOBJ", err)
			}
		})
	}
}

func TestWriteOBJRoundTrip(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, 0); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	if n := strings.Count(buf.String(), "\nvt "); n != 6 {
		t.Errorf("wrote %d texcoords, want 6 unique", n)
	}
	back, err := ReadOBJ(&buf)
	if err != nil {
		t.Fatalf("ReadOBJ(written): %v\n%s", err, buf.String())
	}
	equalMeshes(t, back, m, 0)
}

func TestWriteOBJGeometryOnly(t *testing.T) {
	m := unwrap.NewPolyMesh([]r3.Vec{{}, {X: 1}, {Y: 1}}, [][]int{{0, 1, 2}})
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, -1); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	want := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
	if err := WriteOBJ(&buf, m, 0); !errors.Is(err, ErrLayer) {
		t.Errorf("missing layer: err = %v, want ErrLayer", err)
	}
}

func TestGLBRoundTrip(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	path := filepath.Join(t.TempDir(), "plane.glb")
	if err := Save(path, m, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Quads come back as two triangles each, welded to the original six points.
	if back.NumVertices() != 6 {
		t.Errorf("vertices = %d, want 6", back.NumVertices())
	}
	if len(back.Faces) != 4 {
		t.Fatalf("faces = %d, want 4", len(back.Faces))
	}
	if back.NumUVLayers() != 1 {
		t.Fatalf("uv layers = %d, want 1", back.NumUVLayers())
	}
	for f, face := range back.Faces {
		for k, v := range face {
			p := back.Positions[v]
			uv := back.FaceUV(0, f, k)
			// Every corner of the test mesh has UV (x/2, y).
			if want := (unwrap.UV{U: p.X / 2, V: p.Y}); !approxUV(uv, want) {
				t.Errorf("face %d corner %d at %v: uv = %v, want %v", f, k, p, uv, want)
			}
		}
	}
}

func TestGLBSplitsUVSeams(t *testing.T) {
	m := unwrap.NewPolyMesh([]r3.Vec{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}, [][]int{{0, 1, 2}, {1, 3, 2}})
	m.AppendUVLayer()
	m.UVs[0][0] = []unwrap.UV{{U: 0, V: 0}, {U: 1, V: 0}, {U: 0, V: 1}}
	m.UVs[0][1] = []unwrap.UV{{U: 2, V: 0}, {U: 3, V: 1}, {U: 2, V: 1}}

	doc, err := toDocument(m, 0)
	if err != nil {
		t.Fatalf("toDocument: %v", err)
	}
	pos := doc.Accessors[doc.Meshes[0].Primitives[0].Attributes["POSITION"]]
	if pos.Count != 6 {
		t.Errorf("gltf vertices = %d, want 6 after splitting the shared edge", pos.Count)
	}

	back, err := fromDocument(doc)
	if err != nil {
		t.Fatalf("fromDocument: %v", err)
	}
	if back.NumVertices() != 4 {
		t.Errorf("welded vertices = %d, want 4", back.NumVertices())
	}
	equalMeshes(t, back, m, 0)
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := Load("mesh.stl"); !errors.Is(err, ErrFormat) {
		t.Errorf("Load: err = %v, want ErrFormat", err)
	}
	m := unwrap.NewPolyMesh(nil, nil)
	if err := Save(filepath.Join(t.TempDir(), "mesh.ply"), m, -1); !errors.Is(err, ErrFormat) {
		t.Errorf("Save: err = %v, want ErrFormat", err)
	}
}

func TestUnwrapOBJ(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	res, err := unwrap.Unwrap(m, m, nil, unwrap.WithUVLayer(1))
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if m.NumUVLayers() != 2 {
		t.Errorf("uv layers = %d, want the read layer plus the unwrapped one", m.NumUVLayers())
	}
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, res.UVLayer); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	if !strings.Contains(buf.String(), "f 1/1 ") {
		t.Errorf("faces do not reference texcoords:\n%s", buf.String())
	}
}

func equalMeshes(t *testing.T, got, want *unwrap.PolyMesh, layer int) {
	t.Helper()
	if len(got.Faces) != len(want.Faces) {
		t.Fatalf("faces = %d, want %d", len(got.Faces), len(want.Faces))
	}
	for f := range want.Faces {
		if len(got.Faces[f]) != len(want.Faces[f]) {
			t.Fatalf("face %d = %v, want %v", f, got.Faces[f], want.Faces[f])
		}
		for k := range want.Faces[f] {
			gp := got.Positions[got.Faces[f][k]]
			wp := want.Positions[want.Faces[f][k]]
			if r3.Norm(r3.Sub(gp, wp)) > 1e-6 {
				t.Errorf("face %d corner %d position %v, want %v", f, k, gp, wp)
			}
			if g, w := got.FaceUV(layer, f, k), want.FaceUV(layer, f, k); !approxUV(g, w) {
				t.Errorf("face %d corner %d uv %v, want %v", f, k, g, w)
			}
		}
	}
}

func approxUV(a, b unwrap.UV) bool {
	const eps = 1e-6
	du, dv := a.U-b.U, a.V-b.V
	return du < eps && du > -eps && dv < eps && dv > -eps
}
