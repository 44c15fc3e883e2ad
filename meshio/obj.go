package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/unwrap"
)

var objLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Element", Pattern: `(?:vt|v|f)\b`},
	{Name: "Keyword", Pattern: `(?:vn|vp|l|p|o|g|s|usemtl|mtllib)\b`},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Ident", Pattern: `[^\s/#]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Every statement starts with an element or keyword token, so line breaks carry no meaning and
// are elided with the rest of the whitespace.
type objFile struct {
	Statements []*objStatement `@@*`
}

type objStatement struct {
	Position *objValues `  "v" @@`
	TexCoord *objValues `| "vt" @@`
	Face     []*objRef  `| "f" @@+`
	Other    *objOther  `| @@`
}

type objValues struct {
	Values []float64 `@Number+`
}

type objRef struct {
	V    int         `@Number`
	Tail *objRefTail `( "/" @@ )?`
}

type objRefTail struct {
	VT *int `@Number?`
	VN *int `( "/" @Number )?`
}

type objOther struct {
	Keyword string   `@Keyword`
	Args    []string `( @Number | @Ident | @Slash )*`
}

var objParser = participle.MustBuild[objFile](
	participle.Lexer(objLexer),
	participle.Elide("Whitespace", "Comment"),
)

// ReadOBJ parses a Wavefront OBJ stream. When every face corner carries a
// texture coordinate the result has one UV layer holding them.
func ReadOBJ(r io.Reader) (*unwrap.PolyMesh, error) {
	file, err := objParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOBJ, err)
	}

	var (
		positions []r3.Vec
		texcoords []unwrap.UV
		faces     [][]int
		faceUVs   [][]unwrap.UV
		allUV     = true
	)
	for _, st := range file.Statements {
		switch {
		case st.Position != nil:
			v := st.Position.Values
			if len(v) < 3 {
				return nil, fmt.Errorf("%w: vertex %d has %d coordinates", ErrOBJ, len(positions)+1, len(v))
			}
			positions = append(positions, r3.Vec{X: v[0], Y: v[1], Z: v[2]})
		case st.TexCoord != nil:
			v := st.TexCoord.Values
			uv := unwrap.UV{U: v[0]}
			if len(v) > 1 {
				uv.V = v[1]
			}
			texcoords = append(texcoords, uv)
		case st.Face != nil:
			face := make([]int, len(st.Face))
			uvs := make([]unwrap.UV, len(st.Face))
			for k, ref := range st.Face {
				vi, err := resolveIndex(ref.V, len(positions))
				if err != nil {
					return nil, fmt.Errorf("%w: face %d: vertex %w", ErrOBJ, len(faces)+1, err)
				}
				face[k] = vi
				if ref.Tail == nil || ref.Tail.VT == nil {
					allUV = false
					continue
				}
				ti, err := resolveIndex(*ref.Tail.VT, len(texcoords))
				if err != nil {
					return nil, fmt.Errorf("%w: face %d: texcoord %w", ErrOBJ, len(faces)+1, err)
				}
				uvs[k] = texcoords[ti]
			}
			faces = append(faces, face)
			faceUVs = append(faceUVs, uvs)
		default:
			unwrap.Logger().Debug("meshio: obj statement ignored", "keyword", st.Other.Keyword)
		}
	}

	m := unwrap.NewPolyMesh(positions, faces)
	if allUV && len(faces) > 0 {
		m.UVs = [][][]unwrap.UV{faceUVs}
	}
	return m, nil
}

// resolveIndex converts a one-based or negative relative OBJ index.
func resolveIndex(i, count int) (int, error) {
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return 0, fmt.Errorf("index %d out of range [1,%d]", i, count)
}

// WriteOBJ writes m as OBJ. When layer is a valid UV layer each face corner
// references a texture coordinate; identical coordinates are written once.
// A negative layer writes geometry only.
func WriteOBJ(w io.Writer, m *unwrap.PolyMesh, layer int) error {
	if layer >= m.NumUVLayers() {
		return fmt.Errorf("%w: %d of %d", ErrLayer, layer, m.NumUVLayers())
	}
	bw := bufio.NewWriter(w)
	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	}

	var refs [][]int
	if layer >= 0 {
		index := make(map[unwrap.UV]int)
		refs = make([][]int, len(m.Faces))
		for f, face := range m.Faces {
			refs[f] = make([]int, len(face))
			for k := range face {
				uv := m.FaceUV(layer, f, k)
				id, ok := index[uv]
				if !ok {
					id = len(index) + 1
					index[uv] = id
					fmt.Fprintf(bw, "vt %s %s\n", formatFloat(uv.U), formatFloat(uv.V))
				}
				refs[f][k] = id
			}
		}
	}

	for f, face := range m.Faces {
		bw.WriteString("f")
		for k, v := range face {
			if refs != nil {
				fmt.Fprintf(bw, " %d/%d", v+1, refs[f][k])
			} else {
				fmt.Fprintf(bw, " %d", v+1)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
