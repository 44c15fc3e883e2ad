// Package unwrap computes conformal UV layouts for polygon meshes.
//
// # Overview
//
// unwrap flattens a polygon mesh into UV space with least squares conformal
// maps (LSCM). Seam edges chosen by the caller cut the surface into charts;
// each chart is flattened with as little angle distortion as possible, the
// charts are packed next to each other and the result is scaled into the unit
// square.
//
// # Quick Start
//
//	import "github.com/gogpu/unwrap"
//
//	m := unwrap.NewPolyMesh(positions, faces)
//	res, err := unwrap.Unwrap(m, m, seamEdgeIDs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Charts, "charts")
//
// # Pipeline
//
// One call runs, in order:
//   - triangulation of every face (faces with fewer than three corners are skipped)
//   - chart segmentation: flood fill over shared edges, never across a seam
//   - vertex splitting: seams inside a chart are cut open and no vertex is
//     shared by two charts afterwards
//   - the conformal solve, with two pinned vertices per chart
//   - atlas packing and normalization
//   - write-back of one UV per face corner into the target UV layer
//
// Nothing is written when Unwrap returns an error.
//
// # Host meshes
//
// The input is read through the [Mesh] interface and UVs are written through
// [UVLayers], so any mesh representation can be adapted. [PolyMesh] is a
// ready-made implementation; the meshio package reads and writes it as OBJ and
// glTF.
//
// # Seams
//
// Seams are identified by edge id, the index accepted by [Mesh.Edge]. The
// seam list of a shape can be stored with [SaveSeamData] and read back with
// [LoadSeamData]; the seamstore package keeps such lists in a database.
package unwrap
