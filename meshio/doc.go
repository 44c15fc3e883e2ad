// Package meshio reads and writes meshes for unwrap.
//
// Two formats are supported:
//
//   - Wavefront OBJ (.obj): positions, texture coordinates and polygon faces.
//     Normals, groups and material statements are accepted and ignored.
//   - glTF 2.0 (.gltf, .glb): triangle primitives with POSITION and an
//     optional TEXCOORD_0 attribute. Node transforms are not applied.
//
// glTF stores one UV per vertex, so readers weld vertices that share a
// position and writers split them again wherever the UVs of a face corner
// differ. Use [Load] and [Save] to pick the format from the file extension.
package meshio
