// Package chart cuts a triangulated shape into charts and gives every chart its
// own vertex copies.
//
// # Segmentation
//
// Segment flood-fills triangles across shared edges, treating seam edges as walls.
// Chart ids are contiguous from zero in order of the lowest triangle index of
// each chart.
//
// # Splitting
//
// Split runs two phases:
//
//  1. Seams that lie inside a chart (both bordering triangles belong to it) are
//     merged into chains. The triangles on one side of a chain are found by a walk
//     from the triangle bordering the chain's first edge in the forward direction,
//     and their corners on the chain are moved to fresh duplicates. Chain endpoints
//     still connected to the chart through a non-seam edge keep their vertex.
//  2. Reconciliation gives every chart private copies of any vertex index still
//     referenced from more than one chart.
//
// After Split no vertex index is referenced by corners of two different charts.
package chart
