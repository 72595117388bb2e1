// Package bzmesh maps scattered reciprocal-space point lists onto regular
// Brillouin-zone meshes and interpolates mesh fields at arbitrary points.
//
// What:
//
//   - Indices folds fractional k/q points into [0,1) and maps them onto a
//     regular (n1,n2,n3) mesh, rejecting points that do not sit on a node.
//   - Box stores a complex field with ncomp components on the mesh; Insert
//     scatters per-point component vectors into it, Abs2 squares it.
//   - Field is the real counterpart of Box (|z|^2 data or any scalar grid).
//   - Interpolator evaluates a Field at arbitrary fractional coordinates via
//     periodic trilinear interpolation over the unit cube.
//
// Why:
//
//   - Ab-initio codes emit k/q point lists that are filtered subsets of a
//     regular mesh; grid analysis and export formats need the full box.
//   - Fatbands-style plots need field values along arbitrary reciprocal-space
//     paths, not only at mesh nodes.
//
// Complexity:
//
//   - Indices:    O(P) time, O(P) memory            (P = number of points).
//   - Insert:     O(P*ncomp) time, O(1) extra memory.
//   - Eval:       O(ncomp) time per point (8 corners), O(1) memory.
//   - MeshPoints: O(n1*n2*n3) time and memory.
//
// Options:
//
//   - WithMeshTol: node-distance tolerance for Indices, in grid-step units.
//   - WithShift: Monkhorst-Pack style mesh shift in units of the grid step.
//
// Errors:
//
//   - ErrBadDivs: a mesh division is <= 0.
//   - ErrBadComp: a component count is <= 0.
//   - ErrOffMesh: a point is farther than the tolerance from any mesh node.
//   - ErrShapeMismatch: point, row, or component counts disagree.
package bzmesh
