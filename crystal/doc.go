// Package crystal carries the crystal-structure data consumed by the polaron
// post-processor. The structure object of the ab-initio suite is an external
// collaborator; this package holds exactly the fields the analysis reads:
// lattice vectors, species, positions, and the derived cell volume.
//
// Errors:
//
//   - ErrBadStructure: the file variables do not describe a consistent cell.
package crystal
