// Package ebands carries the electron band-structure data the polaron plots
// consume and the gaussian-smearing helpers shared with the phonon side.
//
// What:
//
//   - Bands holds eigenvalues (eV) on a (nsppol, nkpt, nband) grid, the
//     k-points, the Fermi energy, and optional k-path tick marks.
//   - Gaussian evaluates a normalized gaussian on an energy mesh.
//   - Dos and NewDosFromBands build gaussian-smeared densities of states
//     with optional per-state weights.
//
// The band-structure object of the ab-initio suite is an external
// collaborator; its own interpolation and plotting stay outside this module.
// Bands here is plain data read from files or built by tests.
//
// Errors:
//
//   - ErrBadBands: shapes or parameters that cannot describe a band structure.
package ebands
