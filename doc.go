// Package polaron is a post-processing toolkit for ab-initio variational
// polaron calculations — from reading the solver's netCDF output to
// convergence tables, Brillouin-zone plots and Fermi-surface exports.
//
// 🚀 What is polaron?
//
//	A pure-Go analysis library that brings together:
//		• File access: the VARPEQ.nc reader, crystal structure & band structures
//		• BZ numerics: index scatter onto regular meshes, periodic trilinear interpolation
//		• Convergence: optimization-cycle tables, Makov–Payne extrapolation
//		• Diagnostics: coefficient plots over electron/phonon bands, DOS panels
//		• Exports: XCrySDen band grids (BXSF) and companion Jupyter notebooks
//
// ✨ Why choose polaron?
//
//   - Solver-faithful – reads what the first-principles code writes, converts
//     at the boundary (Hartree → eV, Bohr → Å), nothing hidden
//   - Rock-solid guarantees – explicit sentinel errors, shape checks on every
//     variable, exact round-trips through the mesh scatter
//   - Pure Go – no cgo, no Python runtime required for the analysis itself
//
// Under the hood, everything is organized under focused subpackages:
//
//	bzmesh/  — reciprocal-space meshes, boxes, fields & interpolators
//	ncio/    — the netCDF read seam (disk-backed and in-memory)
//	crystal/ — lattice, species, fractional coordinates, cell volume
//	ebands/  — electron bands, Fermi level, gaps & gaussian DOS
//	phbands/ — phonon dispersions & DOS
//	varpeq/  — the VARPEQ.nc file model, polaron states, plots & exports
//	figure/  — multi-panel PNG figure composition
//	cmd/     — the `polaron` command-line viewer
//
// Quick example:
//
//	f, err := varpeq.Open("out_VARPEQ.nc")
//	if err != nil { ... }
//	defer f.Close()
//
//	p := f.Polaron(0)
//	cycle, _ := p.ScfCycle()
//	fmt.Print(cycle.Table())
//
// See each subpackage's doc.go for the full contract.
//
//	go get github.com/ephtools/polaron
package polaron
