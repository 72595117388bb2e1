// Package varpeq post-processes VARPEQ polaron calculations: the output
// files of the variational polaron equations (ABINIT eph_task 13).
//
// What:
//
//   - Reader decodes the VARPEQ.nc variables (ncio seam) and converts all
//     energies Hartree -> eV at the boundary.
//   - File owns the structure, the electron bands, and one Polaron per spin;
//     String renders the marquee-sectioned report.
//   - Polaron scatters the A_nk and B_qnu coefficient arrays onto the
//     regular k/q meshes (bzmesh.Box) and builds |A|^2 / |B|^2
//     interpolators for fatbands-style plots.
//   - ScfCycle is the convergence-iteration table with the five energy
//     entries plus the gradient residual.
//   - MakovPayne fits E(x) = a + b*x over growing point prefixes and
//     reports the infinite-size intercepts; Robot aggregates several files,
//     sorts them by k-mesh density, and tabulates the extrapolations.
//   - Plot* compose diagnostic figures; WriteA2BXSF / WriteB2BXSF export
//     XCrySDen grids; WriteNotebook emits an analysis notebook.
//   - FrohlichKappa evaluates the Frohlich dielectric coupling constant.
//
// Why:
//
//   - Polaron formation energies converge slowly with the k-mesh; the
//     extrapolation machinery and the mesh diagnostics are how researchers
//     decide whether a calculation is converged.
//
// Errors:
//
//   - ErrBadSampling: the k-mesh is not diagonal, carries multiple shifts,
//     or is not Gamma-centered where the operation requires it.
//   - ErrTooFewPoints: an extrapolation needs at least two abscissae.
//   - ErrDupLabel: a robot label was added twice.
//   - ErrMixedKinds: robot files disagree on the polaron kind.
//   - ErrBadDielectric: dielectric tensors unusable for FrohlichKappa.
//   - ErrBadFile: VARPEQ variables with inconsistent shapes.
package varpeq
