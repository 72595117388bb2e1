package varpeq_test

import (
	"github.com/ephtools/polaron/ncio"
)

// Shared synthetic VARPEQ fixture: a cubic two-atom LiF-like cell with an
// n x n x n k-mesh and the full variable set the reader consumes. Energies
// are stored in Hartree, the unit the solver writes.

// latticeAng is the cubic lattice constant of the fixture in Angstrom.
const latticeAng = 4.0

// fixtureIterHa is the default three-step iteration record in Hartree:
// E_pol, E_el, E_ph, elph, epsilon, grs.
var fixtureIterHa = [][]float64{
	{-0.50, -0.30, -0.10, -0.10, -0.55, 1e-3},
	{-0.60, -0.35, -0.12, -0.13, -0.66, 1e-5},
	{-0.65, -0.38, -0.13, -0.14, -0.72, 1e-8},
}

// meshPointList returns the fractional points of an n^3 mesh with the given
// shift, k fastest, as a (1, n^3, 3) nested slice.
func meshPointList(n int, shift [3]float64) [][][]float64 {
	pts := make([][]float64, 0, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				pts = append(pts, []float64{
					(float64(i) + shift[0]) / float64(n),
					(float64(j) + shift[1]) / float64(n),
					(float64(k) + shift[2]) / float64(n),
				})
			}
		}
	}

	return [][][]float64{pts}
}

// fixtureA returns the A_nk fixture value for k-point ik and band ib.
func fixtureA(ik, ib int) complex128 {
	return complex(float64(ik+1), float64(ib))
}

// fixtureB returns the B_qnu fixture value for q-point iq and mode nu.
func fixtureB(iq, nu int) complex128 {
	return complex(float64(iq)/10, float64(nu)/10)
}

// varpeqVars builds the full variable map of a synthetic VARPEQ.nc file:
// n^3 k- and q-meshes, two bands (Fortran brange [1,2]), two atoms
// (natom3 = 6), and the given iteration record in Hartree.
func varpeqVars(n int, shift [3]float64, pkind string, iterHa [][]float64) map[string]any {
	nk := n * n * n
	const nb, natom3 = 2, 6

	aData := make([][][]float64, nk)
	for ik := range aData {
		aData[ik] = make([][]float64, nb)
		for ib := range aData[ik] {
			z := fixtureA(ik, ib)
			aData[ik][ib] = []float64{real(z), imag(z)}
		}
	}

	bData := make([][][]float64, nk)
	for iq := range bData {
		bData[iq] = make([][]float64, natom3)
		for nu := range bData[iq] {
			z := fixtureB(iq, nu)
			bData[iq][nu] = []float64{real(z), imag(z)}
		}
	}

	// One unused trailing row exercises the nstep2cv trim.
	iterRec := make([][]float64, 0, len(iterHa)+1)
	iterRec = append(iterRec, iterHa...)
	iterRec = append(iterRec, []float64{9, 9, 9, 9, 9, 9})

	// Insulator bands: two bands below the Fermi level, two above, with a
	// small k dispersion.
	eig := make([][]float64, nk)
	for ik := range eig {
		disp := 0.001 * float64(ik)
		eig[ik] = []float64{-0.50 + disp, -0.20 + disp, 0.10 + disp, 0.40 + disp}
	}

	const bohr = 4.0 / 0.529177210903 // latticeAng in Bohr

	return map[string]any{
		// Crystal structure.
		"primitive_vectors": [][]float64{
			{bohr, 0, 0},
			{0, bohr, 0},
			{0, 0, bohr},
		},
		"reduced_atom_positions": [][]float64{
			{0, 0, 0},
			{0.5, 0.5, 0.5},
		},
		"atom_species":   []int32{1, 2},
		"atomic_numbers": []float64{3, 9},

		// Electron bands.
		"eigenvalues":                    [][][]float64{eig},
		"reduced_coordinates_of_kpoints": meshPointList(n, shift)[0],
		"fermi_energy":                   -0.05,
		"monkhorst_pack_folding":         []int32{int32(n), int32(n), int32(n)},
		"kpoint_grid_shift":              []float64{shift[0], shift[1], shift[2]},

		// VARPEQ results.
		"varpeq_pkind": pkind,
		"gstore_ngqpt": []int32{int32(n), int32(n), int32(n)},
		"varpeq_nstep": int32(50),
		"nkbz":         int32(nk),
		"nqbz":         int32(nk),
		"tolgrs":       1e-6,
		"nstep2cv":     []int32{int32(len(iterHa))},
		"iter_rec":     [][][]float64{iterRec},
		"nk_spin":      []int32{int32(nk)},
		"nq_spin":      []int32{int32(nk)},
		"nb_spin":      []int32{nb},
		"brange_spin":  [][]int32{{1, 2}},
		"kpts_spin":    meshPointList(n, shift),
		"qpts_spin":    meshPointList(n, [3]float64{}),
		"a_spin":       [][][][]float64{aData},
		"b_spin":       [][][][]float64{bData},
	}
}

// newFixtureFile opens the synthetic file through the memory backend.
func newFixtureFile(path string, n int, shift [3]float64, pkind string, iterHa [][]float64) *ncio.Memory {
	return ncio.NewMemory(path, varpeqVars(n, shift, pkind, iterHa))
}
