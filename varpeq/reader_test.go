package varpeq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephtools/polaron/bzmesh"
	"github.com/ephtools/polaron/ncio"
	"github.com/ephtools/polaron/varpeq"
)

// TestNewReader_Dims verifies the dimensions derived from variable shapes
// and the Fortran -> C band-range conversion.
func TestNewReader_Dims(t *testing.T) {
	f := newFixtureFile("fix.nc", 2, [3]float64{}, "hole", fixtureIterHa)

	r, err := varpeq.NewReader(f)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Nsppol)
	assert.Equal(t, 4, r.Nstep, "iter_rec capacity includes the unused row")
	assert.Equal(t, []int{8}, r.NkSpin)
	assert.Equal(t, []int{8}, r.NqSpin)
	assert.Equal(t, []int{2}, r.NbSpin, "nb = bstop - (bstart-1)")
	assert.Equal(t, []int{0}, r.BstartSpin, "Fortran bstart 1 becomes 0")
	assert.Equal(t, []int{2}, r.BstopSpin, "half-open stop")
	assert.Equal(t, 6, r.Natom3, "from the b_spin shape")
	assert.Equal(t, "hole", r.Pkind)
	assert.Equal(t, bzmesh.Divs{2, 2, 2}, r.Ngqpt)
	assert.Equal(t, 50, r.VarpeqNstep)
	assert.Equal(t, 8, r.NkBZ)
	assert.Equal(t, 8, r.NqBZ)
	assert.InDelta(t, 1e-6, r.Tolgrs, 0)
}

// TestIterRec_TrimAndUnits checks the nstep2cv trim and the Hartree -> eV
// conversion at the boundary.
func TestIterRec_TrimAndUnits(t *testing.T) {
	f := newFixtureFile("fix.nc", 2, [3]float64{}, "hole", fixtureIterHa)
	r, err := varpeq.NewReader(f)
	require.NoError(t, err)

	rows, err := r.IterRec(0)
	require.NoError(t, err)
	require.Len(t, rows, 3, "the padding row is trimmed away")
	assert.InDelta(t, -0.50*varpeq.HaToEv, rows[0][0], 1e-12, "E_pol of step 1 in eV")
	assert.InDelta(t, 1e-8*varpeq.HaToEv, rows[2][5], 1e-18, "grs column converts too")

	_, err = r.IterRec(1)
	assert.ErrorIs(t, err, varpeq.ErrBadSpin)
}

// TestReader_Coefficients checks the complex decoding of a_spin and b_spin.
func TestReader_Coefficients(t *testing.T) {
	f := newFixtureFile("fix.nc", 2, [3]float64{}, "hole", fixtureIterHa)
	r, err := varpeq.NewReader(f)
	require.NoError(t, err)

	a, err := r.A(0)
	require.NoError(t, err)
	nr, nc := a.Dims()
	assert.Equal(t, 8, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, fixtureA(3, 1), a.At(3, 1), "trailing (re, im) pair folds into a complex value")

	b, err := r.B(0)
	require.NoError(t, err)
	nr, nc = b.Dims()
	assert.Equal(t, 8, nr)
	assert.Equal(t, 6, nc)
	assert.Equal(t, fixtureB(5, 4), b.At(5, 4))
}

// TestKSampling covers the diagonal mesh, the multi-shift rejection, and
// the missing-folding rejection.
func TestKSampling(t *testing.T) {
	f := newFixtureFile("fix.nc", 2, [3]float64{0.5, 0.5, 0.5}, "hole", fixtureIterHa)
	r, err := varpeq.NewReader(f)
	require.NoError(t, err)

	divs, shift, err := r.KSampling()
	require.NoError(t, err)
	assert.Equal(t, bzmesh.Divs{2, 2, 2}, divs)
	assert.Equal(t, bzmesh.Point{0.5, 0.5, 0.5}, shift)

	vars := varpeqVars(2, [3]float64{}, "hole", fixtureIterHa)
	vars["kpoint_grid_shift"] = [][]float64{{0, 0, 0}, {0.5, 0.5, 0.5}}
	r, err = varpeq.NewReader(ncio.NewMemory("multi.nc", vars))
	require.NoError(t, err)
	_, _, err = r.KSampling()
	assert.ErrorIs(t, err, varpeq.ErrBadSampling, "multiple shifts are unsupported")

	vars = varpeqVars(2, [3]float64{}, "hole", fixtureIterHa)
	delete(vars, "monkhorst_pack_folding")
	r, err = varpeq.NewReader(ncio.NewMemory("nondiag.nc", vars))
	require.NoError(t, err)
	_, _, err = r.KSampling()
	assert.ErrorIs(t, err, varpeq.ErrBadSampling, "non-diagonal meshes are unsupported")
}

// TestReadEbands checks eigenvalue and Fermi conversion.
func TestReadEbands(t *testing.T) {
	f := newFixtureFile("fix.nc", 2, [3]float64{}, "hole", fixtureIterHa)
	r, err := varpeq.NewReader(f)
	require.NoError(t, err)

	eb, err := r.ReadEbands()
	require.NoError(t, err)
	assert.Equal(t, 1, eb.NumSpins())
	assert.Equal(t, 8, eb.NumKpoints())
	assert.Equal(t, 4, eb.NumBands())
	assert.InDelta(t, -0.05*varpeq.HaToEv, eb.Fermi, 1e-12)
	assert.InDelta(t, -0.50*varpeq.HaToEv, eb.Eigens[0][0][0], 1e-12)
}

// TestNewReader_BadShapes rejects malformed variable shapes.
func TestNewReader_BadShapes(t *testing.T) {
	vars := varpeqVars(2, [3]float64{}, "hole", fixtureIterHa)
	vars["brange_spin"] = [][]int32{{1, 2}, {1, 2}}
	_, err := varpeq.NewReader(ncio.NewMemory("bad.nc", vars))
	assert.ErrorIs(t, err, varpeq.ErrBadFile, "brange rows must match nsppol")

	vars = varpeqVars(2, [3]float64{}, "hole", fixtureIterHa)
	delete(vars, "varpeq_pkind")
	_, err = varpeq.NewReader(ncio.NewMemory("bad.nc", vars))
	assert.ErrorIs(t, err, ncio.ErrNoVar, "missing variables surface the ncio sentinel")
}
