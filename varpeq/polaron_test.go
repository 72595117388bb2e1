package varpeq_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephtools/polaron/bzmesh"
	"github.com/ephtools/polaron/varpeq"
)

// fixturePolaron opens the default fixture and returns its spin-0 polaron.
func fixturePolaron(t *testing.T, shift [3]float64) *varpeq.Polaron {
	t.Helper()
	f, err := varpeq.NewFile(newFixtureFile("fix.nc", 2, shift, "hole", fixtureIterHa))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	return f.Polaron(0)
}

// TestInsertAInBox scatters A_nk onto the k-box and reads every node back.
// The fixture k-list enumerates the mesh with k fastest, so point ik maps
// to node (i,j,k) with ik = (i*n+j)*n + k.
func TestInsertAInBox(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	box, err := p.InsertAInBox()
	require.NoError(t, err)
	assert.Equal(t, 2, box.Ncomp(), "one component per band")
	assert.Equal(t, bzmesh.Divs{2, 2, 2}, box.Divs())

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				ik := (i*2+j)*2 + k
				for ib := 0; ib < 2; ib++ {
					assert.Equal(t, fixtureA(ik, ib), box.At(ib, i, j, k),
						"node (%d,%d,%d) band %d", i, j, k, ib)
				}
			}
		}
	}
}

// TestInsertAInBox_Shifted honors the declared mesh shift in the scatter.
func TestInsertAInBox_Shifted(t *testing.T) {
	p := fixturePolaron(t, [3]float64{0.5, 0.5, 0.5})

	box, err := p.InsertAInBox()
	require.NoError(t, err)
	assert.Equal(t, fixtureA(0, 0), box.At(0, 0, 0, 0), "shifted point (0.25,0.25,0.25) lands on node 0")
	assert.Equal(t, fixtureA(7, 1), box.At(1, 1, 1, 1))
}

// TestInsertBInBox_Fill checks the q-side scatter and the explicit fill for
// filtered meshes. The fixture covers every node, so the fill only shows in
// a sliced variant.
func TestInsertBInBox_Fill(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	box, err := p.InsertBInBox()
	require.NoError(t, err)
	assert.Equal(t, 6, box.Ncomp(), "natom3 components")
	assert.Equal(t, fixtureB(3, 2), box.At(2, 0, 1, 1))

	box, err = p.InsertBInBox(complex(-1, 0))
	require.NoError(t, err)
	assert.Equal(t, fixtureB(0, 0), box.At(0, 0, 0, 0), "data overrides the fill on covered nodes")
}

// TestA2Interpolator reproduces |A_nk|^2 exactly at the mesh nodes.
func TestA2Interpolator(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	interp, err := p.A2Interpolator()
	require.NoError(t, err)
	assert.Equal(t, 2, interp.Ncomp())

	var vals []float64
	for ik, kpt := range p.Kpoints {
		vals = interp.Eval(kpt, vals)
		for ib := 0; ib < p.Nb; ib++ {
			want := cmplx.Abs(fixtureA(ik, ib))
			assert.InDelta(t, want*want, vals[ib], 1e-12, "node value at k-point %d band %d", ik, ib)
		}
	}

	// Periodicity through a lattice translation.
	at := interp.EvalComp(0, bzmesh.Point{0.25, 0.5, 0.75})
	shifted := interp.EvalComp(0, bzmesh.Point{1.25, -0.5, 0.75})
	assert.InDelta(t, at, shifted, 1e-12)
}

// TestB2Interpolator covers the q-side analogue.
func TestB2Interpolator(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	interp, err := p.B2Interpolator()
	require.NoError(t, err)
	assert.Equal(t, 6, interp.Ncomp())

	want := cmplx.Abs(fixtureB(7, 5))
	assert.InDelta(t, want*want, interp.EvalComp(5, p.Qpoints[7]), 1e-12)
}

// TestPolaron_Norm checks 1/N_k sum |A_nk|^2 against the fixture values.
func TestPolaron_Norm(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	var want float64
	for ik := 0; ik < p.Nk; ik++ {
		for ib := 0; ib < p.Nb; ib++ {
			a := cmplx.Abs(fixtureA(ik, ib))
			want += a * a
		}
	}
	want /= float64(p.Nk)

	assert.InDelta(t, want, p.Norm(), 1e-12)
}

// TestPolaron_Title includes the kind and the gap.
func TestPolaron_Title(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	title := p.Title(true)
	assert.Contains(t, title, "hole polaron")
	assert.Contains(t, title, "gap:", "insulating fixture reports its gap")
	assert.NotContains(t, p.Title(false), "gap:")
}

// TestScfCycle_FromPolaron wires the cycle through the polaron accessor.
func TestScfCycle_FromPolaron(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	cycle, err := p.ScfCycle()
	require.NoError(t, err)
	assert.Equal(t, 3, cycle.NumSteps)
	assert.InDelta(t, -0.65*varpeq.HaToEv, cycle.Last("E_pol"), 1e-12)
	assert.True(t, cycle.Converged(1e-6), "final grs 1e-8 Ha is below 1e-6 eV")
	assert.False(t, cycle.Converged(1e-9))
}
