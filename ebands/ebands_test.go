package ebands_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/integrate"

	"github.com/ephtools/polaron/bzmesh"
	"github.com/ephtools/polaron/ebands"
)

// twoBandInsulator builds a two-band, three-k-point insulator with a 2 eV
// gap around Fermi = 0.
func twoBandInsulator() *ebands.Bands {
	return &ebands.Bands{
		Eigens: [][][]float64{{
			{-1.0, 1.0},
			{-1.5, 2.0},
			{-2.0, 3.0},
		}},
		Kpoints: []bzmesh.Point{{0, 0, 0}, {0.25, 0, 0}, {0.5, 0, 0}},
		Fermi:   0.0,
	}
}

// TestFundamentalGap locates VBM and CBM around the Fermi level.
func TestFundamentalGap(t *testing.T) {
	b := twoBandInsulator()

	vbm, cbm, ok := b.FundamentalGap(0)
	require.True(t, ok, "insulator must report a gap")
	assert.Equal(t, -1.0, vbm, "highest state below Fermi")
	assert.Equal(t, 1.0, cbm, "lowest state above Fermi")

	_, _, ok = b.FundamentalGap(1)
	assert.False(t, ok, "out-of-range spin has no gap")
}

// TestFundamentalGap_Metal ensures a band crossing the Fermi level reports
// no gap.
func TestFundamentalGap_Metal(t *testing.T) {
	// States pinned exactly at the Fermi level leave no conduction state.
	b := &ebands.Bands{
		Eigens:  [][][]float64{{{0.0}, {0.0}}},
		Kpoints: []bzmesh.Point{{0, 0, 0}, {0.5, 0, 0}},
		Fermi:   0.0,
	}
	_, _, ok := b.FundamentalGap(0)
	assert.False(t, ok, "states pinned at the Fermi level leave no conduction state")
}

// TestGaussian_Normalization integrates the kernel over a wide mesh.
func TestGaussian_Normalization(t *testing.T) {
	mesh := ebands.LinearMesh(-5, 5, 2001)
	g := ebands.Gaussian(mesh, 0.3, 0.0)

	assert.InDelta(t, 1.0, integrate.Trapezoidal(mesh, g), 1e-6,
		"gaussian must integrate to one")

	// Peak sits at the center.
	peak := 1.0 / (0.3 * math.Sqrt(2*math.Pi))
	assert.InDelta(t, peak, g[1000], 1e-12, "peak value at the center")
}

// TestLinearMesh covers endpoints and the degenerate n<2 case.
func TestLinearMesh(t *testing.T) {
	mesh := ebands.LinearMesh(0, 1, 5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, mesh)
	assert.Equal(t, []float64{2}, ebands.LinearMesh(2, 9, 1), "n<2 collapses to the lower bound")
}

// TestNewDosFromBands_UnitWeights checks that the DOS integrates to the
// number of states.
func TestNewDosFromBands_UnitWeights(t *testing.T) {
	b := twoBandInsulator()

	dos, err := ebands.NewDosFromBands(b, 0, 0.1, 0.005, nil)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, dos.Integral(), 1e-2, "3 k-points x 2 bands = 6 states")
}

// TestNewDosFromBands_Weighted checks per-state weighting.
func TestNewDosFromBands_Weighted(t *testing.T) {
	b := twoBandInsulator()
	weights := [][]float64{{1, 0}, {1, 0}, {1, 0}}

	dos, err := ebands.NewDosFromBands(b, 0, 0.1, 0.005, weights)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, dos.Integral(), 1e-2, "only the valence states carry weight")
}

// TestNewDosFromBands_Errors exercises the ErrBadBands paths.
func TestNewDosFromBands_Errors(t *testing.T) {
	b := twoBandInsulator()

	_, err := ebands.NewDosFromBands(b, 2, 0.1, 0.01, nil)
	assert.ErrorIs(t, err, ebands.ErrBadBands, "bad spin index")

	_, err = ebands.NewDosFromBands(b, 0, -1, 0.01, nil)
	assert.ErrorIs(t, err, ebands.ErrBadBands, "non-positive width")

	_, err = ebands.NewDosFromBands(b, 0, 0.1, 0.01, [][]float64{{1, 1}})
	assert.ErrorIs(t, err, ebands.ErrBadBands, "weight shape mismatch")
}

// TestValidate flags eigenvalue blocks that disagree with the k-point list.
func TestValidate(t *testing.T) {
	b := twoBandInsulator()
	require.NoError(t, b.Validate())

	b.Kpoints = b.Kpoints[:2]
	assert.ErrorIs(t, b.Validate(), ebands.ErrBadBands)
}
