package ebands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephtools/polaron/ebands"
	"github.com/ephtools/polaron/ncio"
)

const haToEv = 27.211386245988

// TestFromNC checks eigenvalue conversion, k-points, and optional weights.
func TestFromNC(t *testing.T) {
	f := ncio.NewMemory("mem://gs.nc", map[string]any{
		"eigenvalues": [][][]float64{{
			{-0.5, 0.1},
			{-0.4, 0.2},
		}},
		"reduced_coordinates_of_kpoints": [][]float64{{0, 0, 0}, {0.5, 0, 0}},
		"fermi_energy":                   -0.05,
		"kpoint_weights":                 []float64{0.25, 0.75},
	})

	b, err := ebands.FromNC(f)
	require.NoError(t, err)
	assert.Equal(t, 1, b.NumSpins())
	assert.Equal(t, 2, b.NumKpoints())
	assert.Equal(t, 2, b.NumBands())
	assert.InDelta(t, -0.5*haToEv, b.Eigens[0][0][0], 1e-12, "eigenvalues convert to eV")
	assert.InDelta(t, -0.05*haToEv, b.Fermi, 1e-12)
	assert.Equal(t, []float64{0.25, 0.75}, b.KWeights)
	assert.NoError(t, b.Validate())
}

// TestFromNC_NoWeights leaves KWeights nil when the file has none.
func TestFromNC_NoWeights(t *testing.T) {
	f := ncio.NewMemory("mem://gs.nc", map[string]any{
		"eigenvalues":                    [][][]float64{{{-0.5}}},
		"reduced_coordinates_of_kpoints": [][]float64{{0, 0, 0}},
		"fermi_energy":                   -0.05,
	})

	b, err := ebands.FromNC(f)
	require.NoError(t, err)
	assert.Nil(t, b.KWeights)
}

// TestFromNC_BadShape rejects eigenvalues without the spin axis.
func TestFromNC_BadShape(t *testing.T) {
	f := ncio.NewMemory("mem://gs.nc", map[string]any{
		"eigenvalues":                    [][]float64{{-0.5}},
		"reduced_coordinates_of_kpoints": [][]float64{{0, 0, 0}},
		"fermi_energy":                   -0.05,
	})

	_, err := ebands.FromNC(f)
	assert.ErrorIs(t, err, ebands.ErrBadBands)
}
