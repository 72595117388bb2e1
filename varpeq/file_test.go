package varpeq_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephtools/polaron/varpeq"
)

// TestNewFile builds the complete object graph from the memory backend.
func TestNewFile(t *testing.T) {
	f, err := varpeq.NewFile(newFixtureFile("fix.nc", 2, [3]float64{}, "hole", fixtureIterHa))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, 1, f.NumSpins())
	assert.Equal(t, "hole", f.Pkind())
	assert.Equal(t, "LiF", f.Structure.Formula())
	assert.Equal(t, 4, f.Ebands.NumBands())
	require.NotNil(t, f.Polaron(0))
	assert.Nil(t, f.Polaron(1), "out-of-range spin yields nil")
}

// TestFile_Params checks the ordered parameter table.
func TestFile_Params(t *testing.T) {
	f, err := varpeq.NewFile(newFixtureFile("fix.nc", 2, [3]float64{}, "electron", fixtureIterHa))
	require.NoError(t, err)
	defer f.Close()

	params := f.Params()
	require.Len(t, params, 6)
	assert.Equal(t, varpeq.Param{Key: "varpeq_pkind", Value: "electron"}, params[0])
	assert.Equal(t, varpeq.Param{Key: "ngqpt", Value: "[2, 2, 2]"}, params[1])
	assert.Equal(t, varpeq.Param{Key: "nkbz", Value: "8"}, params[2])
	assert.Equal(t, varpeq.Param{Key: "tolgrs", Value: "1.0e-06"}, params[5])
}

// TestFile_LastIteration returns the final step of every column in eV.
func TestFile_LastIteration(t *testing.T) {
	f, err := varpeq.NewFile(newFixtureFile("fix.nc", 2, [3]float64{}, "hole", fixtureIterHa))
	require.NoError(t, err)
	defer f.Close()

	last, err := f.LastIteration(0)
	require.NoError(t, err)
	assert.InDelta(t, -0.65*varpeq.HaToEv, last["E_pol"], 1e-12)
	assert.InDelta(t, -0.72*varpeq.HaToEv, last["epsilon"], 1e-12)
	assert.InDelta(t, 1e-8*varpeq.HaToEv, last["grs"], 1e-18)

	_, err = f.LastIteration(3)
	assert.ErrorIs(t, err, varpeq.ErrBadSpin)
}

// TestFile_String spot-checks the marquee report sections.
func TestFile_String(t *testing.T) {
	f, err := varpeq.NewFile(newFixtureFile("fix.nc", 2, [3]float64{}, "hole", fixtureIterHa))
	require.NoError(t, err)
	defer f.Close()

	s := f.String()
	assert.Contains(t, s, "File Info")
	assert.Contains(t, s, "Structure")
	assert.Contains(t, s, "Electronic Bands")
	assert.Contains(t, s, "varpeq_pkind: hole")
	assert.Contains(t, s, "Ank for spin: 0")
	assert.True(t, strings.Contains(s, "====="), "sections carry marquee rules")
}
