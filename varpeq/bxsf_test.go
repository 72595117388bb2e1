package varpeq_test

import (
	"bytes"
	"math/cmplx"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ephtools/polaron/varpeq"
)

// TestWriteA2BXSF checks the band-grid envelope, the n+1 point counts, and
// the periodic replica.
func TestWriteA2BXSF(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	var buf bytes.Buffer
	require.NoError(t, p.WriteA2BXSF(&buf))
	out := buf.String()

	assert.Contains(t, out, "BEGIN_INFO")
	assert.Contains(t, out, "Fermi Energy:")
	assert.Contains(t, out, "BANDGRID_3D_BANDS")
	assert.Contains(t, out, " 3 3 3", "2-division mesh exports 3 points per axis")
	assert.Contains(t, out, "END_BLOCK_BANDGRID_3D")
	assert.Equal(t, 2, strings.Count(out, "BAND:"), "one band block per A_nk band")

	// The replica repeats the first node: with k fastest, each value line
	// holds n+1 entries whose last wraps back to its first.
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if strings.Contains(line, "BAND:") {
			fields := strings.Fields(lines[i+1])
			require.Len(t, fields, 3)
			assert.Equal(t, fields[0], fields[2], "k replica equals node 0")

			break
		}
	}

	// Grid mean of |A|^2 appears as the header energy.
	box, err := p.InsertAInBox(0)
	require.NoError(t, err)
	var mean float64
	for ib := 0; ib < 2; ib++ {
		for ik := 0; ik < 8; ik++ {
			a := cmplx.Abs(fixtureA(ik, ib))
			mean += a * a
		}
	}
	mean /= 16
	assert.InDelta(t, mean, box.Abs2().Mean(), 1e-12)
}

// TestWriteA2BXSF_NeedsGamma rejects shifted k-meshes.
func TestWriteA2BXSF_NeedsGamma(t *testing.T) {
	p := fixturePolaron(t, [3]float64{0.5, 0.5, 0.5})

	var buf bytes.Buffer
	err := p.WriteA2BXSF(&buf)
	assert.ErrorIs(t, err, varpeq.ErrBadSampling)
}

// TestWriteB2BXSF exports one block per phonon mode.
func TestWriteB2BXSF(t *testing.T) {
	p := fixturePolaron(t, [3]float64{})

	var buf bytes.Buffer
	require.NoError(t, p.WriteB2BXSF(&buf))
	assert.Equal(t, 6, strings.Count(buf.String(), "BAND:"), "natom3 blocks")
}
