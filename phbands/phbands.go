package phbands

import (
	"errors"
	"fmt"

	"github.com/ephtools/polaron/bzmesh"
)

// ErrBadBands indicates shapes that cannot describe a phonon band structure.
var ErrBadBands = errors.New("phbands: invalid phonon-band data")

// Bands is the phonon band-structure contract: mode frequencies in eV with
// shape (nqpt, natom3), fractional q-points, and optional tick marks for
// q-path plots.
type Bands struct {
	// Freqs holds mode frequencies in eV, indexed [iq][mode].
	Freqs [][]float64
	// Qpoints holds the fractional coordinates of each q-point.
	Qpoints []bzmesh.Point
	// TickPositions and TickLabels mark the high-symmetry points of a
	// q-path; both may be empty for mesh-sampled bands.
	TickPositions []int
	TickLabels    []string
}

// NumQpoints returns the number of q-points.
func (b *Bands) NumQpoints() int { return len(b.Qpoints) }

// NumModes returns the number of phonon modes (3 x natom), 0 when empty.
func (b *Bands) NumModes() int {
	if len(b.Freqs) == 0 {
		return 0
	}

	return len(b.Freqs[0])
}

// Validate reports ErrBadBands when the frequency shape disagrees with the
// q-point list.
func (b *Bands) Validate() error {
	if len(b.Freqs) != len(b.Qpoints) {
		return fmt.Errorf("phbands: %d frequency rows for %d q-points: %w",
			len(b.Freqs), len(b.Qpoints), ErrBadBands)
	}

	return nil
}

// Dos is a phonon density of states: frequency mesh in eV, values in
// states/eV, as produced by the anaddb collaborator.
type Dos struct {
	Mesh   []float64
	Values []float64
}
