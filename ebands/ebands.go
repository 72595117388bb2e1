package ebands

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/ephtools/polaron/bzmesh"
)

// ErrBadBands indicates shapes or parameters that cannot describe a band
// structure or a DOS mesh.
var ErrBadBands = errors.New("ebands: invalid band-structure data")

// Bands is the electron band-structure contract: eigenvalues in eV with
// shape (nsppol, nkpt, nband), fractional k-points, the Fermi energy, and
// optional tick marks for k-path plots.
type Bands struct {
	// Eigens holds eigenvalues in eV, indexed [spin][ik][band].
	Eigens [][][]float64
	// Kpoints holds the fractional coordinates of each k-point.
	Kpoints []bzmesh.Point
	// Fermi is the Fermi energy in eV.
	Fermi float64
	// KWeights holds one BZ weight per k-point for mesh-sampled bands;
	// nil means unit weights.
	KWeights []float64
	// TickPositions and TickLabels mark the high-symmetry points of a
	// k-path; both may be empty for mesh-sampled bands.
	TickPositions []int
	TickLabels    []string
}

// NumSpins returns the number of spin channels.
func (b *Bands) NumSpins() int { return len(b.Eigens) }

// NumKpoints returns the number of k-points.
func (b *Bands) NumKpoints() int { return len(b.Kpoints) }

// NumBands returns the number of bands, 0 for empty band structures.
func (b *Bands) NumBands() int {
	if len(b.Eigens) == 0 || len(b.Eigens[0]) == 0 {
		return 0
	}

	return len(b.Eigens[0][0])
}

// Validate reports ErrBadBands when the eigenvalue shape disagrees with the
// k-point list.
func (b *Bands) Validate() error {
	for spin, ek := range b.Eigens {
		if len(ek) != len(b.Kpoints) {
			return fmt.Errorf("ebands: spin %d has %d k-blocks for %d k-points: %w",
				spin, len(ek), len(b.Kpoints), ErrBadBands)
		}
	}

	return nil
}

// FundamentalGap returns the valence-band maximum and conduction-band
// minimum around the Fermi level for one spin channel, in eV. ok is false
// for metals (states straddle the Fermi level with no gap) and for empty
// band structures.
func (b *Bands) FundamentalGap(spin int) (vbm, cbm float64, ok bool) {
	if spin < 0 || spin >= len(b.Eigens) {
		return 0, 0, false
	}
	vbm, cbm = math.Inf(-1), math.Inf(1)
	for _, enes := range b.Eigens[spin] {
		for _, e := range enes {
			if e <= b.Fermi && e > vbm {
				vbm = e
			}
			if e > b.Fermi && e < cbm {
				cbm = e
			}
		}
	}
	if math.IsInf(vbm, -1) || math.IsInf(cbm, 1) || cbm-vbm <= 0 {
		return 0, 0, false
	}

	return vbm, cbm, true
}

// Gaussian evaluates a unit-area gaussian of standard deviation width
// centered at center on every mesh point.
func Gaussian(mesh []float64, width, center float64) []float64 {
	out := make([]float64, len(mesh))
	norm := 1.0 / (width * math.Sqrt(2*math.Pi))
	for i, x := range mesh {
		u := (x - center) / width
		out[i] = norm * math.Exp(-0.5*u*u)
	}

	return out
}

// LinearMesh returns n evenly spaced points from lo to hi inclusive.
// n < 2 yields the single point lo.
func LinearMesh(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}

	return floats.Span(make([]float64, n), lo, hi)
}

// Dos is a density of states: an energy mesh in eV and the smeared values
// on it, in states/eV.
type Dos struct {
	Mesh   []float64
	Values []float64
}

// Integral returns the trapezoidal integral of the DOS over its mesh.
func (d *Dos) Integral() float64 {
	if len(d.Mesh) < 2 {
		return 0
	}

	return integrate.Trapezoidal(d.Mesh, d.Values)
}

// NewDosFromBands builds a gaussian-smeared density of states for one spin
// channel. The mesh spans the eigenvalue range padded by three widths with
// the given step. weights, when non-nil, gives one multiplier per state with
// the eigenvalue shape (nkpt, nband); nil means unit weight. Each state is
// additionally scaled by its k-point's KWeights entry when present, so with
// BZ weights summing to one the unweighted DOS integrates to the number of
// bands.
func NewDosFromBands(b *Bands, spin int, width, step float64, weights [][]float64) (*Dos, error) {
	if spin < 0 || spin >= len(b.Eigens) {
		return nil, fmt.Errorf("ebands: spin %d of %d: %w", spin, len(b.Eigens), ErrBadBands)
	}
	if width <= 0 || step <= 0 {
		return nil, fmt.Errorf("ebands: width %g, step %g must be positive: %w", width, step, ErrBadBands)
	}
	if weights != nil && len(weights) != len(b.Eigens[spin]) {
		return nil, fmt.Errorf("ebands: %d weight rows for %d k-points: %w",
			len(weights), len(b.Eigens[spin]), ErrBadBands)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, enes := range b.Eigens[spin] {
		for _, e := range enes {
			lo = math.Min(lo, e)
			hi = math.Max(hi, e)
		}
	}
	if lo > hi {
		return nil, fmt.Errorf("ebands: no states in spin %d: %w", spin, ErrBadBands)
	}

	lo, hi = lo-3*width, hi+3*width
	n := int((hi-lo)/step) + 1
	mesh := LinearMesh(lo, hi, n)

	values := make([]float64, len(mesh))
	for ik, enes := range b.Eigens[spin] {
		kw := 1.0
		if b.KWeights != nil {
			kw = b.KWeights[ik]
		}
		for ib, e := range enes {
			w := kw
			if weights != nil {
				w *= weights[ik][ib]
			}
			for i, g := range Gaussian(mesh, width, e) {
				values[i] += w * g
			}
		}
	}

	return &Dos{Mesh: mesh, Values: values}, nil
}
