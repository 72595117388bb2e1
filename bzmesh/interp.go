package bzmesh

import (
	"fmt"
	"math"
)

// Interpolator evaluates a Field at arbitrary fractional coordinates by
// trilinear interpolation, periodic along all three axes. The grid step
// along axis d is 1/n_d; node i sits at (i + shift[d]) / n_d. An evaluation
// point is folded into [0,1) before the corner nodes are located, so
// Eval(p) == Eval(p + G) for any integer translation G.
type Interpolator struct {
	field *Field
	shift Point
}

// NewInterpolator builds a periodic trilinear interpolator over f. The shift
// argument places the mesh nodes; the zero Point describes a Gamma-centered
// mesh. Options are accepted for symmetry with Indices but carry no knobs
// that affect interpolation today.
func NewInterpolator(f *Field, shift Point, opts ...Option) (*Interpolator, error) {
	if f == nil || len(f.data) == 0 {
		return nil, fmt.Errorf("bzmesh: NewInterpolator: empty field: %w", ErrShapeMismatch)
	}
	_ = gatherOptions(opts...)

	return &Interpolator{field: f, shift: shift}, nil
}

// Ncomp returns the number of field components an evaluation yields.
func (it *Interpolator) Ncomp() int { return it.field.ncomp }

// axisWeights locates the two corner indices and the blend weight along one
// axis for the folded coordinate x.
func (it *Interpolator) axisWeights(x float64, d int) (lo, hi int, t float64) {
	n := it.field.divs[d]
	u := fold(x)*float64(n) - it.shift[d]
	base := math.Floor(u)
	t = u - base
	lo = wrapIndex(int(base), n)
	hi = wrapIndex(int(base)+1, n)

	return lo, hi, t
}

// Eval interpolates all components at the fractional point p. The result is
// appended into dst (grown as needed) and returned, so callers can reuse a
// scratch slice across evaluations.
// Complexity: O(ncomp).
func (it *Interpolator) Eval(p Point, dst []float64) []float64 {
	i0, i1, tx := it.axisWeights(p[0], 0)
	j0, j1, ty := it.axisWeights(p[1], 1)
	k0, k1, tz := it.axisWeights(p[2], 2)

	if cap(dst) < it.field.ncomp {
		dst = make([]float64, it.field.ncomp)
	}
	dst = dst[:it.field.ncomp]

	f := it.field
	for c := 0; c < f.ncomp; c++ {
		c000 := f.At(c, i0, j0, k0)
		c100 := f.At(c, i1, j0, k0)
		c010 := f.At(c, i0, j1, k0)
		c110 := f.At(c, i1, j1, k0)
		c001 := f.At(c, i0, j0, k1)
		c101 := f.At(c, i1, j0, k1)
		c011 := f.At(c, i0, j1, k1)
		c111 := f.At(c, i1, j1, k1)

		// Collapse x, then y, then z.
		c00 := c000 + tx*(c100-c000)
		c10 := c010 + tx*(c110-c010)
		c01 := c001 + tx*(c101-c001)
		c11 := c011 + tx*(c111-c011)
		c0 := c00 + ty*(c10-c00)
		c1 := c01 + ty*(c11-c01)
		dst[c] = c0 + tz*(c1-c0)
	}

	return dst
}

// EvalComp interpolates a single component at the fractional point p.
// Complexity: O(1).
func (it *Interpolator) EvalComp(c int, p Point) float64 {
	i0, i1, tx := it.axisWeights(p[0], 0)
	j0, j1, ty := it.axisWeights(p[1], 1)
	k0, k1, tz := it.axisWeights(p[2], 2)

	f := it.field
	c00 := f.At(c, i0, j0, k0) + tx*(f.At(c, i1, j0, k0)-f.At(c, i0, j0, k0))
	c10 := f.At(c, i0, j1, k0) + tx*(f.At(c, i1, j1, k0)-f.At(c, i0, j1, k0))
	c01 := f.At(c, i0, j0, k1) + tx*(f.At(c, i1, j0, k1)-f.At(c, i0, j0, k1))
	c11 := f.At(c, i0, j1, k1) + tx*(f.At(c, i1, j1, k1)-f.At(c, i0, j1, k1))
	c0 := c00 + ty*(c10-c00)
	c1 := c01 + ty*(c11-c01)

	return c0 + tz*(c1-c0)
}
