// Package bzmesh defines core types, options, and sentinel errors
// for the bzmesh subpackage of github.com/ephtools/polaron.
package bzmesh

import (
	"errors"
	"math"
)

// Sentinel errors for bzmesh operations.
var (
	// ErrBadDivs indicates a mesh division that is zero or negative.
	ErrBadDivs = errors.New("bzmesh: mesh divisions must be positive")
	// ErrBadComp indicates a component count that is zero or negative.
	ErrBadComp = errors.New("bzmesh: component count must be positive")
	// ErrOffMesh indicates a point farther than the tolerance from any mesh node.
	ErrOffMesh = errors.New("bzmesh: point does not belong to the mesh")
	// ErrShapeMismatch indicates disagreeing point, row, or component counts.
	ErrShapeMismatch = errors.New("bzmesh: shape mismatch")
)

// DefaultMeshTol is the default node-distance tolerance used by Indices,
// measured in units of one grid step along each axis.
const DefaultMeshTol = 1e-6

const panicMeshTolInvalid = "bzmesh: WithMeshTol: tol must be finite, non-negative"

// Point is a fractional reciprocal-space coordinate (reduced coordinates).
type Point [3]float64

// Divs holds the number of mesh divisions along the three reciprocal axes.
type Divs [3]int

// Count returns the total number of mesh nodes, n1*n2*n3.
func (d Divs) Count() int { return d[0] * d[1] * d[2] }

// validate reports ErrBadDivs when any division is zero or negative.
func (d Divs) validate() error {
	if d[0] <= 0 || d[1] <= 0 || d[2] <= 0 {
		return ErrBadDivs
	}

	return nil
}

// Options stores the effective configuration after applying Option setters.
// Public entry points accept ...Option and resolve them via gatherOptions.
type Options struct {
	// meshTol is the node-distance tolerance for Indices, in grid-step units.
	meshTol float64
	// shift is the Monkhorst-Pack mesh shift, in units of the grid step:
	// node i along axis d sits at (i + shift[d]) / n_d.
	shift Point
}

// Option mutates Options. Safe to apply repeatedly (last-writer-wins).
type Option func(*Options)

// WithMeshTol sets the node-distance tolerance used by Indices, in units of
// one grid step. Panics when tol is negative, NaN, or infinite (programmer
// error); tol = 0 demands exact node hits.
func WithMeshTol(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicMeshTolInvalid)
	}

	return func(o *Options) { o.meshTol = tol }
}

// WithShift sets the mesh shift in units of the grid step, so that node i
// along axis d sits at the fractional coordinate (i + shift[d]) / n_d.
// The zero value describes a Gamma-centered mesh.
func WithShift(shift Point) Option {
	return func(o *Options) { o.shift = shift }
}

// gatherOptions applies user-provided setters on top of the defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		meshTol: DefaultMeshTol,
		shift:   Point{},
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
