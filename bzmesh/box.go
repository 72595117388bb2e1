package bzmesh

import (
	"fmt"
)

// Box is a complex scalar field with ncomp components on a regular
// (n1,n2,n3) mesh. Storage is a flat row-major slice: component first,
// then i, j, k with k fastest. A fresh Box is zero-filled, so mesh nodes
// that receive no data from Insert read as 0.
type Box struct {
	ncomp int
	divs  Divs
	data  []complex128 // length ncomp*n1*n2*n3
}

// NewBox allocates a zero-filled Box with ncomp components on the divs mesh.
// Returns ErrBadComp or ErrBadDivs on non-positive sizes.
// Complexity: O(ncomp*n1*n2*n3) time and memory.
func NewBox(ncomp int, divs Divs) (*Box, error) {
	if ncomp <= 0 {
		return nil, fmt.Errorf("bzmesh: NewBox: ncomp %d: %w", ncomp, ErrBadComp)
	}
	if err := divs.validate(); err != nil {
		return nil, fmt.Errorf("bzmesh: NewBox: divs %v: %w", divs, err)
	}

	return &Box{
		ncomp: ncomp,
		divs:  divs,
		data:  make([]complex128, ncomp*divs.Count()),
	}, nil
}

// Ncomp returns the number of components.
func (b *Box) Ncomp() int { return b.ncomp }

// Divs returns the mesh divisions.
func (b *Box) Divs() Divs { return b.divs }

// index maps (c,i,j,k) to the flat offset. Bounds are the caller's problem.
func (b *Box) index(c, i, j, k int) int {
	return ((c*b.divs[0]+i)*b.divs[1]+j)*b.divs[2] + k
}

// At returns the value of component c at node (i,j,k).
// Complexity: O(1).
func (b *Box) At(c, i, j, k int) complex128 {
	return b.data[b.index(c, i, j, k)]
}

// Set assigns the value of component c at node (i,j,k).
// Complexity: O(1).
func (b *Box) Set(c, i, j, k int, v complex128) {
	b.data[b.index(c, i, j, k)] = v
}

// Fill assigns v to every node of every component.
// Complexity: O(len(data)).
func (b *Box) Fill(v complex128) {
	for n := range b.data {
		b.data[n] = v
	}
}

// Insert scatters per-point component vectors into the box: rows[p][c] is
// written to component c at grid index idx[p]. Nodes not named by idx keep
// their current value. Returns ErrShapeMismatch when len(idx) != len(rows),
// a row length differs from ncomp, or an index is outside the mesh.
// Complexity: O(len(idx)*ncomp).
func (b *Box) Insert(idx [][3]int, rows [][]complex128) error {
	if len(idx) != len(rows) {
		return fmt.Errorf("bzmesh: Insert: %d indices vs %d rows: %w", len(idx), len(rows), ErrShapeMismatch)
	}
	for p, in := range idx {
		if len(rows[p]) != b.ncomp {
			return fmt.Errorf("bzmesh: Insert: row %d has %d components, box has %d: %w",
				p, len(rows[p]), b.ncomp, ErrShapeMismatch)
		}
		for d := 0; d < 3; d++ {
			if in[d] < 0 || in[d] >= b.divs[d] {
				return fmt.Errorf("bzmesh: Insert: index %v outside %v mesh: %w", in, b.divs, ErrShapeMismatch)
			}
		}
		for c := 0; c < b.ncomp; c++ {
			b.data[b.index(c, in[0], in[1], in[2])] = rows[p][c]
		}
	}

	return nil
}

// Abs2 returns the elementwise squared magnitude |z|^2 of the box as a Field.
// Complexity: O(len(data)) time and memory.
func (b *Box) Abs2() *Field {
	f := &Field{
		ncomp: b.ncomp,
		divs:  b.divs,
		data:  make([]float64, len(b.data)),
	}
	for n, z := range b.data {
		re, im := real(z), imag(z)
		f.data[n] = re*re + im*im
	}

	return f
}

// Field is the real counterpart of Box: ncomp real components on a regular
// (n1,n2,n3) mesh with the same flat row-major layout.
type Field struct {
	ncomp int
	divs  Divs
	data  []float64
}

// NewField allocates a zero-filled Field with ncomp components on divs.
// Returns ErrBadComp or ErrBadDivs on non-positive sizes.
func NewField(ncomp int, divs Divs) (*Field, error) {
	if ncomp <= 0 {
		return nil, fmt.Errorf("bzmesh: NewField: ncomp %d: %w", ncomp, ErrBadComp)
	}
	if err := divs.validate(); err != nil {
		return nil, fmt.Errorf("bzmesh: NewField: divs %v: %w", divs, err)
	}

	return &Field{
		ncomp: ncomp,
		divs:  divs,
		data:  make([]float64, ncomp*divs.Count()),
	}, nil
}

// Ncomp returns the number of components.
func (f *Field) Ncomp() int { return f.ncomp }

// Divs returns the mesh divisions.
func (f *Field) Divs() Divs { return f.divs }

// index maps (c,i,j,k) to the flat offset.
func (f *Field) index(c, i, j, k int) int {
	return ((c*f.divs[0]+i)*f.divs[1]+j)*f.divs[2] + k
}

// At returns the value of component c at node (i,j,k).
// Complexity: O(1).
func (f *Field) At(c, i, j, k int) float64 {
	return f.data[f.index(c, i, j, k)]
}

// Set assigns the value of component c at node (i,j,k).
// Complexity: O(1).
func (f *Field) Set(c, i, j, k int, v float64) {
	f.data[f.index(c, i, j, k)] = v
}

// Mean returns the arithmetic mean over all components and nodes.
// Complexity: O(len(data)).
func (f *Field) Mean() float64 {
	if len(f.data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range f.data {
		sum += v
	}

	return sum / float64(len(f.data))
}
