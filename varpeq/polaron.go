package varpeq

import (
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ephtools/polaron/bzmesh"
)

// Polaron stores the polaron coefficients A_nk and B_qnu for one spin and
// maps them onto the regular k/q meshes.
type Polaron struct {
	// Spin is the spin index.
	Spin int
	// Nb, Nk, Nq count bands, k-points, and q-points after any filtering.
	Nb, Nk, Nq int
	// Bstart and Bstop delimit the band window, C convention.
	Bstart, Bstop int

	// Kpoints and Qpoints hold reduced coordinates.
	Kpoints []bzmesh.Point
	Qpoints []bzmesh.Point

	// A is nk x nb, B is nq x natom3.
	A *mat.CDense
	B *mat.CDense

	file *File
}

// newPolaron decodes the per-spin arrays of f.
func newPolaron(f *File, spin int) (*Polaron, error) {
	r := f.r
	if err := r.checkSpin(spin); err != nil {
		return nil, err
	}

	kpts, err := r.Kpoints(spin)
	if err != nil {
		return nil, err
	}
	qpts, err := r.Qpoints(spin)
	if err != nil {
		return nil, err
	}
	a, err := r.A(spin)
	if err != nil {
		return nil, err
	}
	b, err := r.B(spin)
	if err != nil {
		return nil, err
	}

	return &Polaron{
		Spin:    spin,
		Nb:      r.NbSpin[spin],
		Nk:      r.NkSpin[spin],
		Nq:      r.NqSpin[spin],
		Bstart:  r.BstartSpin[spin],
		Bstop:   r.BstopSpin[spin],
		Kpoints: kpts,
		Qpoints: qpts,
		A:       a,
		B:       b,
		file:    f,
	}, nil
}

// File returns the owning VARPEQ file.
func (p *Polaron) File() *File { return p.file }

// ScfCycle returns the convergence-iteration table of this spin.
func (p *Polaron) ScfCycle() (*ScfCycle, error) {
	return newScfCycle(p.file.r, p.Spin)
}

// NgkptAndShifts returns the k-mesh divisions and the single shift of the
// file's k-sampling. Non-diagonal meshes and multiple shifts yield
// ErrBadSampling.
func (p *Polaron) NgkptAndShifts() (bzmesh.Divs, bzmesh.Point, error) {
	return p.file.r.KSampling()
}

// Ngqpt returns the q-mesh divisions. The q-mesh is always Gamma-centered.
func (p *Polaron) Ngqpt() bzmesh.Divs { return p.file.r.Ngqpt }

// InsertAInBox scatters the A_nk rows onto the k-mesh box with shape
// (nb, n1, n2, n3). Mesh nodes removed by k-point filtering stay zero, or
// take the optional fill value.
func (p *Polaron) InsertAInBox(fill ...complex128) (*bzmesh.Box, error) {
	divs, shift, err := p.NgkptAndShifts()
	if err != nil {
		return nil, err
	}

	return p.insertInBox(p.A, p.Nb, p.Kpoints, divs, shift, fill)
}

// InsertBInBox scatters the B_qnu rows onto the q-mesh box with shape
// (natom3, n1, n2, n3).
func (p *Polaron) InsertBInBox(fill ...complex128) (*bzmesh.Box, error) {
	_, ncomp := p.B.Dims()

	return p.insertInBox(p.B, ncomp, p.Qpoints, p.Ngqpt(), bzmesh.Point{}, fill)
}

// insertInBox maps points onto the mesh and scatters the matrix rows.
func (p *Polaron) insertInBox(m *mat.CDense, ncomp int, points []bzmesh.Point,
	divs bzmesh.Divs, shift bzmesh.Point, fill []complex128) (*bzmesh.Box, error) {
	idx, err := bzmesh.Indices(points, divs, bzmesh.WithShift(shift))
	if err != nil {
		return nil, err
	}

	box, err := bzmesh.NewBox(ncomp, divs)
	if err != nil {
		return nil, err
	}
	if len(fill) > 0 {
		box.Fill(fill[0])
	}

	rows := make([][]complex128, len(points))
	for ip := range points {
		row := make([]complex128, ncomp)
		for c := 0; c < ncomp; c++ {
			row[c] = m.At(ip, c)
		}
		rows[ip] = row
	}
	if err := box.Insert(idx, rows); err != nil {
		return nil, err
	}

	return box, nil
}

// A2Interpolator builds the periodic trilinear interpolator for |A_nk|^2.
func (p *Polaron) A2Interpolator() (*bzmesh.Interpolator, error) {
	box, err := p.InsertAInBox()
	if err != nil {
		return nil, err
	}
	_, shift, err := p.NgkptAndShifts()
	if err != nil {
		return nil, err
	}

	return bzmesh.NewInterpolator(box.Abs2(), shift)
}

// B2Interpolator builds the periodic trilinear interpolator for |B_qnu|^2.
func (p *Polaron) B2Interpolator() (*bzmesh.Interpolator, error) {
	box, err := p.InsertBInBox()
	if err != nil {
		return nil, err
	}

	return bzmesh.NewInterpolator(box.Abs2(), bzmesh.Point{})
}

// Norm returns 1/N_k sum_{nk} |A_nk|^2, which converges to one on dense
// meshes.
func (p *Polaron) Norm() float64 {
	var sum float64
	for ik := 0; ik < p.Nk; ik++ {
		for ib := 0; ib < p.Nb; ib++ {
			a := cmplx.Abs(p.A.At(ik, ib))
			sum += a * a
		}
	}

	return sum / float64(p.Nk)
}

// Title returns the plot title line: polaron kind, spin when polarized, and
// the fundamental gap when available and requested.
func (p *Polaron) Title(withGaps bool) string {
	pre := ""
	if p.file.NumSpins() > 1 {
		pre = fmt.Sprintf("spin=%d, ", p.Spin)
	}
	title := pre + p.file.Pkind() + " polaron"
	if withGaps {
		if vbm, cbm, ok := p.file.Ebands.FundamentalGap(p.Spin); ok {
			title += fmt.Sprintf(", gap: %.3f eV", cbm-vbm)
		}
	}

	return title
}

// String renders the per-spin summary block of the file report.
func (p *Polaron) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, marquee(fmt.Sprintf("Ank for spin: %d", p.Spin), '='))
	fmt.Fprintf(&b, "nb: %d\n", p.Nb)
	fmt.Fprintf(&b, "nk: %d\n", p.Nk)
	fmt.Fprintf(&b, "nq: %d\n", p.Nq)
	fmt.Fprintf(&b, "bstart: %d\n", p.Bstart)
	fmt.Fprintf(&b, "bstop: %d\n", p.Bstop)
	if divs, shift, err := p.NgkptAndShifts(); err == nil {
		fmt.Fprintf(&b, "ksampling: %s, shift [%g, %g, %g]\n", formatDivs(divs), shift[0], shift[1], shift[2])
	}
	fmt.Fprintf(&b, "q-mesh: %s\n", formatDivs(p.Ngqpt()))
	fmt.Fprintf(&b, "1/N_k sum_nk |A_nk|^2: %f\n", p.Norm())

	return b.String()
}
