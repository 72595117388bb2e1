package varpeq

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ephtools/polaron/bzmesh"
	"github.com/ephtools/polaron/ebands"
	"github.com/ephtools/polaron/ncio"
)

// Reader decodes the VARPEQ.nc variables through the ncio seam.
//
// The relevant variables and shapes, as the solver writes them:
//
//	int    varpeq_nstep, nkbz, nqbz ;
//	double tolgrs ;
//	int    nstep2cv(nsppol) ;
//	double iter_rec(nsppol, nstep, six) ;
//	int    nk_spin(nsppol), nq_spin(nsppol), nb_spin(nsppol) ;
//	int    brange_spin(nsppol, two) ;
//	double kpts_spin(nsppol, max_nk, three) ;
//	double qpts_spin(nsppol, max_nq, three) ;
//	double a_spin(nsppol, max_nk, max_nb, two) ;
//	double b_spin(nsppol, max_nq, natom3, two) ;
//	char   varpeq_pkind(*) ;
//	int    gstore_ngqpt(three) ;
//
// Dimensions derive from the variable shapes. Band ranges are converted
// from Fortran one-based closed intervals to C half-open ones, and all
// energies are converted Hartree -> eV here.
type Reader struct {
	f ncio.File

	// Nsppol is the number of spin channels; Nstep the iteration capacity
	// of iter_rec (nstep2cv steps are meaningful).
	Nsppol, Nstep int

	// Per-spin counts of (possibly filtered) k-points, q-points, and bands.
	NkSpin, NqSpin, NbSpin []int
	// BstartSpin/BstopSpin delimit the band window, C convention.
	BstartSpin, BstopSpin []int

	// Natom3 is the number of phonon modes, from the b_spin shape.
	Natom3 int

	// Pkind is the polaron kind, "electron" or "hole".
	Pkind string
	// Ngqpt holds the q-mesh divisions, always Gamma-centered.
	Ngqpt bzmesh.Divs

	// VarpeqNstep, NkBZ, NqBZ, and Tolgrs mirror the solver input scalars.
	VarpeqNstep, NkBZ, NqBZ int
	Tolgrs                  float64
}

// NewReader reads the dimensions and small variables from f. The file stays
// open; array variables are decoded on demand.
func NewReader(f ncio.File) (*Reader, error) {
	r := &Reader{f: f}

	var err error
	if r.NkSpin, err = readIntVec(f, "nk_spin"); err != nil {
		return nil, err
	}
	if r.NqSpin, err = readIntVec(f, "nq_spin"); err != nil {
		return nil, err
	}
	r.Nsppol = len(r.NkSpin)
	if r.Nsppol == 0 || len(r.NqSpin) != r.Nsppol {
		return nil, fmt.Errorf("varpeq: %s: nk_spin/nq_spin shapes %d/%d: %w",
			f.Path(), r.Nsppol, len(r.NqSpin), ErrBadFile)
	}

	// Fortran -> C band window: bstart-1, half-open bstop.
	brange, err := f.Var("brange_spin")
	if err != nil {
		return nil, err
	}
	br, err := brange.Ints()
	if err != nil {
		return nil, err
	}
	if len(br) != 2*r.Nsppol {
		return nil, fmt.Errorf("varpeq: %s: brange_spin holds %d values for %d spins: %w",
			f.Path(), len(br), r.Nsppol, ErrBadFile)
	}
	r.BstartSpin = make([]int, r.Nsppol)
	r.BstopSpin = make([]int, r.Nsppol)
	r.NbSpin = make([]int, r.Nsppol)
	for spin := 0; spin < r.Nsppol; spin++ {
		r.BstartSpin[spin] = br[2*spin] - 1
		r.BstopSpin[spin] = br[2*spin+1]
		r.NbSpin[spin] = r.BstopSpin[spin] - r.BstartSpin[spin]
		if r.NbSpin[spin] <= 0 {
			return nil, fmt.Errorf("varpeq: %s: spin %d band range [%d,%d): %w",
				f.Path(), spin, r.BstartSpin[spin], r.BstopSpin[spin], ErrBadFile)
		}
	}

	iter, err := f.Var("iter_rec")
	if err != nil {
		return nil, err
	}
	dims := iter.Dims()
	if len(dims) != 3 || dims[0] != r.Nsppol || dims[2] != NumIterColumns {
		return nil, fmt.Errorf("varpeq: %s: iter_rec shape %v: %w", f.Path(), dims, ErrBadFile)
	}
	r.Nstep = dims[1]

	pkind, err := f.Var("varpeq_pkind")
	if err != nil {
		return nil, err
	}
	if r.Pkind, err = pkind.String(); err != nil {
		return nil, err
	}

	ngqpt, err := readIntVec(f, "gstore_ngqpt")
	if err != nil {
		return nil, err
	}
	if len(ngqpt) != 3 {
		return nil, fmt.Errorf("varpeq: %s: gstore_ngqpt holds %d values: %w", f.Path(), len(ngqpt), ErrBadFile)
	}
	copy(r.Ngqpt[:], ngqpt)

	bdims, err := varDims(f, "b_spin")
	if err != nil {
		return nil, err
	}
	if len(bdims) != 4 {
		return nil, fmt.Errorf("varpeq: %s: b_spin shape %v: %w", f.Path(), bdims, ErrBadFile)
	}
	r.Natom3 = bdims[2]

	if r.VarpeqNstep, err = readIntScalar(f, "varpeq_nstep"); err != nil {
		return nil, err
	}
	if r.NkBZ, err = readIntScalar(f, "nkbz"); err != nil {
		return nil, err
	}
	if r.NqBZ, err = readIntScalar(f, "nqbz"); err != nil {
		return nil, err
	}
	if r.Tolgrs, err = readFloatScalar(f, "tolgrs"); err != nil {
		return nil, err
	}

	return r, nil
}

// Path returns the underlying file location.
func (r *Reader) Path() string { return r.f.Path() }

// checkSpin validates a spin index against nsppol.
func (r *Reader) checkSpin(spin int) error {
	if spin < 0 || spin >= r.Nsppol {
		return fmt.Errorf("varpeq: spin %d of %d: %w", spin, r.Nsppol, ErrBadSpin)
	}

	return nil
}

// Nstep2cv returns the number of meaningful iteration steps for one spin.
func (r *Reader) Nstep2cv(spin int) (int, error) {
	if err := r.checkSpin(spin); err != nil {
		return 0, err
	}
	ns, err := readIntVec(r.f, "nstep2cv")
	if err != nil {
		return 0, err
	}
	if len(ns) != r.Nsppol {
		return 0, fmt.Errorf("varpeq: %s: nstep2cv holds %d values for %d spins: %w",
			r.Path(), len(ns), r.Nsppol, ErrBadFile)
	}
	if ns[spin] < 1 || ns[spin] > r.Nstep {
		return 0, fmt.Errorf("varpeq: %s: spin %d nstep2cv %d of %d: %w",
			r.Path(), spin, ns[spin], r.Nstep, ErrBadFile)
	}

	return ns[spin], nil
}

// IterRec returns the iteration records of one spin trimmed to nstep2cv,
// in eV: one row per step, NumIterColumns values per row.
func (r *Reader) IterRec(spin int) ([][]float64, error) {
	nstep2cv, err := r.Nstep2cv(spin)
	if err != nil {
		return nil, err
	}
	v, err := r.f.Var("iter_rec")
	if err != nil {
		return nil, err
	}
	flat, err := v.Float64s()
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, nstep2cv)
	base := spin * r.Nstep * NumIterColumns
	for step := 0; step < nstep2cv; step++ {
		row := make([]float64, NumIterColumns)
		for c := 0; c < NumIterColumns; c++ {
			row[c] = flat[base+step*NumIterColumns+c] * HaToEv
		}
		rows[step] = row
	}

	return rows, nil
}

// Kpoints returns the fractional k-points of one spin, trimmed to nk.
func (r *Reader) Kpoints(spin int) ([]bzmesh.Point, error) {
	if err := r.checkSpin(spin); err != nil {
		return nil, err
	}

	return r.readPoints("kpts_spin", spin, r.NkSpin[spin])
}

// Qpoints returns the fractional q-points of one spin, trimmed to nq.
func (r *Reader) Qpoints(spin int) ([]bzmesh.Point, error) {
	if err := r.checkSpin(spin); err != nil {
		return nil, err
	}

	return r.readPoints("qpts_spin", spin, r.NqSpin[spin])
}

// readPoints slices nkeep rows of (nsppol, max_np, 3) point arrays.
func (r *Reader) readPoints(name string, spin, nkeep int) ([]bzmesh.Point, error) {
	v, err := r.f.Var(name)
	if err != nil {
		return nil, err
	}
	dims := v.Dims()
	if len(dims) != 3 || dims[0] != r.Nsppol || dims[2] != 3 || dims[1] < nkeep {
		return nil, fmt.Errorf("varpeq: %s: %s shape %v for %d points: %w",
			r.Path(), name, dims, nkeep, ErrBadFile)
	}
	flat, err := v.Float64s()
	if err != nil {
		return nil, err
	}

	pts := make([]bzmesh.Point, nkeep)
	base := spin * dims[1] * 3
	for ip := range pts {
		copy(pts[ip][:], flat[base+3*ip:base+3*ip+3])
	}

	return pts, nil
}

// A returns the A_nk coefficients of one spin as an nk x nb complex matrix.
// The trailing dimension of a_spin holds (re, im) pairs.
func (r *Reader) A(spin int) (*mat.CDense, error) {
	if err := r.checkSpin(spin); err != nil {
		return nil, err
	}

	return r.readComplex("a_spin", spin, r.NkSpin[spin], r.NbSpin[spin])
}

// B returns the B_qnu coefficients of one spin as an nq x natom3 complex
// matrix.
func (r *Reader) B(spin int) (*mat.CDense, error) {
	if err := r.checkSpin(spin); err != nil {
		return nil, err
	}

	return r.readComplex("b_spin", spin, r.NqSpin[spin], r.Natom3)
}

// readComplex slices an (nsppol, max_rows, max_cols, 2) variable into an
// nrows x ncols complex matrix for one spin.
func (r *Reader) readComplex(name string, spin, nrows, ncols int) (*mat.CDense, error) {
	v, err := r.f.Var(name)
	if err != nil {
		return nil, err
	}
	dims := v.Dims()
	if len(dims) != 4 || dims[0] != r.Nsppol || dims[3] != 2 || dims[1] < nrows || dims[2] < ncols {
		return nil, fmt.Errorf("varpeq: %s: %s shape %v for %dx%d: %w",
			r.Path(), name, dims, nrows, ncols, ErrBadFile)
	}
	flat, err := v.Float64s()
	if err != nil {
		return nil, err
	}

	maxRows, maxCols := dims[1], dims[2]
	data := make([]complex128, nrows*ncols)
	for i := 0; i < nrows; i++ {
		for j := 0; j < ncols; j++ {
			at := ((spin*maxRows+i)*maxCols + j) * 2
			data[i*ncols+j] = complex(flat[at], flat[at+1])
		}
	}

	return mat.NewCDense(nrows, ncols, data), nil
}

// KSampling returns the k-mesh divisions and single shift of the electron
// bands in the file. Missing or non-positive divisions mean a non-diagonal
// mesh; more than one shift row is unsupported. Both yield ErrBadSampling.
func (r *Reader) KSampling() (bzmesh.Divs, bzmesh.Point, error) {
	var divs bzmesh.Divs
	var shift bzmesh.Point

	mp, err := readIntVec(r.f, "monkhorst_pack_folding")
	if err != nil {
		return divs, shift, fmt.Errorf("varpeq: %s: non-diagonal k-meshes are not supported: %w",
			r.Path(), ErrBadSampling)
	}
	if len(mp) != 3 || mp[0] <= 0 || mp[1] <= 0 || mp[2] <= 0 {
		return divs, shift, fmt.Errorf("varpeq: %s: monkhorst_pack_folding %v: %w",
			r.Path(), mp, ErrBadSampling)
	}
	copy(divs[:], mp)

	v, err := r.f.Var("kpoint_grid_shift")
	if err != nil {
		return divs, shift, err
	}
	flat, err := v.Float64s()
	if err != nil {
		return divs, shift, err
	}
	if len(flat) != 3 {
		return divs, shift, fmt.Errorf("varpeq: %s: %d k-shifts, multiple shifts are not supported: %w",
			r.Path(), len(flat)/3, ErrBadSampling)
	}
	copy(shift[:], flat)

	return divs, shift, nil
}

// ReadEbands builds the electron-bands contract from the file: eigenvalues
// and the Fermi energy in eV, k-points in reduced coordinates.
func (r *Reader) ReadEbands() (*ebands.Bands, error) {
	return ebands.FromNC(r.f)
}

// readIntVec decodes a flat integer variable.
func readIntVec(f ncio.File, name string) ([]int, error) {
	v, err := f.Var(name)
	if err != nil {
		return nil, err
	}

	return v.Ints()
}

// readIntScalar decodes a scalar integer variable.
func readIntScalar(f ncio.File, name string) (int, error) {
	vals, err := readIntVec(f, name)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, fmt.Errorf("varpeq: %s: %q holds %d values, want scalar: %w",
			f.Path(), name, len(vals), ErrBadFile)
	}

	return vals[0], nil
}

// readFloatScalar decodes a scalar float variable.
func readFloatScalar(f ncio.File, name string) (float64, error) {
	v, err := f.Var(name)
	if err != nil {
		return 0, err
	}
	vals, err := v.Float64s()
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, fmt.Errorf("varpeq: %s: %q holds %d values, want scalar: %w",
			f.Path(), name, len(vals), ErrBadFile)
	}

	return vals[0], nil
}

// varDims returns the shape of a variable without decoding its values.
func varDims(f ncio.File, name string) ([]int, error) {
	v, err := f.Var(name)
	if err != nil {
		return nil, err
	}

	return v.Dims(), nil
}
