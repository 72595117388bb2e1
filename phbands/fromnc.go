package phbands

import (
	"fmt"

	"github.com/ephtools/polaron/bzmesh"
	"github.com/ephtools/polaron/ncio"
)

// haToEv converts Hartree, the unit phonon files are stored in, to eV.
const haToEv = 27.211386245988

// FromNC reads phonon frequencies and q-points: phfreqs (nqpt, 3*natom) in
// Hartree, converted to eV here, plus qpoints or
// reduced_coordinates_of_qpoints in reduced coordinates.
func FromNC(f ncio.File) (*Bands, error) {
	fv, err := f.Var("phfreqs")
	if err != nil {
		return nil, err
	}
	dims := fv.Dims()
	if len(dims) != 2 {
		return nil, fmt.Errorf("phbands: %s: phfreqs shape %v: %w", f.Path(), dims, ErrBadBands)
	}
	flat, err := fv.Float64s()
	if err != nil {
		return nil, err
	}

	nqpt, nmode := dims[0], dims[1]
	freqs := make([][]float64, nqpt)
	for iq := range freqs {
		row := make([]float64, nmode)
		for nu := range row {
			row[nu] = flat[iq*nmode+nu] * haToEv
		}
		freqs[iq] = row
	}

	qname := "qpoints"
	if !f.HasVar(qname) {
		qname = "reduced_coordinates_of_qpoints"
	}
	qv, err := f.Var(qname)
	if err != nil {
		return nil, err
	}
	qflat, err := qv.Float64s()
	if err != nil {
		return nil, err
	}
	if len(qflat) != 3*nqpt {
		return nil, fmt.Errorf("phbands: %s: %d q-coordinates for %d q-points: %w",
			f.Path(), len(qflat), nqpt, ErrBadBands)
	}
	qpts := make([]bzmesh.Point, nqpt)
	for iq := range qpts {
		copy(qpts[iq][:], qflat[3*iq:3*iq+3])
	}

	return &Bands{Freqs: freqs, Qpoints: qpts}, nil
}

// OpenNC opens path with the netCDF backend and reads the bands.
func OpenNC(path string) (*Bands, error) {
	f, err := ncio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return FromNC(f)
}
