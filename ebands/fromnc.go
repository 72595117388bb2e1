package ebands

import (
	"fmt"

	"github.com/ephtools/polaron/bzmesh"
	"github.com/ephtools/polaron/ncio"
)

// haToEv converts Hartree, the unit band structures are stored in, to eV.
const haToEv = 27.211386245988

// FromNC reads the band-structure variables the ab-initio suite writes:
// eigenvalues (nsppol, nkpt, nband) and fermi_energy in Hartree (converted
// to eV here), reduced_coordinates_of_kpoints, and kpoint_weights when
// present.
func FromNC(f ncio.File) (*Bands, error) {
	eig, err := f.Var("eigenvalues")
	if err != nil {
		return nil, err
	}
	dims := eig.Dims()
	if len(dims) != 3 {
		return nil, fmt.Errorf("ebands: %s: eigenvalues shape %v: %w", f.Path(), dims, ErrBadBands)
	}
	flat, err := eig.Float64s()
	if err != nil {
		return nil, err
	}

	nsppol, nkpt, nband := dims[0], dims[1], dims[2]
	eigens := make([][][]float64, nsppol)
	for spin := 0; spin < nsppol; spin++ {
		eigens[spin] = make([][]float64, nkpt)
		for ik := 0; ik < nkpt; ik++ {
			row := make([]float64, nband)
			base := (spin*nkpt + ik) * nband
			for ib := range row {
				row[ib] = flat[base+ib] * haToEv
			}
			eigens[spin][ik] = row
		}
	}

	kv, err := f.Var("reduced_coordinates_of_kpoints")
	if err != nil {
		return nil, err
	}
	kflat, err := kv.Float64s()
	if err != nil {
		return nil, err
	}
	if len(kflat) != 3*nkpt {
		return nil, fmt.Errorf("ebands: %s: %d k-coordinates for %d k-points: %w",
			f.Path(), len(kflat), nkpt, ErrBadBands)
	}
	kpts := make([]bzmesh.Point, nkpt)
	for ik := range kpts {
		copy(kpts[ik][:], kflat[3*ik:3*ik+3])
	}

	fv, err := f.Var("fermi_energy")
	if err != nil {
		return nil, err
	}
	fvals, err := fv.Float64s()
	if err != nil {
		return nil, err
	}
	if len(fvals) != 1 {
		return nil, fmt.Errorf("ebands: %s: fermi_energy holds %d values: %w", f.Path(), len(fvals), ErrBadBands)
	}

	b := &Bands{
		Eigens:  eigens,
		Kpoints: kpts,
		Fermi:   fvals[0] * haToEv,
	}

	if f.HasVar("kpoint_weights") {
		wv, err := f.Var("kpoint_weights")
		if err != nil {
			return nil, err
		}
		weights, err := wv.Float64s()
		if err != nil {
			return nil, err
		}
		if len(weights) != nkpt {
			return nil, fmt.Errorf("ebands: %s: %d k-weights for %d k-points: %w",
				f.Path(), len(weights), nkpt, ErrBadBands)
		}
		b.KWeights = weights
	}

	return b, nil
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
