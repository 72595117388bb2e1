package varpeq

import (
	"fmt"
	"io"
	"strings"

	"github.com/ephtools/polaron/crystal"
	"github.com/ephtools/polaron/ebands"
	"github.com/ephtools/polaron/ncio"
)

// File is an open VARPEQ output file: the crystal structure, the electron
// bands, and one Polaron per spin channel.
type File struct {
	nc ncio.File
	r  *Reader

	// Structure is the crystal the polaron forms in.
	Structure crystal.Structure
	// Ebands are the electron bands stored in the file (IBZ sampling).
	Ebands *ebands.Bands

	polarons []*Polaron
}

// Open opens a VARPEQ.nc file from disk.
func Open(path string) (*File, error) {
	nc, err := ncio.Open(path)
	if err != nil {
		return nil, err
	}
	f, err := NewFile(nc)
	if err != nil {
		nc.Close()

		return nil, err
	}

	return f, nil
}

// NewFile wraps an already open ncio.File. The File takes ownership: Close
// closes the underlying file.
func NewFile(nc ncio.File) (*File, error) {
	r, err := NewReader(nc)
	if err != nil {
		return nil, err
	}

	structure, err := crystal.FromNC(nc)
	if err != nil {
		return nil, err
	}

	eb, err := r.ReadEbands()
	if err != nil {
		return nil, err
	}

	f := &File{nc: nc, r: r, Structure: structure, Ebands: eb}

	f.polarons = make([]*Polaron, r.Nsppol)
	for spin := 0; spin < r.Nsppol; spin++ {
		p, err := newPolaron(f, spin)
		if err != nil {
			return nil, err
		}
		f.polarons[spin] = p
	}

	return f, nil
}

// Close closes the underlying file.
func (f *File) Close() error { return f.nc.Close() }

// Path returns the file location.
func (f *File) Path() string { return f.nc.Path() }

// Reader exposes the low-level variable reader.
func (f *File) Reader() *Reader { return f.r }

// NumSpins returns the number of spin channels.
func (f *File) NumSpins() int { return f.r.Nsppol }

// Pkind returns the polaron kind, "electron" or "hole".
func (f *File) Pkind() string { return f.r.Pkind }

// Polaron returns the per-spin result container, or nil for an out-of-range
// spin.
func (f *File) Polaron(spin int) *Polaron {
	if spin < 0 || spin >= len(f.polarons) {
		return nil
	}

	return f.polarons[spin]
}

// Param is one convergence-parameter row of the file report.
type Param struct {
	Key   string
	Value string
}

// Params returns the convergence parameters in display order.
func (f *File) Params() []Param {
	return []Param{
		{Key: "varpeq_pkind", Value: f.r.Pkind},
		{Key: "ngqpt", Value: formatDivs(f.r.Ngqpt)},
		{Key: "nkbz", Value: fmt.Sprintf("%d", f.r.NkBZ)},
		{Key: "nqbz", Value: fmt.Sprintf("%d", f.r.NqBZ)},
		{Key: "nstep", Value: fmt.Sprintf("%d", f.r.VarpeqNstep)},
		{Key: "tolgrs", Value: fmt.Sprintf("%.1e", f.r.Tolgrs)},
	}
}

// LastIteration returns the final values of the five entries plus the
// gradient residual for one spin, in eV.
func (f *File) LastIteration(spin int) (map[string]float64, error) {
	rows, err := f.r.IterRec(spin)
	if err != nil {
		return nil, err
	}
	last := rows[len(rows)-1]

	out := make(map[string]float64, NumIterColumns)
	for i, e := range AllEntries {
		out[e.Name] = last[i]
	}
	out[GradResName] = last[len(AllEntries)]

	return out, nil
}

// String renders the marquee-sectioned text report: structure, bands
// summary, parameters, and one polaron block per spin.
func (f *File) String() string {
	var b strings.Builder
	f.WriteString(&b)

	return b.String()
}

// WriteString writes the text report to w.
func (f *File) WriteString(w io.Writer) {
	fmt.Fprintln(w, marquee("File Info", '='))
	fmt.Fprintf(w, "path: %s\n\n", f.Path())

	fmt.Fprintln(w, marquee("Structure", '='))
	fmt.Fprint(w, f.Structure.String())
	fmt.Fprintln(w)

	fmt.Fprintln(w, marquee("Electronic Bands", '='))
	fmt.Fprintf(w, "nsppol: %d, nkpt: %d, nband: %d, fermi: %.4f eV\n",
		f.Ebands.NumSpins(), f.Ebands.NumKpoints(), f.Ebands.NumBands(), f.Ebands.Fermi)
	if vbm, cbm, ok := f.Ebands.FundamentalGap(0); ok {
		fmt.Fprintf(w, "fundamental gap: %.4f eV (vbm %.4f, cbm %.4f)\n", cbm-vbm, vbm, cbm)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "VARPEQ parameters:")
	for _, p := range f.Params() {
		fmt.Fprintf(w, "%s: %s\n", p.Key, p.Value)
	}

	for _, p := range f.polarons {
		fmt.Fprintln(w)
		fmt.Fprint(w, p.String())
	}
}
