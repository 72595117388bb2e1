package varpeq

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Robot aggregates several VARPEQ files, sorts them by k-mesh density, and
// fits convergence trends across them. Labels keep insertion order until a
// sorted view is requested.
type Robot struct {
	labels []string
	files  map[string]*File
}

// NewRobot returns an empty Robot.
func NewRobot() *Robot {
	return &Robot{files: make(map[string]*File)}
}

// OpenFiles opens every path and labels each file with its path. Already
// opened files are closed when a later open fails.
func OpenFiles(paths ...string) (*Robot, error) {
	r := NewRobot()
	for _, path := range paths {
		f, err := Open(path)
		if err != nil {
			r.Close()

			return nil, err
		}
		if err := r.Add(path, f); err != nil {
			f.Close()
			r.Close()

			return nil, err
		}
	}

	return r, nil
}

// Add registers f under label. Duplicate labels yield ErrDupLabel.
func (r *Robot) Add(label string, f *File) error {
	if _, ok := r.files[label]; ok {
		return fmt.Errorf("varpeq: robot: %q: %w", label, ErrDupLabel)
	}
	r.labels = append(r.labels, label)
	r.files[label] = f

	return nil
}

// Len returns the number of files.
func (r *Robot) Len() int { return len(r.labels) }

// Labels returns the labels in insertion order.
func (r *Robot) Labels() []string {
	out := make([]string, len(r.labels))
	copy(out, r.labels)

	return out
}

// File returns the file registered under label, or nil.
func (r *Robot) File(label string) *File { return r.files[label] }

// Close closes every file, returning the first error.
func (r *Robot) Close() error {
	var first error
	for _, label := range r.labels {
		if err := r.files[label].Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// KData holds the per-file final iteration values across the robot, sorted
// by the total number of k-divisions in DESCENDING order (densest mesh
// first), as the extrapolation wants them.
type KData struct {
	// Labels are the file labels in sorted order.
	Labels []string
	// NkTot is the k-division product n1*n2*n3 per file.
	NkTot []int
	// XsInv is the inverse supercell size 1/(nk_tot * V_Bohr^(1/3)) per
	// file, in inverse Bohr.
	XsInv []float64
	// Values maps each entry name (plus GradResName) to per-file final
	// values in eV.
	Values map[string][]float64
}

// KData collects the final-iteration values of every file for one spin.
// Files disagreeing on the polaron kind yield ErrMixedKinds; an empty robot
// yields ErrNoFiles.
func (r *Robot) KData(spin int) (*KData, error) {
	if r.Len() == 0 {
		return nil, fmt.Errorf("varpeq: KData: %w", ErrNoFiles)
	}

	type fileRow struct {
		label string
		nkTot int
		xsInv float64
		last  map[string]float64
	}

	pkind := ""
	rows := make([]fileRow, 0, r.Len())
	for _, label := range r.labels {
		f := r.files[label]
		if pkind == "" {
			pkind = f.Pkind()
		} else if f.Pkind() != pkind {
			return nil, fmt.Errorf("varpeq: KData: %q is a %s polaron among %s ones: %w",
				label, f.Pkind(), pkind, ErrMixedKinds)
		}

		divs, _, err := f.r.KSampling()
		if err != nil {
			return nil, err
		}
		last, err := f.LastIteration(spin)
		if err != nil {
			return nil, err
		}

		nkTot := divs.Count()
		rows = append(rows, fileRow{
			label: label,
			nkTot: nkTot,
			xsInv: 1.0 / (float64(nkTot) * math.Cbrt(f.Structure.VolumeBohr())),
			last:  last,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].nkTot > rows[j].nkTot })

	kd := &KData{
		Labels: make([]string, len(rows)),
		NkTot:  make([]int, len(rows)),
		XsInv:  make([]float64, len(rows)),
		Values: make(map[string][]float64, NumIterColumns),
	}
	names := append(entryNames(), GradResName)
	for _, name := range names {
		kd.Values[name] = make([]float64, len(rows))
	}
	for i, row := range rows {
		kd.Labels[i] = row.label
		kd.NkTot[i] = row.nkTot
		kd.XsInv[i] = row.xsInv
		for _, name := range names {
			kd.Values[name][i] = row.last[name]
		}
	}

	return kd, nil
}

// MakovPayneTable extrapolates every entry over growing file prefixes:
// one row per npts = 2..Len(), one column per entry.
func (r *Robot) MakovPayneTable(spin int) (*ConvergenceTable, error) {
	kd, err := r.KData(spin)
	if err != nil {
		return nil, err
	}

	names := entryNames()
	t := &ConvergenceTable{EntryNames: names}
	for nn := 2; nn <= len(kd.XsInv); nn++ {
		t.Npts = append(t.Npts, nn)
	}
	t.Rows = make([][]float64, len(t.Npts))
	for i := range t.Rows {
		t.Rows[i] = make([]float64, len(names))
	}

	for j, name := range names {
		fits, err := MakovPayne(kd.XsInv, kd.Values[name])
		if err != nil {
			return nil, err
		}
		for i, fit := range fits {
			t.Rows[i][j] = fit.Intercept
		}
	}

	return t, nil
}

// String renders the file inventory with the per-file parameters.
func (r *Robot) String() string {
	var b strings.Builder
	r.WriteString(&b)

	return b.String()
}

// WriteString writes the inventory to w.
func (r *Robot) WriteString(w io.Writer) {
	fmt.Fprintf(w, "Robot with %d file(s)\n", r.Len())
	for _, label := range r.labels {
		f := r.files[label]
		fmt.Fprintf(w, "\n%s\n", marquee(label, '-'))
		for _, p := range f.Params() {
			fmt.Fprintf(w, "%s: %s\n", p.Key, p.Value)
		}
	}
}
