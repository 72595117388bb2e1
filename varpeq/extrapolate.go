package varpeq

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"
)

// Extrapolation is one Makov-Payne fit: a degree-1 polynomial through the
// first NumPoints abscissae, reported at x = 0 (the infinite-size limit).
type Extrapolation struct {
	// NumPoints is the number of leading points used by the fit.
	NumPoints int
	// Slope and Intercept parameterize the fit y = Intercept + Slope*x.
	Slope, Intercept float64
}

// MakovPayne fits y(x) = a + b*x over growing prefixes of (xs, ys): one fit
// per nn = 2..len(xs) leading points. xs is the inverse supercell size
// 1/(nk_tot * V^(1/3)); the intercept a is the extrapolated infinite-size
// value. Returns ErrTooFewPoints unless len(xs) == len(ys) >= 2.
func MakovPayne(xs, ys []float64) ([]Extrapolation, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("varpeq: MakovPayne: %d xs vs %d ys: %w", len(xs), len(ys), ErrTooFewPoints)
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("varpeq: MakovPayne: %d points: %w", len(xs), ErrTooFewPoints)
	}

	fits := make([]Extrapolation, 0, len(xs)-1)
	for nn := 2; nn <= len(xs); nn++ {
		alpha, beta := stat.LinearRegression(xs[:nn], ys[:nn], nil, false)
		fits = append(fits, Extrapolation{NumPoints: nn, Slope: beta, Intercept: alpha})
	}

	return fits, nil
}

// ConvergenceTable tabulates extrapolated entry values: one row per number
// of fit points, one column per entry.
type ConvergenceTable struct {
	// EntryNames are the column names in display order.
	EntryNames []string
	// Npts holds the row keys: the number of leading points per fit.
	Npts []int
	// Rows holds the extrapolated values, Rows[i][j] for Npts[i] and
	// EntryNames[j], in eV.
	Rows [][]float64
}

// String renders the table fixed-width with the npts key first.
func (t *ConvergenceTable) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "npts")
	for _, name := range t.EntryNames {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w, "\t")

	for i, npts := range t.Npts {
		fmt.Fprintf(w, "%d", npts)
		for _, v := range t.Rows[i] {
			fmt.Fprintf(w, "\t%.6f", v)
		}
		fmt.Fprintln(w, "\t")
	}
	w.Flush()

	return b.String()
}

// WriteCSV writes the table as CSV with an npts column first.
func (t *ConvergenceTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"npts"}, t.EntryNames...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("varpeq: write csv header: %w", err)
	}

	record := make([]string, len(header))
	for i, npts := range t.Npts {
		record[0] = strconv.Itoa(npts)
		for j, v := range t.Rows[i] {
			record[j+1] = strconv.FormatFloat(v, 'g', 10, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("varpeq: write csv row %d: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}
