package varpeq

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// ScfCycle holds the convergence-iteration records of one spin: the five
// energy entries plus the gradient residual, in eV, trimmed to the number
// of meaningful steps.
type ScfCycle struct {
	// Spin is the spin channel the cycle belongs to.
	Spin int
	// NumSteps is the number of meaningful iteration steps.
	NumSteps int
	// Values maps entry names (and GradResName) to per-step series of
	// length NumSteps.
	Values map[string][]float64
}

// newScfCycle reads and columnizes the iteration record.
func newScfCycle(r *Reader, spin int) (*ScfCycle, error) {
	rows, err := r.IterRec(spin)
	if err != nil {
		return nil, err
	}

	names := append(entryNames(), GradResName)
	values := make(map[string][]float64, len(names))
	for c, name := range names {
		series := make([]float64, len(rows))
		for step, row := range rows {
			series[step] = row[c]
		}
		values[name] = series
	}

	return &ScfCycle{Spin: spin, NumSteps: len(rows), Values: values}, nil
}

// Last returns the final value of the named series, or 0 for unknown names.
func (c *ScfCycle) Last(name string) float64 {
	series := c.Values[name]
	if len(series) == 0 {
		return 0
	}

	return series[len(series)-1]
}

// Converged reports whether the final gradient residual is at or below tol.
func (c *ScfCycle) Converged(tol float64) bool {
	return c.Last(GradResName) <= tol
}

// Table renders the cycle as a fixed-width text table, one row per step.
func (c *ScfCycle) Table() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "step")
	names := append(entryNames(), GradResName)
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w, "\t")

	for step := 0; step < c.NumSteps; step++ {
		fmt.Fprintf(w, "%d", step+1)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6e", c.Values[name][step])
		}
		fmt.Fprintln(w, "\t")
	}
	w.Flush()

	return b.String()
}
