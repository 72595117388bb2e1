package varpeq

// Entry describes one column of the convergence-iteration record.
type Entry struct {
	// Name is the internal identifier, e.g. "E_pol".
	Name string
	// Label is the plain-text display label.
	Label string
	// LaTeX is the math label used in figure legends.
	LaTeX string
}

// AllEntries lists the five energy columns of the iteration record in file
// order. The sixth column, the gradient residual, is exposed separately
// under GradResName.
var AllEntries = [...]Entry{
	{Name: "E_pol", Label: "E_pol (eV)", LaTeX: `$E_{pol}$`},
	{Name: "E_el", Label: "E_el (eV)", LaTeX: `$E_{el}$`},
	{Name: "E_ph", Label: "E_ph (eV)", LaTeX: `$E_{ph}$`},
	{Name: "elph", Label: "E_elph (eV)", LaTeX: `$E_{elph}$`},
	{Name: "epsilon", Label: "eps (eV)", LaTeX: `$\varepsilon$`},
}

// GradResName is the name of the gradient-residual column.
const GradResName = "grs"

// NumIterColumns is the column count of the iteration record: the five
// entries plus the gradient residual.
const NumIterColumns = len(AllEntries) + 1

// EntryByName looks an entry up by name.
func EntryByName(name string) (Entry, bool) {
	for _, e := range AllEntries {
		if e.Name == name {
			return e, true
		}
	}

	return Entry{}, false
}
