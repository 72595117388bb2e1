package crystal

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ephtools/polaron/ncio"
)

// ErrBadStructure indicates file variables that do not describe a
// consistent unit cell.
var ErrBadStructure = errors.New("crystal: inconsistent structure data")

// BohrToAng converts Bohr radii to Angstrom.
const BohrToAng = 0.529177210903

// symbols maps the atomic number Z to the element symbol; index 0 is unused.
var symbols = [...]string{"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr",
}

// Symbol returns the element symbol for the atomic number z, or "X<z>" when
// z is outside the known table.
func Symbol(z int) string {
	if z >= 1 && z < len(symbols) {
		return symbols[z]
	}

	return fmt.Sprintf("X%d", z)
}

// Structure is the crystal-structure contract: lattice vectors in Angstrom
// (rows are vectors), one element symbol per atom, and atomic positions in
// fractional coordinates of the lattice.
type Structure struct {
	// Lattice holds the three lattice vectors as rows, in Angstrom.
	Lattice [3][3]float64
	// Species holds the element symbol of each atom.
	Species []string
	// FracCoords holds the reduced coordinates of each atom.
	FracCoords [][3]float64
}

// NumAtoms returns the number of atoms in the cell.
func (s Structure) NumAtoms() int { return len(s.Species) }

// Volume returns the unit-cell volume in Angstrom^3.
func (s Structure) Volume() float64 {
	m := mat.NewDense(3, 3, []float64{
		s.Lattice[0][0], s.Lattice[0][1], s.Lattice[0][2],
		s.Lattice[1][0], s.Lattice[1][1], s.Lattice[1][2],
		s.Lattice[2][0], s.Lattice[2][1], s.Lattice[2][2],
	})

	return math.Abs(mat.Det(m))
}

// VolumeBohr returns the unit-cell volume in Bohr^3.
func (s Structure) VolumeBohr() float64 {
	const angToBohr = 1.0 / BohrToAng

	return s.Volume() * angToBohr * angToBohr * angToBohr
}

// CartCoords returns the cartesian positions in Angstrom, row convention
// cart = frac . Lattice.
func (s Structure) CartCoords() [][3]float64 {
	cart := make([][3]float64, len(s.FracCoords))
	for ia, f := range s.FracCoords {
		for d := 0; d < 3; d++ {
			cart[ia][d] = f[0]*s.Lattice[0][d] + f[1]*s.Lattice[1][d] + f[2]*s.Lattice[2][d]
		}
	}

	return cart
}

// Formula returns the reduced chemical formula, species in first-seen order
// with unit counts omitted, e.g. "LiF" or "Mg2Si".
func (s Structure) Formula() string {
	var order []string
	counts := map[string]int{}
	for _, sp := range s.Species {
		if counts[sp] == 0 {
			order = append(order, sp)
		}
		counts[sp]++
	}

	var b strings.Builder
	for _, sp := range order {
		b.WriteString(sp)
		if counts[sp] > 1 {
			fmt.Fprintf(&b, "%d", counts[sp])
		}
	}

	return b.String()
}

// String returns a short human-readable cell summary.
func (s Structure) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Formula: %s (%d atoms), volume: %.4f Ang^3\n", s.Formula(), s.NumAtoms(), s.Volume())
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "  a%d: [%10.6f %10.6f %10.6f] Ang\n", i+1, s.Lattice[i][0], s.Lattice[i][1], s.Lattice[i][2])
	}
	for ia, sp := range s.Species {
		f := s.FracCoords[ia]
		fmt.Fprintf(&b, "  %-2s  [%8.5f %8.5f %8.5f]\n", sp, f[0], f[1], f[2])
	}

	return b.String()
}

// FromNC reads the structure from the variables the ab-initio suite writes:
// primitive_vectors in Bohr (converted to Angstrom here),
// reduced_atom_positions, atom_species (one-based type index per atom), and
// atomic_numbers (Z per type).
func FromNC(f ncio.File) (Structure, error) {
	latVar, err := f.Var("primitive_vectors")
	if err != nil {
		return Structure{}, err
	}
	lat, err := latVar.Float64Matrix()
	if err != nil {
		return Structure{}, err
	}
	if len(lat) != 3 || len(lat[0]) != 3 {
		return Structure{}, fmt.Errorf("crystal: primitive_vectors shape: %w", ErrBadStructure)
	}

	posVar, err := f.Var("reduced_atom_positions")
	if err != nil {
		return Structure{}, err
	}
	pos, err := posVar.Float64Matrix()
	if err != nil {
		return Structure{}, err
	}

	typVar, err := f.Var("atom_species")
	if err != nil {
		return Structure{}, err
	}
	types, err := typVar.Ints()
	if err != nil {
		return Structure{}, err
	}

	zVar, err := f.Var("atomic_numbers")
	if err != nil {
		return Structure{}, err
	}
	zs, err := zVar.Float64s()
	if err != nil {
		return Structure{}, err
	}

	if len(pos) != len(types) {
		return Structure{}, fmt.Errorf("crystal: %d positions vs %d species: %w", len(pos), len(types), ErrBadStructure)
	}

	var s Structure
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s.Lattice[i][j] = lat[i][j] * BohrToAng
		}
	}

	s.Species = make([]string, len(types))
	s.FracCoords = make([][3]float64, len(pos))
	for ia, typ := range types {
		if typ < 1 || typ > len(zs) {
			return Structure{}, fmt.Errorf("crystal: atom %d has species index %d of %d types: %w",
				ia, typ, len(zs), ErrBadStructure)
		}
		s.Species[ia] = Symbol(int(zs[typ-1]))
		if len(pos[ia]) != 3 {
			return Structure{}, fmt.Errorf("crystal: atom %d position has %d coordinates: %w",
				ia, len(pos[ia]), ErrBadStructure)
		}
		copy(s.FracCoords[ia][:], pos[ia])
	}

	return s, nil
}
