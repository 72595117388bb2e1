package varpeq

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ephtools/polaron/bzmesh"
)

// WriteA2BXSF exports |A_nk|^2 on the k-mesh in the XCrySDen band-grid
// format (xcrysden --bxsf FILE). The k-mesh must be Gamma-centered; mesh
// nodes removed by filtering export as zero. One band block is written per
// box component, and the "Fermi Energy" header carries the grid mean so the
// isosurface slider starts in a sensible place.
func (p *Polaron) WriteA2BXSF(w io.Writer) error {
	_, shift, err := p.NgkptAndShifts()
	if err != nil {
		return err
	}
	for d := 0; d < 3; d++ {
		if math.Abs(shift[d]) > 1e-9 {
			return fmt.Errorf("varpeq: BXSF export needs a Gamma-centered k-mesh, shift %v: %w",
				shift, ErrBadSampling)
		}
	}

	box, err := p.InsertAInBox(0)
	if err != nil {
		return err
	}

	return p.writeBXSF(w, box)
}

// WriteB2BXSF exports |B_qnu|^2 on the q-mesh in the XCrySDen band-grid
// format. The q-mesh is always Gamma-centered.
func (p *Polaron) WriteB2BXSF(w io.Writer) error {
	box, err := p.InsertBInBox(0)
	if err != nil {
		return err
	}

	return p.writeBXSF(w, box)
}

// writeBXSF writes the general-grid block: n+1 points per axis including
// the periodic replica, values with the third index fastest.
func (p *Polaron) writeBXSF(w io.Writer, box *bzmesh.Box) error {
	field := box.Abs2()
	divs := field.Divs()
	recip := reciprocalLattice(p.file.Structure.Lattice)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, " BEGIN_INFO")
	fmt.Fprintf(bw, "   Fermi Energy: %.8e\n", field.Mean())
	fmt.Fprintln(bw, " END_INFO")
	fmt.Fprintln(bw, " BEGIN_BLOCK_BANDGRID_3D")
	fmt.Fprintln(bw, " band_energies")
	fmt.Fprintln(bw, " BANDGRID_3D_BANDS")
	fmt.Fprintf(bw, " %d\n", field.Ncomp())
	fmt.Fprintf(bw, " %d %d %d\n", divs[0]+1, divs[1]+1, divs[2]+1)
	fmt.Fprintln(bw, " 0.0 0.0 0.0")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(bw, " %.10f %.10f %.10f\n", recip[i][0], recip[i][1], recip[i][2])
	}

	for c := 0; c < field.Ncomp(); c++ {
		fmt.Fprintf(bw, " BAND: %4d\n", c+1)
		for i := 0; i <= divs[0]; i++ {
			for j := 0; j <= divs[1]; j++ {
				for k := 0; k <= divs[2]; k++ {
					fmt.Fprintf(bw, " %.8e", field.At(c, i%divs[0], j%divs[1], k%divs[2]))
				}
				fmt.Fprintln(bw)
			}
		}
	}

	fmt.Fprintln(bw, " END_BANDGRID_3D")
	fmt.Fprintln(bw, " END_BLOCK_BANDGRID_3D")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("varpeq: write bxsf: %w", err)
	}

	return nil
}

// reciprocalLattice returns B = 2*pi*(A^-1)^T for lattice rows A, in
// inverse Angstrom.
func reciprocalLattice(lattice [3][3]float64) [3][3]float64 {
	a := mat.NewDense(3, 3, []float64{
		lattice[0][0], lattice[0][1], lattice[0][2],
		lattice[1][0], lattice[1][1], lattice[1][2],
		lattice[2][0], lattice[2][1], lattice[2][2],
	})
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return [3][3]float64{}
	}

	var b [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			// Transpose of the inverse: rows of B are reciprocal vectors.
			b[i][j] = 2 * math.Pi * inv.At(j, i)
		}
	}

	return b
}
