package varpeq_test

import (
	"fmt"

	"github.com/ephtools/polaron/varpeq"
)

// ExampleMakovPayne extrapolates a polaron formation energy to the
// infinite-supercell limit from three mesh densities.
func ExampleMakovPayne() {
	// Inverse supercell sizes (densest mesh first) and the matching
	// formation energies in eV.
	xs := []float64{0.010, 0.020, 0.040}
	ys := []float64{-1.48, -1.46, -1.42}

	fits, _ := varpeq.MakovPayne(xs, ys)
	for _, fit := range fits {
		fmt.Printf("npts=%d E(0)=%.3f eV\n", fit.NumPoints, fit.Intercept)
	}
	// Output:
	// npts=2 E(0)=-1.500 eV
	// npts=3 E(0)=-1.500 eV
}

// ExampleFrohlichKappa evaluates the Frohlich screening constant for an
// isotropic crystal.
func ExampleFrohlichKappa() {
	epsInf := [3][3]float64{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}}
	eps0 := [3][3]float64{{12, 0, 0}, {0, 12, 0}, {0, 0, 12}}

	kappa, _ := varpeq.FrohlichKappa(epsInf, eps0)
	fmt.Printf("kappa = %.1f\n", kappa)
	// Output:
	// kappa = 6.0
}
