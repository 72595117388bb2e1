package varpeq

import "fmt"

// FrohlichKappa evaluates the Frohlich dielectric coupling constant
// kappa = 1 / (1/eps_inf - 1/eps_0) from the electronic (high-frequency)
// and static dielectric tensors, using spherical averages trace/3. Both
// averages must be positive and eps_inf strictly below eps_0; anything else
// yields ErrBadDielectric.
func FrohlichKappa(epsInf, eps0 [3][3]float64) (float64, error) {
	einf := (epsInf[0][0] + epsInf[1][1] + epsInf[2][2]) / 3
	e0 := (eps0[0][0] + eps0[1][1] + eps0[2][2]) / 3

	if einf <= 0 || e0 <= 0 {
		return 0, fmt.Errorf("varpeq: dielectric averages eps_inf %g, eps_0 %g must be positive: %w",
			einf, e0, ErrBadDielectric)
	}
	if einf >= e0 {
		return 0, fmt.Errorf("varpeq: eps_inf %g must lie below eps_0 %g: %w", einf, e0, ErrBadDielectric)
	}

	return 1.0 / (1.0/einf - 1.0/e0), nil
}
