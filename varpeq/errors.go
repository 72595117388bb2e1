package varpeq

import "errors"

// Sentinel errors for varpeq operations.
var (
	// ErrBadFile indicates VARPEQ variables with inconsistent shapes.
	ErrBadFile = errors.New("varpeq: inconsistent VARPEQ file")
	// ErrBadSpin indicates a spin index outside the file's spin channels.
	ErrBadSpin = errors.New("varpeq: spin index out of range")
	// ErrBadSampling indicates a k-mesh that is not diagonal, carries
	// multiple shifts, or is not Gamma-centered where required.
	ErrBadSampling = errors.New("varpeq: unsupported k-point sampling")
	// ErrTooFewPoints indicates an extrapolation with fewer than two points.
	ErrTooFewPoints = errors.New("varpeq: extrapolation needs at least two points")
	// ErrDupLabel indicates a robot label added twice.
	ErrDupLabel = errors.New("varpeq: duplicate robot label")
	// ErrMixedKinds indicates robot files with different polaron kinds.
	ErrMixedKinds = errors.New("varpeq: files mix electron and hole polarons")
	// ErrNoFiles indicates a robot operation on an empty robot.
	ErrNoFiles = errors.New("varpeq: robot holds no files")
	// ErrBadDielectric indicates dielectric tensors unusable for the
	// Frohlich coupling.
	ErrBadDielectric = errors.New("varpeq: invalid dielectric tensors")
)
