// Package phbands carries the phonon band-structure and DOS data the
// polaron plots consume. The anaddb/DDB post-processor that computes them is
// an external collaborator: frequencies and DOS arrive here as data, never
// computed. Gaussian smearing is shared with the electron side via
// ebands.Gaussian.
package phbands
