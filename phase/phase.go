// Package phase defines the volumetric scattering collaborator interface
// consumed by the volume radiance estimator.
//
// The example pack has no volumetric renderer, so this interface is
// modeled directly on bsdf.BSDF's shape (spec.md §6 describes both as
// peer collaborator callbacks: "BSDF::f(queryRecord)" and
// "PhaseFunction::f(queryRecord)") rather than on a specific teacher file.
package phase

import (
	"math"

	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
)

// QueryRecord describes a single phase function evaluation: the incident
// direction wi (the photon's travel direction) and the outgoing direction
// wo (towards the viewer), both in world space.
type QueryRecord struct {
	Wi types.Vec3
	Wo types.Vec3
}

// PhaseFunction evaluates volumetric scattering.
type PhaseFunction interface {
	F(rec QueryRecord) spectrum.Spectrum
}

const invFourPi = float32(1 / (4 * math.Pi))

// Isotropic scatters light uniformly in every direction: f(wi, wo) = 1/4pi.
type Isotropic struct{}

// F implements PhaseFunction.
func (Isotropic) F(rec QueryRecord) spectrum.Spectrum {
	return spectrum.New(invFourPi, invFourPi, invFourPi)
}
