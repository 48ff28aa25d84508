// Package bsdf defines the surface-reflectance collaborator interface that
// the radiance density estimators evaluate photons against.
//
// spec.md treats BSDF evaluation as an external collaborator supplied by
// the host renderer. This package gives it a concrete shape modeled on the
// teacher's asset/material package: a BSDF interface plus one reference
// implementation (Lambertian diffuse), enough to exercise and test the
// estimators without pulling in a full material compiler.
package bsdf

import (
	"math"

	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
)

// QueryRecord describes a single BSDF evaluation: the incident direction
// wi (pointing back towards the photon) and the outgoing direction wo
// (pointing towards the viewer), both expressed in the local shading frame
// where the surface normal is (0, 0, 1).
type QueryRecord struct {
	Wi types.Vec3
	Wo types.Vec3
}

// BSDF evaluates the bidirectional reflectance distribution function for a
// surface interaction.
type BSDF interface {
	F(rec QueryRecord) spectrum.Spectrum
}

// Lambertian is a perfectly diffuse BSDF: f(wi, wo) = reflectance / pi.
// Modeled on asset/material/bxdf.go's BxdfDiffuse case and
// asset/material/defaults.go's DefaultReflectance parameter.
type Lambertian struct {
	Reflectance spectrum.Spectrum
}

const invPi = float32(1 / math.Pi)

// F implements BSDF.
func (l Lambertian) F(rec QueryRecord) spectrum.Spectrum {
	if cosTheta(rec.Wi) <= 0 || cosTheta(rec.Wo) <= 0 {
		return spectrum.Black
	}
	return l.Reflectance.Scale(invPi)
}

// cosTheta returns the cosine of the angle between a local-frame direction
// and the shading normal (0, 0, 1).
func cosTheta(v types.Vec3) float32 {
	return v[2]
}
