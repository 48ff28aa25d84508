// Package spectrum defines the radiometric power/radiance carrier used by
// stored photons and by the density estimators that consume them.
//
// The teacher repo represents material colors inline as a types.Vec3
// (scene/material.go's Diffuse/Emissive fields); photon power needs the
// same three-channel arithmetic plus the accumulation operations the
// estimators perform (+=, scalar *, element-wise *), so it gets its own
// named type instead of being passed around as a bare Vec3.
package spectrum

import "github.com/achilleasa/photonmap/types"

// Spectrum is an RGB-like radiometric quantity.
type Spectrum types.Vec3

// Black is the zero spectrum.
var Black = Spectrum{}

// New builds a spectrum from its three channel values.
func New(r, g, b float32) Spectrum {
	return Spectrum{r, g, b}
}

// Add returns the sum of two spectra.
func (s Spectrum) Add(o Spectrum) Spectrum {
	return Spectrum{s[0] + o[0], s[1] + o[1], s[2] + o[2]}
}

// Scale multiplies every channel by a scalar.
func (s Spectrum) Scale(f float32) Spectrum {
	return Spectrum{s[0] * f, s[1] * f, s[2] * f}
}

// Mul multiplies two spectra channel-wise.
func (s Spectrum) Mul(o Spectrum) Spectrum {
	return Spectrum{s[0] * o[0], s[1] * o[1], s[2] * o[2]}
}

// IsZero reports whether every channel is exactly zero.
func (s Spectrum) IsZero() bool {
	return s[0] == 0 && s[1] == 0 && s[2] == 0
}
