package photon

import (
	"math"

	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
)

// expTable maps a stored exponent byte back to its power-of-two scale
// factor. Computed once at package load instead of per-photon, mirroring
// the teacher's use of a precomputed lookup table rather than a runtime
// math.Pow call on every decode (Photon::m_expTable in the reference
// implementation this package's on-disk layout is grounded on).
var expTable [256]float32

func init() {
	for i := range expTable {
		expTable[i] = float32(math.Ldexp(1, i-128))
	}
}

// packPower encodes a spectrum as three mantissa bytes plus a shared
// exponent byte, the RGBE-style compressed representation spec.md §3
// allows as "a representation choice, not a contract". Only the on-disk
// record uses this encoded form; the in-memory Photon keeps the original
// float32 triple, so Serialize quantizes the power and Deserialize returns
// the quantized value.
func packPower(s spectrum.Spectrum) (mantissa [3]uint8, exponent uint8) {
	maxChan := s[0]
	if s[1] > maxChan {
		maxChan = s[1]
	}
	if s[2] > maxChan {
		maxChan = s[2]
	}
	if maxChan <= 0 {
		return [3]uint8{}, 0
	}

	_, exp := math.Frexp(float64(maxChan))
	idx := exp + 128
	if idx < 0 {
		idx = 0
	}
	if idx > 255 {
		idx = 255
	}

	scale := float32(255.0) / expTable[idx]
	return [3]uint8{
		quantizeChannel(s[0], scale),
		quantizeChannel(s[1], scale),
		quantizeChannel(s[2], scale),
	}, uint8(idx)
}

func quantizeChannel(v, scale float32) uint8 {
	q := v*scale + 0.5
	if q < 0 {
		q = 0
	}
	if q > 255 {
		q = 255
	}
	return uint8(q)
}

// unpackPower is the inverse of packPower.
func unpackPower(mantissa [3]uint8, exponent uint8) spectrum.Spectrum {
	scale := expTable[exponent] / 255.0
	return spectrum.New(
		float32(mantissa[0])*scale,
		float32(mantissa[1])*scale,
		float32(mantissa[2])*scale,
	)
}

const (
	twoPi      = float32(2 * math.Pi)
	quantSteps = float32(65535)
)

// packDirection encodes a unit vector as a quantized polar angle pair, the
// other half of the compact on-disk photon record. v is assumed normalized;
// callers with a non-unit direction should normalize it first.
func packDirection(v types.Vec3) (theta, phi uint16) {
	z := v[2]
	switch {
	case z > 1:
		z = 1
	case z < -1:
		z = -1
	}
	thetaF := float32(math.Acos(float64(z)))
	phiF := float32(math.Atan2(float64(v[1]), float64(v[0])))
	if phiF < 0 {
		phiF += twoPi
	}
	theta = uint16(thetaF / float32(math.Pi) * quantSteps)
	phi = uint16(phiF / twoPi * quantSteps)
	return theta, phi
}

// unpackDirection is the inverse of packDirection.
func unpackDirection(theta, phi uint16) types.Vec3 {
	thetaF := float32(theta) / quantSteps * float32(math.Pi)
	phiF := float32(phi) / quantSteps * twoPi
	sinTheta := float32(math.Sin(float64(thetaF)))
	return types.Vec3{
		sinTheta * float32(math.Cos(float64(phiF))),
		sinTheta * float32(math.Sin(float64(phiF))),
		float32(math.Cos(float64(thetaF))),
	}
}
