// Package photon implements a left-balanced kd-tree photon map: bulk
// storage of directional light samples, an in-place balancing pass that
// turns the flat store into an implicit heap-array kd-tree, k-nearest
// neighbour search over the balanced tree, and the density estimators
// built on top of it.
package photon

import (
	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
)

// Photon is a single stored light sample, held at full precision: Store and
// Balance never quantize anything. The compact RGBE-style power and
// quantized-angle direction/normal encodings exist only as an on-disk
// record, applied by the persistence layer (see serialize.go) when writing
// or reading a map; the estimators always see the exact values a caller
// passed to Store.
type Photon struct {
	Pos       types.Vec3
	Normal    types.Vec3
	Direction types.Vec3
	Power     spectrum.Spectrum

	Depth uint16

	// Axis is the kd-tree split axis for this node. Only meaningful for
	// inner nodes of a balanced map; zero (AxisX) otherwise.
	Axis types.Axis
}

// NewPhoton builds a Photon from its physical quantities.
func NewPhoton(pos, normal, dir types.Vec3, power spectrum.Spectrum, depth uint16) Photon {
	return Photon{
		Pos:       pos,
		Normal:    normal,
		Direction: dir,
		Power:     power,
		Depth:     depth,
	}
}

// distSquared returns the squared distance between the photon's position
// and an arbitrary point.
func (p Photon) distSquared(q types.Vec3) float32 {
	d := p.Pos.Sub(q)
	return d.Dot(d)
}
