package photon

import (
	"math"

	"github.com/achilleasa/photonmap/bsdf"
	"github.com/achilleasa/photonmap/phase"
	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
)

const invPi = float32(1 / math.Pi)

// EstimateIrradiance is the unfiltered (constant-kernel) irradiance
// estimator of spec.md §4.5: a flat-disc density estimate over the photons
// returned by NNSearch, rejecting samples from the back side of a thin
// surface.
func (m *Map) EstimateIrradiance(p, n types.Vec3, searchRadius float32, maxPhotons int) spectrum.Spectrum {
	m.assertBalanced()
	result := spectrum.Black
	distSq := searchRadius * searchRadius

	buf := make([]SearchResult, maxPhotons+1)
	count := m.NNSearch(p, &distSq, maxPhotons, buf)

	for i := 0; i < count; i++ {
		ph := m.photons[buf[i].Index]
		if ph.Direction.Dot(n) < 0 {
			result = result.Add(ph.Power)
		}
	}

	if distSq <= 0 {
		return spectrum.Black
	}
	return result.Scale(m.scale * invPi / distSq)
}

// EstimateIrradianceFiltered applies Simpson's kernel ((1 - d^2/r^2)^2) to
// down-weight photons near the edge of the search disc, reducing the
// visible "splotchiness" of the unfiltered estimate.
func (m *Map) EstimateIrradianceFiltered(p, n types.Vec3, searchRadius float32, maxPhotons int) spectrum.Spectrum {
	m.assertBalanced()
	result := spectrum.Black
	distSq := searchRadius * searchRadius

	buf := make([]SearchResult, maxPhotons+1)
	count := m.NNSearch(p, &distSq, maxPhotons, buf)

	for i := 0; i < count; i++ {
		r := buf[i]
		ph := m.photons[r.Index]
		if ph.Direction.Dot(n) < 0 {
			sqrTerm := 1 - r.DistSq/distSq
			result = result.Add(ph.Power.Scale(sqrTerm * sqrTerm))
		}
	}

	if distSq <= 0 {
		return spectrum.Black
	}
	return result.Scale(m.scale * 3 * invPi / distSq)
}

// EstimateRadianceFiltered is EstimateIrradianceFiltered's surface-radiance
// counterpart: each photon's contribution is additionally weighted by the
// surface BSDF evaluated between the photon's arrival direction and the
// viewer's outgoing direction, both expressed in frame's local space.
func (m *Map) EstimateRadianceFiltered(p types.Vec3, frame types.Frame, surfaceBSDF bsdf.BSDF, wo types.Vec3, searchRadius float32, maxPhotons int) spectrum.Spectrum {
	m.assertBalanced()
	result := spectrum.Black
	distSq := searchRadius * searchRadius

	buf := make([]SearchResult, maxPhotons+1)
	count := m.NNSearch(p, &distSq, maxPhotons, buf)

	localWo := frame.ToLocal(wo)
	for i := 0; i < count; i++ {
		r := buf[i]
		ph := m.photons[r.Index]
		wi := frame.ToLocal(ph.Direction.Mul(-1))

		sqrTerm := 1 - r.DistSq/distSq
		weight := sqrTerm * sqrTerm

		f := surfaceBSDF.F(bsdf.QueryRecord{Wi: wi, Wo: localWo})
		result = result.Add(ph.Power.Mul(f).Scale(weight))
	}

	if distSq <= 0 {
		return spectrum.Black
	}
	return result.Scale(m.scale * 3 * invPi / distSq)
}

const (
	rawMinShadingCos = float32(0.1)
	rawMinPhotonCos  = float32(1e-2)
)

// EstimateRadianceRaw is the unfiltered (per-photon, no kernel) surface
// radiance estimator used by final gathering. It evaluates the BSDF's
// adjoint (importance) form and corrects for the resulting asymmetry when
// the surface uses shading normals, following spec.md §4.5's raw-estimator
// invariant. Photons deeper than maxDepth bounces, photons whose stored
// normal deviates too far from the shading normal, and photons arriving too
// close to grazing relative to their own normal are skipped. It returns the
// accumulated radiance, multiplied by the map's scale factor, and the number
// of photons that contributed.
func (m *Map) EstimateRadianceRaw(p types.Vec3, shadingFrame types.Frame, surfaceBSDF bsdf.BSDF, viewDir types.Vec3, searchRadius float32, maxDepth int) (spectrum.Spectrum, int) {
	m.assertBalanced()
	result := spectrum.Black
	resultCount := 0

	var stack [maxTraversalDepth]int32
	stackPos := 1
	stack[0] = 0

	index := int32(1)
	distSq := searchRadius * searchRadius
	localView := shadingFrame.ToLocal(viewDir)

	for index > 0 {
		current := index
		ph := &m.photons[current]

		if m.isInnerNode(int(current)) {
			distToPlane := p.Component(ph.Axis) - ph.Pos.Component(ph.Axis)
			searchBoth := distToPlane*distToPlane <= distSq

			if distToPlane > 0 {
				if m.hasRightChild(int(current)) {
					if searchBoth {
						stack[stackPos] = leftChild32(current)
						stackPos++
					}
					index = rightChild32(current)
				} else if searchBoth {
					index = leftChild32(current)
				} else {
					stackPos--
					index = stack[stackPos]
				}
			} else {
				if searchBoth && m.hasRightChild(int(current)) {
					stack[stackPos] = rightChild32(current)
					stackPos++
				}
				index = leftChild32(current)
			}
		} else {
			stackPos--
			index = stack[stackPos]
		}

		photonDistSq := ph.distSquared(p)
		if photonDistSq >= distSq {
			continue
		}

		photonNormal := ph.Normal
		wiWorld := ph.Direction.Mul(-1)

		if int(ph.Depth) > maxDepth ||
			photonNormal.Dot(shadingFrame.N) < rawMinShadingCos ||
			photonNormal.Dot(wiWorld) < rawMinPhotonCos {
			continue
		}

		wiLocal := shadingFrame.ToLocal(wiWorld)

		// Evaluate the BSDF's adjoint (importance-transport) form: wi and
		// wo are swapped relative to a direct radiance query, so the
		// viewer's direction takes the Wi slot and the photon's arrival
		// direction takes the Wo slot.
		f := surfaceBSDF.F(bsdf.QueryRecord{Wi: localView, Wo: wiLocal})

		denom := photonNormal.Dot(wiWorld)
		correction := float32(math.Abs(float64(types.CosTheta(wiLocal)))) / denom

		result = result.Add(ph.Power.Mul(f).Scale(correction))
		resultCount++
	}

	return result.Scale(m.scale), resultCount
}

// EstimateVolumeRadiance is the in-scatter estimator for participating
// media: photons are weighted by the phase function instead of a surface
// BSDF, and the normalization uses a spherical (not disc) search volume.
func (m *Map) EstimateVolumeRadiance(o, viewDir types.Vec3, pf phase.PhaseFunction, searchRadius float32, maxPhotons int) spectrum.Spectrum {
	m.assertBalanced()
	result := spectrum.Black
	distSq := searchRadius * searchRadius

	buf := make([]SearchResult, maxPhotons+1)
	count := m.NNSearch(o, &distSq, maxPhotons, buf)

	wo := viewDir.Mul(-1)
	for i := 0; i < count; i++ {
		ph := m.photons[buf[i].Index]
		f := pf.F(phase.QueryRecord{Wi: ph.Direction, Wo: wo})
		result = result.Add(ph.Power.Mul(f))
	}

	volFactor := (4.0 / 3.0) * math.Pi * float64(distSq) * math.Sqrt(float64(distSq))
	if volFactor <= 0 {
		return spectrum.Black
	}
	return result.Scale(m.scale / float32(volFactor))
}
