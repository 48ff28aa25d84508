package types

import "math"

// AABB is an axis-aligned bounding box. It tracks the volume covered by a
// set of stored points the same way the BVH builder's partition loop tracks
// nmin/nmax for a work list (asset/compiler/bvh.builder.partition).
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns an AABB with inverted extents, ready to be grown via
// Expand/ExpandBox.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Expand grows the box so it also contains p.
func (b *AABB) Expand(p Vec3) {
	b.Min = MinVec3(b.Min, p)
	b.Max = MaxVec3(b.Max, p)
}

// ExpandBox grows the box so it also contains other.
func (b *AABB) ExpandBox(other AABB) {
	b.Min = MinVec3(b.Min, other.Min)
	b.Max = MaxVec3(b.Max, other.Max)
}

// Extent returns the side lengths of the box.
func (b AABB) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// LargestAxis returns the axis along which the box has the greatest extent,
// used by the balancer as the greedy "widest-spread" split heuristic.
func (b AABB) LargestAxis() Axis {
	extent := b.Extent()
	axis := AxisX
	best := extent[AxisX]
	if extent[AxisY] > best {
		axis, best = AxisY, extent[AxisY]
	}
	if extent[AxisZ] > best {
		axis = AxisZ
	}
	return axis
}
