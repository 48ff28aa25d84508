package photon

import (
	"fmt"

	"github.com/achilleasa/photonmap/log"
	"github.com/achilleasa/photonmap/spectrum"
	"github.com/achilleasa/photonmap/types"
)

// formatVersion is bumped whenever Map's on-disk layout changes.
const formatVersion uint32 = 1

// Map is a left-balanced kd-tree over a fixed-capacity set of photons.
// Store may only be called before Balance; NNSearch and the density
// estimators may only be called after. A *Map is safe for concurrent reads
// (NNSearch, estimators) once balanced, since none of them mutate it; it is
// not safe to call Store or Balance concurrently with anything else.
type Map struct {
	logger log.Logger

	// photons is 1-indexed: photons[0] is an unused placeholder so that
	// heap-array addressing (2*i, 2*i+1) works directly on slice indices.
	photons     []Photon
	maxPhotons  int
	photonCount int

	aabb  types.AABB
	scale float32

	balanced       bool
	lastInnerNode  int
	lastRChildNode int
}

// NewMap allocates an empty map with room for up to maxPhotons entries.
func NewMap(maxPhotons int) *Map {
	if maxPhotons <= 0 {
		panic("photon: maxPhotons must be positive")
	}
	return &Map{
		logger:     log.New("photon"),
		photons:    make([]Photon, maxPhotons+1),
		maxPhotons: maxPhotons,
		aabb:       types.EmptyAABB(),
		scale:      1.0,
	}
}

// MaxPhotons returns the map's storage capacity.
func (m *Map) MaxPhotons() int { return m.maxPhotons }

// PhotonCount returns the number of photons currently stored.
func (m *Map) PhotonCount() int { return m.photonCount }

// IsBalanced reports whether Balance has been called.
func (m *Map) IsBalanced() bool { return m.balanced }

// AABB returns the bounding box of all stored photon positions.
func (m *Map) AABB() types.AABB { return m.aabb }

// Scale returns the current power scale factor applied by the estimators.
func (m *Map) Scale() float32 { return m.scale }

// SetScale sets the power scale factor applied by the estimators, typically
// 1/N for N emitted photons.
func (m *Map) SetScale(scale float32) { m.scale = scale }

// Store constructs a photon from its physical quantities and adds it to the
// map. It returns false once the map is full; callers should treat this as
// "stop emitting", not an error. Store panics if called after Balance.
func (m *Map) Store(pos, normal, dir types.Vec3, power spectrum.Spectrum, depth uint16) bool {
	return m.StorePhoton(NewPhoton(pos, normal, dir, power, depth))
}

// StorePhoton adds a fully constructed photon to the map. It returns false
// once the map is full. StorePhoton panics if called after Balance.
func (m *Map) StorePhoton(p Photon) bool {
	if m.balanced {
		panic("photon: Store called on a balanced map")
	}
	if m.photonCount >= m.maxPhotons {
		return false
	}
	m.aabb.Expand(p.Pos)
	m.photonCount++
	m.photons[m.photonCount] = p
	return true
}

// isInnerNode reports whether the node at the given 1-based array index has
// at least a left child.
func (m *Map) isInnerNode(i int) bool { return i <= m.lastInnerNode }

// hasRightChild reports whether the node at the given 1-based array index
// has a right child.
func (m *Map) hasRightChild(i int) bool { return i <= m.lastRChildNode }

func (m *Map) assertBalanced() {
	if !m.balanced {
		panic("photon: map must be balanced before querying")
	}
}

func leftChild(i int) int  { return 2 * i }
func rightChild(i int) int { return 2*i + 1 }

func (m *Map) String() string {
	return fmt.Sprintf(
		"Map[aabb=%v, photonCount=%d, maxPhotons=%d, balanced=%t, scale=%f]",
		m.aabb, m.photonCount, m.maxPhotons, m.balanced, m.scale,
	)
}
