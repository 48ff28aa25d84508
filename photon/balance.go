package photon

import (
	"time"

	"github.com/achilleasa/photonmap/types"
)

// leftSubtreeSize returns the number of nodes the left subtree of a fully
// left-balanced binary tree over treeSize nodes must hold (spec.md §4.2).
// treeSize must be greater than 1.
func leftSubtreeSize(treeSize int) int {
	p := 1
	for 2*p <= treeSize {
		p *= 2
	}
	remaining := treeSize - p + 1
	if 2*remaining < p {
		p = p/2 + remaining
	}
	return p - 1
}

// Balance rearranges the stored photons into the implicit-heap layout of a
// left-balanced kd-tree. It must be called exactly once, after every Store
// call and before any query. Balance panics if the map is already balanced.
func (m *Map) Balance() {
	if m.balanced {
		panic("photon: map already balanced")
	}
	if m.photonCount == 0 {
		m.logger.Infof("photon map: no need for balancing, no photons available")
		m.balanced = true
		return
	}

	// indices tracks, per working position, which original photon
	// currently occupies it; perm records, for each final heap position,
	// the original index of the photon that ends up there. Shuffling these int32 arrays instead
	// of the (larger) photon records themselves is what keeps balancing
	// cheap.
	indices := make([]int32, m.photonCount+1)
	perm := make([]int32, m.photonCount+1)
	for i := range indices {
		indices[i] = int32(i)
	}

	start := time.Now()
	m.balanceRecursive(indices, 1, m.photonCount+1, 1, m.aabb, perm)
	m.logger.Debugf("photon map: balanced %d photons in %s", m.photonCount, time.Since(start))

	permuteInPlace(m.photons, perm)

	m.lastInnerNode = m.photonCount / 2
	m.lastRChildNode = (m.photonCount - 1) / 2
	m.balanced = true
}

// balanceRecursive partitions indices[sortStart:sortEnd] around a pivot
// chosen so the resulting tree is left-balanced, records the pivot's original
// index at its heap slot in perm, and recurses into the two halves. aabb is passed by
// value on purpose: each recursive call narrows its own copy along the
// split axis, which gives the reference implementation's
// swap-before/restore-after dance for free.
func (m *Map) balanceRecursive(indices []int32, sortStart, sortEnd, heapIndex int, aabb types.AABB, perm []int32) {
	leftSize := leftSubtreeSize(sortEnd - sortStart)
	pivot := sortStart + leftSize

	splitAxis := aabb.LargestAxis()
	m.quickPartition(indices, sortStart, sortEnd, pivot, splitAxis)

	pivotPhotonIdx := indices[pivot]
	splitPos := m.photons[pivotPhotonIdx].Pos.Component(splitAxis)

	perm[heapIndex] = pivotPhotonIdx
	m.photons[pivotPhotonIdx].Axis = splitAxis

	if pivot > sortStart {
		if pivot > sortStart+1 {
			leftAABB := aabb
			leftAABB.Max = leftAABB.Max.WithComponent(splitAxis, splitPos)
			m.balanceRecursive(indices, sortStart, pivot, leftChild(heapIndex), leftAABB, perm)
		} else {
			perm[leftChild(heapIndex)] = indices[sortStart]
		}
	}

	if pivot < sortEnd-1 {
		if pivot < sortEnd-2 {
			rightAABB := aabb
			rightAABB.Min = rightAABB.Min.WithComponent(splitAxis, splitPos)
			m.balanceRecursive(indices, pivot+1, sortEnd, rightChild(heapIndex), rightAABB, perm)
		} else {
			perm[rightChild(heapIndex)] = indices[sortEnd-1]
		}
	}
}

// quickPartition repeatedly applies guardedPartition until the entry at
// position pivot compares correctly against every other entry in
// indices[left:right), i.e. it performs a quickselect rather than a full
// sort. axis selects which coordinate of the referenced photon's position
// is compared.
func (m *Map) quickPartition(indices []int32, left, right, pivot int, axis types.Axis) {
	right--
	for right > left {
		pivotValue := m.photons[indices[right]].Pos.Component(axis)

		mid := guardedPartition(left, right,
			func(i int) bool { return m.photons[indices[i]].Pos.Component(axis) < pivotValue },
			func(i int) bool { return m.photons[indices[i]].Pos.Component(axis) > pivotValue },
			func(i, j int) { indices[i], indices[j] = indices[j], indices[i] },
		)
		indices[mid], indices[right] = indices[right], indices[mid]

		switch {
		case mid > pivot:
			right = mid - 1
		case mid < pivot:
			left = mid + 1
		default:
			return
		}
	}
}

// permuteInPlace rearranges photons so that photons[i] becomes what was
// originally at photons[perm[i]], for every i in [1, len(perm)), using
// perm itself as the cycle-following function. Slots at or beyond len(perm)
// (unused capacity) are left untouched. This applies the balance
// permutation with a single pass over each cycle and O(1) extra space
// beyond a bit for cycle tracking, avoiding a second full-size photon
// array.
func permuteInPlace(photons []Photon, perm []int32) {
	n := len(perm)
	visited := make([]bool, n)
	for i := 1; i < n; i++ {
		if visited[i] {
			continue
		}
		cycleStart := i
		saved := photons[i]
		j := i
		for {
			visited[j] = true
			k := int(perm[j])
			if k == cycleStart {
				photons[j] = saved
				break
			}
			photons[j] = photons[k]
			j = k
		}
	}
}
