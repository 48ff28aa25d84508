package photon

import (
	"container/heap"

	"github.com/achilleasa/photonmap/types"
)

// maxTraversalDepth bounds the explicit traversal stack used by NNSearch.
// A left-balanced kd-tree over N photons has depth O(log2 N); 64 covers
// any map that fits in memory on a 64-bit machine with room to spare.
const maxTraversalDepth = 64

// SearchResult is one entry returned by NNSearch: the squared distance from
// the query point to a stored photon, and that photon's index into the
// owning Map (suitable for a later Map.At call).
type SearchResult struct {
	DistSq float32
	Index  int32
}

// resultHeap is a max-heap over SearchResult ordered by DistSq, used by
// NNSearch once its result buffer fills up. Grounded on the value-slice
// heap.Interface shape used by hupe1980-vecgo's internal priority queue.
type resultHeap []SearchResult

func (h resultHeap) Len() int           { return len(h) }
func (h resultHeap) Less(i, j int) bool { return h[i].DistSq > h[j].DistSq }
func (h resultHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) { *h = append(*h, x.(SearchResult)) }

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// At returns the photon stored at the given search result index.
func (m *Map) At(index int32) Photon { return m.photons[index] }

// NNSearch finds up to k photons within *radiusSquared of p, shrinking
// *radiusSquared as closer candidates are found once the result buffer is
// full (spec.md §4.4). out must have length at least k+1; it is filled
// in-place and the number of valid entries (<= k) is returned. Results are
// not sorted, and not guaranteed stable across calls with tied distances.
//
// NNSearch panics if the map is not balanced or out is too small.
func (m *Map) NNSearch(p types.Vec3, radiusSquared *float32, k int, out []SearchResult) int {
	m.assertBalanced()
	if len(out) < k+1 {
		panic("photon: NNSearch output buffer must have capacity k+1")
	}

	var stack [maxTraversalDepth]int32
	stackPos := 1
	stack[0] = 0

	index := int32(1)
	fill := 0
	isHeap := false
	distSq := *radiusSquared

	rh := resultHeap(out[:0])

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

		if fill < k {
			out[fill] = SearchResult{DistSq: photonDistSq, Index: current}
			fill++
			continue
		}

		if !isHeap {
			rh = resultHeap(out[:k])
			heap.Init(&rh)
			isHeap = true
		}
		heap.Push(&rh, SearchResult{DistSq: photonDistSq, Index: current})
		heap.Pop(&rh)
		distSq = rh[0].DistSq
	}

	*radiusSquared = distSq
	return fill
}

func leftChild32(i int32) int32  { return 2 * i }
func rightChild32(i int32) int32 { return 2*i + 1 }
