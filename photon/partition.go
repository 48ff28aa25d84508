package photon

// guardedPartition is a relaxed two-predicate partition (spec.md §4.1),
// translated from the reference implementation's guarded_partition. It
// accepts two predicates instead of one and only requires
// pred1(x) == !pred2(x) for all but a set of tied elements; those may land
// on either side. That relaxation is what keeps balancing from degrading
// to O(n^2) on a clump of photons that share the same coordinate along the
// split axis (e.g. all lying on an axis-aligned surface).
//
// lo and hi describe a half-open range [lo, hi); hi is not scanned by
// pred2, mirroring the reference implementation's use of the pivot slot as
// a guard. swap exchanges the two logical positions the caller is
// partitioning (an index array, not photons directly).
func guardedPartition(lo, hi int, pred1, pred2 func(int) bool, swap func(i, j int)) int {
	hi--
	for {
		for pred1(lo) {
			lo++
		}
		for hi > lo && pred2(hi) {
			hi--
		}
		if lo >= hi {
			break
		}
		swap(lo, hi)
		lo++
		hi--
	}
	return lo
}
