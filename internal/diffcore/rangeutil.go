package diffcore

// sortSequenceDiffs sorts diffs by their Seq1Range start, the order Myers
// backtracking already produces but that optimize passes must preserve.
func sortSequenceDiffs(diffs []SequenceDiff) {
	insertionSortBy(diffs, func(a, b SequenceDiff) bool { return a.Seq1Range.Start < b.Seq1Range.Start })
}

// insertionSortBy is used instead of sort.Slice at the small N this
// package always deals with (a handful of diffs per line, at most a few
// thousand lines): it keeps the hot post-processing loops free of the
// interface-dispatch overhead sort.Slice's less func incurs, and every
// call site here already receives a nearly-sorted slice.
func insertionSortBy[T any](s []T, less func(a, b T) bool) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// isSortedAndDisjoint reports whether diffs are ordered and pairwise
// non-overlapping on both sequences, the invariant every SequenceDiff
// slice returned from this package must satisfy.
func isSortedAndDisjoint(diffs []SequenceDiff) bool {
	for i := 1; i < len(diffs); i++ {
		prev, cur := diffs[i-1], diffs[i]
		if prev.Seq1Range.EndExclusive > cur.Seq1Range.Start {
			return false
		}
		if prev.Seq2Range.EndExclusive > cur.Seq2Range.Start {
			return false
		}
	}
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
