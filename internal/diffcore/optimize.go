package diffcore

// joinLinesThreshold is the maximum unchanged-gap length (in lines) that
// joinAdjacent will bridge between two line-level diffs.
const joinLinesThreshold = 3

// OptimizeSequenceDiffs runs the shift, extend-to-word/line, and
// join-adjacent passes over diffs in this fixed order, returning a new
// sorted, disjoint slice. The order matters: each pass assumes its
// input is already sorted and disjoint, and later passes rely on the
// boundary scores the earlier ones establish.
func OptimizeSequenceDiffs(a, b Sequence, diffs []SequenceDiff, joinThreshold int) []SequenceDiff {
	out := make([]SequenceDiff, len(diffs))
	copy(out, diffs)
	out = shiftDiffs(a, b, out)
	out = extendDiffsToEntireWordOrLine(a, b, out)
	out = joinAdjacent(a, b, out, joinThreshold)
	sortSequenceDiffs(out)
	return out
}

// shiftDiffs rotates pure insertions/deletions across an adjacent equal
// run to maximize the boundary score at both new edges. Only diffs empty
// on exactly one side are eligible.
func shiftDiffs(a, b Sequence, diffs []SequenceDiff) []SequenceDiff {
	out := make([]SequenceDiff, len(diffs))
	copy(out, diffs)

	for i, d := range out {
		switch {
		case d.Seq1Range.IsEmpty() && !d.Seq2Range.IsEmpty():
			out[i] = shiftInsertion(b, a, d, true)
		case d.Seq2Range.IsEmpty() && !d.Seq1Range.IsEmpty():
			out[i] = shiftInsertion(a, b, d, false)
		}
	}
	return out
}

// shiftInsertion handles a pure insertion into "into" (the empty-range
// side) copied from "from". If onSeq2 is true, d is empty on Seq1 and the
// content lives on Seq2 (into=b, from... naming kept symmetric below by
// always treating "ins" as the sequence holding the inserted content and
// "at" as the sequence being inserted into).
func shiftInsertion(ins, at Sequence, d SequenceDiff, onSeq2 bool) SequenceDiff {
	var insRange, atRange OffsetRange
	if onSeq2 {
		insRange, atRange = d.Seq2Range, d.Seq1Range
	} else {
		insRange, atRange = d.Seq1Range, d.Seq2Range
	}
	s, e := insRange.Start, insRange.EndExclusive
	p := atRange.Start

	bestK := 0
	bestScore := int64(-1) << 62

	// Search every k for which the tiling in canShift can possibly hold:
	// negative k is bounded by how far "at" and "ins" extend before p and
	// s respectively, positive k by how far they extend after p and e.
	lo, hi := -min(p, s), min(at.Length()-p, ins.Length()-e)
	for k := lo; k <= hi; k++ {
		if !canShift(ins, at, s, e, p, k) {
			continue
		}
		score := int64(at.GetBoundaryScore(p+k)) + int64(ins.GetBoundaryScore(s+k)) + int64(ins.GetBoundaryScore(e+k))
		if score > bestScore || (score == bestScore && absInt(k) < absInt(bestK)) || (score == bestScore && absInt(k) == absInt(bestK) && k > bestK) {
			bestScore = score
			bestK = k
		}
	}

	if bestK == 0 {
		return d
	}
	newIns := OffsetRange{Start: s + bestK, EndExclusive: e + bestK}
	newAt := OffsetRange{Start: p + bestK, EndExclusive: p + bestK}
	if newIns.Start < 0 || newAt.Start < 0 {
		return d
	}
	if onSeq2 {
		return SequenceDiff{Seq1Range: newAt, Seq2Range: newIns}
	}
	return SequenceDiff{Seq1Range: newIns, Seq2Range: newAt}
}

// canShift reports whether the inserted block [s,e) tiles k positions
// across the boundary at p: the k elements immediately before p on "at"
// must equal the last k inserted elements, and the k elements
// immediately after the (shifted) insertion point must equal the first k
// inserted elements re-anchored — i.e. moving the window by k must
// reproduce the same content, which for a pure insertion means "at"'s
// element at p+i equals ins's element at s+i for the shifted span.
func canShift(ins, at Sequence, s, e, p, k int) bool {
	if k == 0 {
		return true
	}
	if k > 0 {
		if p+k > at.Length() || e+k > ins.Length() {
			return false
		}
		for i := 0; i < k; i++ {
			if at.Hash(p+i) != ins.Hash(s+i) {
				return false
			}
		}
		return true
	}
	if p+k < 0 || s+k < 0 {
		return false
	}
	for i := 0; i < -k; i++ {
		if at.Hash(p-1-i) != ins.Hash(e-1-i) {
			return false
		}
	}
	return true
}

// extendDiffsToEntireWordOrLine grows each diff outward to the nearest
// word/line boundary on both sequences, never crossing into a
// neighboring diff.
func extendDiffsToEntireWordOrLine(a, b Sequence, diffs []SequenceDiff) []SequenceDiff {
	if len(diffs) == 0 {
		return diffs
	}
	out := make([]SequenceDiff, len(diffs))
	copy(out, diffs)

	for i := range out {
		lowSeq1, lowSeq2 := 0, 0
		if i > 0 {
			lowSeq1, lowSeq2 = out[i-1].Seq1Range.EndExclusive, out[i-1].Seq2Range.EndExclusive
		}
		highSeq1, highSeq2 := a.Length(), b.Length()
		if i+1 < len(out) {
			highSeq1, highSeq2 = out[i+1].Seq1Range.Start, out[i+1].Seq2Range.Start
		}

		d := out[i]
		newStart1 := extendBoundaryLeft(a, d.Seq1Range.Start, lowSeq1)
		newEnd1 := extendBoundaryRight(a, d.Seq1Range.EndExclusive, highSeq1)
		newStart2 := extendBoundaryLeft(b, d.Seq2Range.Start, lowSeq2)
		newEnd2 := extendBoundaryRight(b, d.Seq2Range.EndExclusive, highSeq2)

		out[i] = SequenceDiff{
			Seq1Range: OffsetRange{Start: newStart1, EndExclusive: newEnd1},
			Seq2Range: OffsetRange{Start: newStart2, EndExclusive: newEnd2},
		}
	}
	return out
}

// extendBoundaryLeft walks pos left while doing so stays >= floor and
// stays within a run of high boundary score (a crude "not mid-token"
// heuristic shared by line and character sequences via GetBoundaryScore).
func extendBoundaryLeft(s Sequence, pos, floor int) int {
	for pos > floor && s.GetBoundaryScore(pos) <= s.GetBoundaryScore(pos-1) && s.GetBoundaryScore(pos-1) > 0 {
		pos--
	}
	return pos
}

func extendBoundaryRight(s Sequence, pos, ceil int) int {
	for pos < ceil && s.GetBoundaryScore(pos) <= s.GetBoundaryScore(pos+1) && s.GetBoundaryScore(pos+1) > 0 {
		pos++
	}
	return pos
}

// joinAdjacent merges consecutive diffs when the unchanged gap between
// them has the same length on both sequences, is no longer than
// threshold elements, and is hash-equal element by element (see
// shouldJoin). No other merge condition is applied: a gap longer than
// threshold is never bridged.
func joinAdjacent(a, b Sequence, diffs []SequenceDiff, threshold int) []SequenceDiff {
	if len(diffs) < 2 {
		return diffs
	}
	out := make([]SequenceDiff, 0, len(diffs))
	cur := diffs[0]
	for i := 1; i < len(diffs); i++ {
		next := diffs[i]
		gap1 := OffsetRange{Start: cur.Seq1Range.EndExclusive, EndExclusive: next.Seq1Range.Start}
		gap2 := OffsetRange{Start: cur.Seq2Range.EndExclusive, EndExclusive: next.Seq2Range.Start}

		if shouldJoin(a, b, gap1, gap2, threshold) {
			cur = cur.Join(next)
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)
	return out
}

// shouldJoin reports whether the unchanged gap between two diffs is
// short enough to bridge. Gap elements live on two different Sequence
// instances (original and modified), so this checks Hash equality
// between the corresponding elements rather than calling
// IsStronglyEqual, which only compares two positions within one sequence.
func shouldJoin(a, b Sequence, gap1, gap2 OffsetRange, threshold int) bool {
	if gap1.Length() != gap2.Length() {
		return false
	}
	n := gap1.Length()
	if n < 0 {
		return false
	}
	if n > threshold {
		return false
	}
	for i := 0; i < n; i++ {
		if a.Hash(gap1.Start+i) != b.Hash(gap2.Start+i) {
			return false
		}
	}
	return true
}
