package diffcore

// Character-level refinement thresholds, named rather than left as magic
// numbers.
const (
	removeShortMatchesThreshold               = 3
	removeVeryShortBetweenLongDiffsMinDiffLen = 25
	removeVeryShortBetweenLongDiffsMaxGap     = 5
	wordExtensionMaxSizeMultiple              = 100
	joinCharsThreshold                        = 3
)

// refineDiff runs the eight-step pipeline for one line-level diff,
// producing the RangeMapping inner changes that live inside it.
func refineDiff(lineDiff SequenceDiff, originalLines, modifiedLines []string, opts Options, clock *Clock) (mappings []RangeMapping, hitTimeout bool) {
	// Step 1: build LinesSliceCharSequence for each side.
	origFirstLine := lineDiff.Seq1Range.Start + 1
	modFirstLine := lineDiff.Seq2Range.Start + 1
	seq1 := NewLinesSliceCharSequence(originalLines, lineDiff.Seq1Range, origFirstLine)
	seq2 := NewLinesSliceCharSequence(modifiedLines, lineDiff.Seq2Range, modFirstLine)

	// Step 2: diff the character sequences. The clock is sampled on entry,
	// so an exhausted budget yields the fallback mapping even for inputs
	// that Diff would send to the DP engine, which never reads the clock.
	timedOut := clock.Elapsed()
	var raw []SequenceDiff
	if !timedOut {
		raw, timedOut = Diff(seq1, seq2, clock)
	}
	if timedOut {
		full := SequenceDiff{
			Seq1Range: OffsetRange{Start: 0, EndExclusive: seq1.Length()},
			Seq2Range: OffsetRange{Start: 0, EndExclusive: seq2.Length()},
		}
		return []RangeMapping{translateToRangeMapping(full, seq1, seq2)}, true
	}
	if len(raw) == 0 {
		return nil, false
	}

	// Step 3: optimize (shift / extend-to-word-or-line / join).
	diffs := OptimizeSequenceDiffs(seq1, seq2, raw, joinCharsThreshold)

	// Step 4: extend to whole word.
	diffs = extendToWord(seq1, seq2, diffs)

	// Step 5: extend to whole subword, if requested.
	if opts.ExtendToSubwords {
		diffs = extendToSubword(seq1, seq2, diffs)
	}

	// Step 6: remove short matches.
	diffs = removeShortMatches(diffs, removeShortMatchesThreshold)

	// Step 7: remove very short matching text between long diffs.
	diffs = removeVeryShortMatchesBetweenLongDiffs(diffs,
		removeVeryShortBetweenLongDiffsMinDiffLen, removeVeryShortBetweenLongDiffsMaxGap)

	// Step 8: translate offsets to (line, column).
	mappings = make([]RangeMapping, 0, len(diffs))
	for _, d := range diffs {
		mappings = append(mappings, translateToRangeMapping(d, seq1, seq2))
	}
	return mappings, false
}

func translateToRangeMapping(d SequenceDiff, seq1, seq2 *LinesSliceCharSequence) RangeMapping {
	return RangeMapping{
		Original: CharRange{StartPosition: seq1.Position(d.Seq1Range.Start), EndPosition: seq1.Position(d.Seq1Range.EndExclusive)},
		Modified: CharRange{StartPosition: seq2.Position(d.Seq2Range.Start), EndPosition: seq2.Position(d.Seq2Range.EndExclusive)},
	}
}

// extendToWord grows each diff outward to the enclosing word's start/end
// on both sequences, rejecting an extension that would grow the diff
// past wordExtensionMaxSizeMultiple times its original size or cross a
// neighboring diff.
func extendToWord(seq1, seq2 *LinesSliceCharSequence, diffs []SequenceDiff) []SequenceDiff {
	return extendToTokenBoundary(diffs, func(s *LinesSliceCharSequence, i int) (OffsetRange, bool) {
		return s.WordRange(i)
	}, seq1, seq2)
}

// extendToSubword additionally splits each enclosing word into subwords
// (CamelCase / snake_case) and grows a diff to the subword boundary
// instead of the whole word.
func extendToSubword(seq1, seq2 *LinesSliceCharSequence, diffs []SequenceDiff) []SequenceDiff {
	subwordRange := func(s *LinesSliceCharSequence, i int) (OffsetRange, bool) {
		word, ok := s.WordRange(i)
		if !ok {
			return OffsetRange{}, false
		}
		runes := s.Runes()[word.Start:word.EndExclusive]
		bounds := subwordBoundaries(runes)
		start, end := word.Start, word.EndExclusive
		relative := i - word.Start
		for _, b := range bounds {
			if b <= relative {
				start = word.Start + b
			}
		}
		for _, b := range bounds {
			if b > relative {
				end = word.Start + b
				break
			}
		}
		return OffsetRange{Start: start, EndExclusive: end}, true
	}
	return extendToTokenBoundary(diffs, subwordRange, seq1, seq2)
}

func extendToTokenBoundary(diffs []SequenceDiff, tokenRange func(*LinesSliceCharSequence, int) (OffsetRange, bool), seq1, seq2 *LinesSliceCharSequence) []SequenceDiff {
	out := make([]SequenceDiff, len(diffs))
	copy(out, diffs)

	for i, d := range out {
		lowSeq1, lowSeq2 := 0, 0
		if i > 0 {
			lowSeq1, lowSeq2 = out[i-1].Seq1Range.EndExclusive, out[i-1].Seq2Range.EndExclusive
		}
		highSeq1, highSeq2 := seq1.Length(), seq2.Length()
		if i+1 < len(out) {
			highSeq1, highSeq2 = out[i+1].Seq1Range.Start, out[i+1].Seq2Range.Start
		}

		newRange1 := extendRangeToToken(seq1, d.Seq1Range, tokenRange, lowSeq1, highSeq1)
		newRange2 := extendRangeToToken(seq2, d.Seq2Range, tokenRange, lowSeq2, highSeq2)

		grew1 := newRange1.Length() - d.Seq1Range.Length()
		grew2 := newRange2.Length() - d.Seq2Range.Length()
		maxGrowth := (d.Seq1Range.Length() + d.Seq2Range.Length() + 1) * wordExtensionMaxSizeMultiple
		if grew1+grew2 > maxGrowth {
			continue
		}
		out[i] = SequenceDiff{Seq1Range: newRange1, Seq2Range: newRange2}
	}
	return out
}

func extendRangeToToken(s *LinesSliceCharSequence, r OffsetRange, tokenRange func(*LinesSliceCharSequence, int) (OffsetRange, bool), floor, ceil int) OffsetRange {
	if r.IsEmpty() {
		return r
	}
	start, end := r.Start, r.EndExclusive

	if word, ok := tokenRange(s, start); ok {
		start = max(word.Start, floor)
	}
	if word, ok := tokenRange(s, end-1); ok {
		end = min(word.EndExclusive, ceil)
	}
	if start > end {
		return r
	}
	return OffsetRange{Start: start, EndExclusive: end}
}

// removeShortMatches merges any two adjacent diffs separated by at most
// threshold equal characters into one diff, so a tiny sliver of
// unchanged text no longer splits a single visual change in two.
func removeShortMatches(diffs []SequenceDiff, threshold int) []SequenceDiff {
	return mergeAdjacentWithinGap(diffs, func(gap1, gap2 OffsetRange) bool {
		return gap1.Length() == gap2.Length() && gap1.Length() <= threshold
	})
}

// removeVeryShortMatchesBetweenLongDiffs merges two adjacent diffs, each
// longer than minDiffLen, separated by at most maxGap equal characters,
// on the theory that a match that short between two large changes is
// noise rather than a meaningful shared region.
func removeVeryShortMatchesBetweenLongDiffs(diffs []SequenceDiff, minDiffLen, maxGap int) []SequenceDiff {
	if len(diffs) < 2 {
		return diffs
	}
	out := make([]SequenceDiff, 0, len(diffs))
	cur := diffs[0]
	for i := 1; i < len(diffs); i++ {
		next := diffs[i]
		gap1 := OffsetRange{Start: cur.Seq1Range.EndExclusive, EndExclusive: next.Seq1Range.Start}
		gap2 := OffsetRange{Start: cur.Seq2Range.EndExclusive, EndExclusive: next.Seq2Range.Start}

		longEnough := diffLen(cur) > minDiffLen && diffLen(next) > minDiffLen
		gapShort := gap1.Length() == gap2.Length() && gap1.Length() <= maxGap

		if longEnough && gapShort {
			cur = cur.Join(next)
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)
	return out
}

func diffLen(d SequenceDiff) int {
	return max(d.Seq1Range.Length(), d.Seq2Range.Length())
}

func mergeAdjacentWithinGap(diffs []SequenceDiff, shouldMerge func(gap1, gap2 OffsetRange) bool) []SequenceDiff {
	if len(diffs) < 2 {
		return diffs
	}
	out := make([]SequenceDiff, 0, len(diffs))
	cur := diffs[0]
	for i := 1; i < len(diffs); i++ {
		next := diffs[i]
		gap1 := OffsetRange{Start: cur.Seq1Range.EndExclusive, EndExclusive: next.Seq1Range.Start}
		gap2 := OffsetRange{Start: cur.Seq2Range.EndExclusive, EndExclusive: next.Seq2Range.Start}
		if shouldMerge(gap1, gap2) {
			cur = cur.Join(next)
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)
	return out
}
