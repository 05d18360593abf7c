package diffcore

import "strings"

// ComputeDiff is the single public entry point. It is pure apart from the
// optional debug log line repairLineDiffs writes through internal/obslog:
// no other I/O, no global state, no concurrency unless Options.Parallel > 0,
// and it returns byte-identical results for identical inputs regardless
// of Parallel.
func ComputeDiff(original, modified []string, opts Options) LinesDiff {
	opts = opts.normalized()

	clock := NewClock(opts.MaxComputationTimeMs)

	lineDiffs, origSeq, modSeq, hitTimeout := computeLineDiffs(original, modified, opts, clock)
	if hitTimeout {
		return LinesDiff{Changes: trivialLinesDiff(lineDiffs, origSeq, modSeq), HitTimeout: true}
	}

	changes, timedOutInRefine := refineAll(lineDiffs, original, modified, opts, clock)

	if opts.IgnoreTrimWhitespace && opts.ReportWhitespaceInnerChanges {
		changes = insertWhitespaceOnlyGaps(changes, origSeq, modSeq, original, modified)
	}

	changes = repairLineDiffs(changes)
	return LinesDiff{Changes: changes, HitTimeout: timedOutInRefine}
}

// trivialLinesDiff builds the single coarse mapping used when line-level
// Myers itself timed out: one LineDiff spanning the whole input with one
// inner change spanning both extents in full.
func trivialLinesDiff(diffs []SequenceDiff, origSeq, modSeq *LineSequence) []LineDiff {
	if len(diffs) == 0 {
		return nil
	}
	d := diffs[0]
	orig := offsetRangeToLineRange(d.Seq1Range)
	mod := offsetRangeToLineRange(d.Seq2Range)
	inner := RangeMapping{
		Original: CharRange{StartPosition: Position{Line: orig.StartLine, Column: 1}, EndPosition: fullLineEnd(origSeq, d.Seq1Range)},
		Modified: CharRange{StartPosition: Position{Line: mod.StartLine, Column: 1}, EndPosition: fullLineEnd(modSeq, d.Seq2Range)},
	}
	return []LineDiff{{Original: orig, Modified: mod, InnerChanges: []RangeMapping{inner}}}
}

func fullLineEnd(seq *LineSequence, r OffsetRange) Position {
	if r.IsEmpty() {
		return Position{Line: r.Start + 1, Column: 1}
	}
	lastLine := r.EndExclusive
	if lastLine > seq.Length() {
		lastLine = seq.Length()
	}
	if lastLine == 0 {
		return Position{Line: 1, Column: 1}
	}
	return Position{Line: lastLine, Column: len([]rune(seq.Line(lastLine-1))) + 1}
}

func offsetRangeToLineRange(r OffsetRange) LineRange {
	return LineRange{StartLine: r.Start + 1, EndLineExclusive: r.EndExclusive + 1}
}

// refineAll runs refineDiff over every non-trivial line-level diff,
// sequentially or fanned out across a bounded worker pool per
// Options.Parallel. Results are written into a pre-sized slice indexed by
// position, never appended concurrently, so the two code paths produce
// byte-identical output.
func refineAll(lineDiffs []SequenceDiff, original, modified []string, opts Options, clock *Clock) ([]LineDiff, bool) {
	results := make([]LineDiff, len(lineDiffs))
	timedOut := make([]bool, len(lineDiffs))

	work := func(i int) {
		d := lineDiffs[i]
		inner, hitTimeout := refineDiff(d, original, modified, opts, clock)
		results[i] = LineDiff{
			Original:     offsetRangeToLineRange(d.Seq1Range),
			Modified:     offsetRangeToLineRange(d.Seq2Range),
			InnerChanges: inner,
		}
		timedOut[i] = hitTimeout
	}

	if opts.Parallel <= 1 || len(lineDiffs) <= 1 {
		for i := range lineDiffs {
			work(i)
		}
	} else {
		runBounded(len(lineDiffs), opts.Parallel, work)
	}

	anyTimeout := false
	for _, t := range timedOut {
		anyTimeout = anyTimeout || t
	}
	return results, anyTimeout
}

// insertWhitespaceOnlyGaps scans the unchanged gaps between line diffs:
// for each unchanged line range, if the corresponding original and
// modified lines differ only in leading/trailing whitespace, emit a
// synthetic LineDiff carrying a single character-level mapping for that
// delta.
func insertWhitespaceOnlyGaps(changes []LineDiff, origSeq, modSeq *LineSequence, original, modified []string) []LineDiff {
	out := make([]LineDiff, 0, len(changes))
	prevOrigEnd, prevModEnd := 1, 1

	flushGap := func(origEnd, modEnd int) {
		for origLine, modLine := prevOrigEnd, prevModEnd; origLine < origEnd && modLine < modEnd; origLine, modLine = origLine+1, modLine+1 {
			oi, mi := origLine-1, modLine-1
			if oi < 0 || oi >= len(original) || mi < 0 || mi >= len(modified) {
				continue
			}
			if original[oi] == modified[mi] {
				continue
			}
			if strings.TrimSpace(original[oi]) != strings.TrimSpace(modified[mi]) {
				continue
			}
			out = append(out, LineDiff{
				Original: LineRange{StartLine: origLine, EndLineExclusive: origLine + 1},
				Modified: LineRange{StartLine: modLine, EndLineExclusive: modLine + 1},
				InnerChanges: []RangeMapping{{
					Original: CharRange{StartPosition: Position{Line: origLine, Column: 1}, EndPosition: Position{Line: origLine, Column: len([]rune(original[oi])) + 1}},
					Modified: CharRange{StartPosition: Position{Line: modLine, Column: 1}, EndPosition: Position{Line: modLine, Column: len([]rune(modified[mi])) + 1}},
				}},
			})
		}
	}

	for _, c := range changes {
		flushGap(c.Original.StartLine, c.Modified.StartLine)
		out = append(out, c)
		prevOrigEnd, prevModEnd = c.Original.EndLineExclusive, c.Modified.EndLineExclusive
	}
	flushGap(origSeq.Length()+1, modSeq.Length()+1)

	sortLineDiffs(out)
	return out
}

func sortLineDiffs(diffs []LineDiff) {
	insertionSortBy(diffs, func(a, b LineDiff) bool { return a.Original.StartLine < b.Original.StartLine })
}
