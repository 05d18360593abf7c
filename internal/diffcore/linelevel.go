package diffcore

// computeLineDiffs implements steps 1-3: build LineSequences, run
// Myers/DP under the caller's budget, and optimize the raw script. Steps
// 4-6 (character refinement, whitespace-gap scan, assembly) are the
// caller's responsibility (see assembly.go).
func computeLineDiffs(originalLines, modifiedLines []string, opts Options, clock *Clock) (diffs []SequenceDiff, original, modified *LineSequence, hitTimeout bool) {
	original = NewLineSequence(originalLines, opts.IgnoreTrimWhitespace)
	modified = NewLineSequence(modifiedLines, opts.IgnoreTrimWhitespace)

	raw, timedOut := Diff(original, modified, clock)
	if timedOut {
		return trivialDiff(original.Length(), modified.Length()), original, modified, true
	}

	optimized := OptimizeSequenceDiffs(original, modified, raw, joinLinesThreshold)
	return optimized, original, modified, false
}
