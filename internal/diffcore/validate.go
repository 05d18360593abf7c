package diffcore

import "github.com/vscodediff/vscodediff/internal/obslog"

// repairLineDiffs asserts (debug builds) and repairs (release) two
// invariant violations that should be impossible given the algorithm: a
// mapping empty on both original and modified, and a mapping ordering
// violation introduced by optimization. Violations are dropped
// rather than surfaced to the caller, and logged via obslog so a
// developer chasing a parity mismatch can see it happened.
func repairLineDiffs(diffs []LineDiff) []LineDiff {
	out := make([]LineDiff, 0, len(diffs))
	for _, d := range diffs {
		empty := d.Original.IsEmpty() && d.Modified.IsEmpty() && len(d.InnerChanges) == 0
		assertInvariant(!empty, "line diff carries no information")
		if empty {
			obslog.Repaired("assembly.ComputeDiff", "dropped mapping empty on both sides")
			continue
		}

		if len(out) > 0 {
			prev := out[len(out)-1]
			ordered := prev.Original.EndLineExclusive <= d.Original.StartLine &&
				prev.Modified.EndLineExclusive <= d.Modified.StartLine
			assertInvariant(ordered, "line diffs out of order or overlapping")
			if !ordered {
				obslog.Repaired("assembly.ComputeDiff", "dropped out-of-order mapping")
				continue
			}
		}
		out = append(out, d)
	}
	return out
}
