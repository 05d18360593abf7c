package diffcore

// dpFallbackThreshold is the combined sequence length below which the
// dynamic-programming engine is used instead of Myers: DP is
// simpler, branch-predictable, and empirically faster for tiny inputs.
const dpFallbackThreshold = 500

// Diff computes a minimal edit script between a and b using the Myers
// O(ND) algorithm (or the DP fallback for small inputs), bounded by
// clock. It never panics: empty inputs return (nil, false).
func Diff(a, b Sequence, clock *Clock) ([]SequenceDiff, bool) {
	n, m := a.Length(), b.Length()
	if n == 0 && m == 0 {
		return nil, false
	}
	if n+m < dpFallbackThreshold {
		return dpDiff(a, b)
	}
	return myersDiff(a, b, clock)
}

// myersDiff implements the classic forward Myers search. For
// each edit count d, walk diagonals k = -d, -d+2, ..., d, pick the
// farthest-reaching x by the standard tie-break rule, slide diagonally
// while elements hash-equal, and stop at (n, m). The per-d V-array is
// snapshotted into trace so backtracking can recover the script.
func myersDiff(a, b Sequence, clock *Clock) ([]SequenceDiff, bool) {
	n, m := a.Length(), b.Length()
	offset := n + m
	stride := 2*offset + 1
	if stride < 1 {
		stride = 1
	}

	v := newArrayV(stride, 1)
	v.Set(0, offset+1, 0) // V[k=1] = 0 so the first extend-right at d=0,k=0 behaves correctly

	var trace []*arrayV
	dMax := offset
	if dMax == 0 {
		dMax = 1
	}

	for d := 0; d <= dMax; d++ {
		if clock.Elapsed() {
			return trivialDiff(n, m), true
		}

		row := newArrayV(stride, 1)
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v.Get(0, k-1+offset) < v.Get(0, k+1+offset)) {
				x = v.Get(0, k+1+offset)
			} else {
				x = v.Get(0, k-1+offset) + 1
			}
			y := x - k

			for x < n && y < m && a.Hash(x) == b.Hash(y) {
				x++
				y++
			}

			row.Set(0, k+offset, x)

			if x >= n && y >= m {
				trace = append(trace, row)
				return backtrackMyers(a, b, trace, n, m, offset), false
			}
		}
		trace = append(trace, row)
		v = row
	}

	// Exhausted dMax without reaching (n, m): only possible if the clock
	// check above never fired despite genuinely running out of budget
	// windows, which cannot happen for a well-formed clock. Fall back to
	// the trivial diff defensively rather than returning an incomplete
	// script.
	return trivialDiff(n, m), true
}

// backtrackMyers walks trace backward from d = len(trace)-1 down to 0,
// recovering the (x, y) reached at each step and emitting a SequenceDiff
// for every maximal run of non-diagonal moves.
func backtrackMyers(a, b Sequence, trace []*arrayV, n, m, offset int) []SequenceDiff {
	x, y := n, m
	var diffs []SequenceDiff

	for d := len(trace) - 1; d >= 0; d-- {
		k := x - y

		var prevK int
		if d == 0 {
			prevK = 0
		} else {
			prevRow := trace[d-1]
			if k == -d || (k != d && prevRow.Get(0, k-1+offset) < prevRow.Get(0, k+1+offset)) {
				prevK = k + 1
			} else {
				prevK = k - 1
			}
		}

		var prevX, prevY int
		if d == 0 {
			prevX, prevY = 0, 0
		} else {
			prevRow := trace[d-1]
			prevX = prevRow.Get(0, prevK+offset)
			prevY = prevX - prevK
		}

		// The snake: slide back along the diagonal from (x,y) to the point
		// right after the single edit at (prevX, prevY) -> midpoint.
		midX, midY := x, y
		for midX > prevX && midY > prevY && a.Hash(midX-1) == b.Hash(midY-1) {
			midX--
			midY--
		}

		if d > 0 {
			var editX1, editY1, editX2, editY2 int
			if midX == prevX {
				// insertion: one element consumed from b only
				editX1, editY1 = midX, midY-1
				editX2, editY2 = midX, midY
			} else {
				// deletion: one element consumed from a only
				editX1, editY1 = midX-1, midY
				editX2, editY2 = midX, midY
			}
			diffs = appendOrMergeDiff(diffs, SequenceDiff{
				Seq1Range: OffsetRange{Start: editX1, EndExclusive: editX2},
				Seq2Range: OffsetRange{Start: editY1, EndExclusive: editY2},
			})
			x, y = editX1, editY1
		} else {
			x, y = midX, midY
		}
	}

	sortSequenceDiffs(diffs)
	return diffs
}

// appendOrMergeDiff prepends d to diffs (backtracking walks end-to-start),
// merging with the front entry when they're contiguous on both sequences
// so runs of consecutive single-element edits collapse into one
// SequenceDiff exactly as VSCode's reference backtracker does.
func appendOrMergeDiff(diffs []SequenceDiff, d SequenceDiff) []SequenceDiff {
	if len(diffs) > 0 {
		front := diffs[0]
		if d.Seq1Range.EndExclusive == front.Seq1Range.Start && d.Seq2Range.EndExclusive == front.Seq2Range.Start {
			diffs[0] = SequenceDiff{
				Seq1Range: OffsetRange{Start: d.Seq1Range.Start, EndExclusive: front.Seq1Range.EndExclusive},
				Seq2Range: OffsetRange{Start: d.Seq2Range.Start, EndExclusive: front.Seq2Range.EndExclusive},
			}
			return diffs
		}
	}
	return append([]SequenceDiff{d}, diffs...)
}

// trivialDiff is the single SequenceDiff covering the entirety of both
// inputs, emitted on timeout.
func trivialDiff(n, m int) []SequenceDiff {
	if n == 0 && m == 0 {
		return nil
	}
	return []SequenceDiff{{
		Seq1Range: OffsetRange{Start: 0, EndExclusive: n},
		Seq2Range: OffsetRange{Start: 0, EndExclusive: m},
	}}
}

// dpDiff is the O(NM) fallback used when a.Length()+b.Length() < dpFallbackThreshold.
// It builds the classic edit-distance table with the arrayV flat
// buffer and backtracks through it the same way a textbook LCS-diff does.
func dpDiff(a, b Sequence) ([]SequenceDiff, bool) {
	n, m := a.Length(), b.Length()
	if n == 0 && m == 0 {
		return nil, false
	}

	stride := m + 1
	dp := newArrayV(stride, n+1)
	for i := 0; i <= n; i++ {
		dp.Set(i, 0, i)
	}
	for j := 0; j <= m; j++ {
		dp.Set(0, j, j)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a.Hash(i-1) == b.Hash(j-1) {
				dp.Set(i, j, dp.Get(i-1, j-1))
			} else {
				del := dp.Get(i-1, j) + 1
				ins := dp.Get(i, j-1) + 1
				if del < ins {
					dp.Set(i, j, del)
				} else {
					dp.Set(i, j, ins)
				}
			}
		}
	}

	var diffs []SequenceDiff
	i, j := n, m
	// pending accumulates a contiguous run of non-diagonal moves so it can
	// be emitted as a single SequenceDiff, matching Myers' backtracker.
	pendEndI, pendEndJ := -1, -1
	flush := func(startI, startJ int) {
		if pendEndI < 0 {
			return
		}
		diffs = append(diffs, SequenceDiff{
			Seq1Range: OffsetRange{Start: startI, EndExclusive: pendEndI},
			Seq2Range: OffsetRange{Start: startJ, EndExclusive: pendEndJ},
		})
		pendEndI, pendEndJ = -1, -1
	}

	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a.Hash(i-1) == b.Hash(j-1) && dp.Get(i, j) == dp.Get(i-1, j-1):
			flush(i, j)
			i--
			j--
		case i > 0 && (j == 0 || dp.Get(i, j) == dp.Get(i-1, j)+1):
			if pendEndI < 0 {
				pendEndI, pendEndJ = i, j
			}
			i--
		default:
			if pendEndI < 0 {
				pendEndI, pendEndJ = i, j
			}
			j--
		}
	}
	flush(i, j)

	// diffs was built by walking backward from (n,m); reverse to sorted order.
	for l, r := 0, len(diffs)-1; l < r; l, r = l+1, r-1 {
		diffs[l], diffs[r] = diffs[r], diffs[l]
	}
	return diffs, false
}
