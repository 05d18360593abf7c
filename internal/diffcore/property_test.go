package diffcore

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"
)

func TestProperty_Sortedness(t *testing.T) {
	cases := [][2][]string{
		{{"a", "b", "c", "d", "e"}, {"a", "x", "c", "y", "e"}},
		{{"1", "2", "3", "4", "5", "6"}, {"6", "5", "4", "3", "2", "1"}},
		{{"foo", "bar", "baz"}, {"foo", "baz", "bar", "qux"}},
	}
	for _, tc := range cases {
		result := ComputeDiff(tc[0], tc[1], NewOptions())
		for i := 1; i < len(result.Changes); i++ {
			require.LessOrEqual(t, result.Changes[i-1].Original.EndLineExclusive, result.Changes[i].Original.StartLine)
			require.LessOrEqual(t, result.Changes[i-1].Modified.EndLineExclusive, result.Changes[i].Modified.StartLine)
		}
		for _, c := range result.Changes {
			for i := 1; i < len(c.InnerChanges); i++ {
				prev, cur := c.InnerChanges[i-1], c.InnerChanges[i]
				require.True(t, prev.Original.EndPosition.Line < cur.Original.StartPosition.Line ||
					(prev.Original.EndPosition.Line == cur.Original.StartPosition.Line &&
						prev.Original.EndPosition.Column <= cur.Original.StartPosition.Column))
			}
		}
	}
}

func TestProperty_NoInformationLossOnEqualLines(t *testing.T) {
	original := []string{"a", "b", "c"}
	modified := []string{"a", "b", "c"}
	result := ComputeDiff(original, modified, NewOptions())
	require.Empty(t, result.Changes)
}

func TestProperty_IdentityHasNoChanges(t *testing.T) {
	lines := []string{"one", "two", "three", "four"}
	result := ComputeDiff(lines, lines, NewOptions())
	require.Empty(t, result.Changes)
	require.False(t, result.HitTimeout)
}

func TestProperty_SwapAsymmetryPreservesShape(t *testing.T) {
	original := []string{"a", "b", "c", "d"}
	modified := []string{"a", "x", "c", "y"}

	forward := ComputeDiff(original, modified, NewOptions())
	backward := ComputeDiff(modified, original, NewOptions())
	require.Equal(t, len(forward.Changes), len(backward.Changes))
}

func TestProperty_WhitespaceInsensitivityCollapsesPureIndentChanges(t *testing.T) {
	original := []string{"if x {", "  return", "}"}
	modified := []string{"if x {", "    return", "}"}

	opts := NewOptions()
	opts.IgnoreTrimWhitespace = true
	result := ComputeDiff(original, modified, opts)
	require.Empty(t, result.Changes)
}

func TestProperty_TimeoutMonotonicity(t *testing.T) {
	n := 3000
	original := make([]string, n)
	modified := make([]string, n)
	for i := 0; i < n; i++ {
		original[i] = randomish("o", i)
		modified[i] = randomish("m", i)
	}

	tight := NewOptions()
	tight.MaxComputationTimeMs = 1
	tightResult := ComputeDiff(original, modified, tight)
	require.True(t, tightResult.HitTimeout)

	generous := NewOptions()
	generous.MaxComputationTimeMs = 0
	generousResult := ComputeDiff(original, modified, generous)
	require.False(t, generousResult.HitTimeout)
}

func TestProperty_Determinism(t *testing.T) {
	original := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	modified := []string{"alpha", "beta2", "gamma", "delta2", "epsilon"}

	first := ComputeDiff(original, modified, NewOptions())
	for i := 0; i < 10; i++ {
		again := ComputeDiff(original, modified, NewOptions())
		require.Equal(t, first, again)
	}
}

// TestProperty_OracleEditDistanceBound cross-checks our raw Myers line diff
// against an independent Myers-family implementation (sergi/go-diff, run at
// line granularity via DiffLinesToRunes): both compute a minimal edit
// script, so the total count of changed lines must agree exactly regardless
// of which specific tie-breaks either implementation makes.
func TestProperty_OracleEditDistanceBound(t *testing.T) {
	cases := [][2][]string{
		{{"a", "b", "c", "d", "e", "f"}, {"a", "x", "c", "y", "e", "z"}},
		{{"line 1", "line 2", "line 3"}, {"line 1", "line 3"}},
		{{"foo", "bar"}, {"foo", "bar", "baz", "qux"}},
	}
	for _, tc := range cases {
		seqA := NewLineSequence(tc[0], false)
		seqB := NewLineSequence(tc[1], false)
		rawDiffs, hitTimeout := Diff(seqA, seqB, NewClock(0))
		require.False(t, hitTimeout)

		ours := 0
		for _, d := range rawDiffs {
			ours += d.Seq1Range.Length() + d.Seq2Range.Length()
		}

		dmp := diffmatchpatch.New()
		oldRunes, newRunes, _ := dmp.DiffLinesToRunes(joinLines(tc[0])+"\n", joinLines(tc[1])+"\n")
		oracleDiffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
		oracleChanged := 0
		for _, d := range oracleDiffs {
			if d.Type != diffmatchpatch.DiffEqual {
				oracleChanged += len(d.Text)
			}
		}

		require.Equal(t, oracleChanged, ours)
	}
}

func joinLines(lines []string) string {
	s := ""
	for i, l := range lines {
		if i > 0 {
			s += "\n"
		}
		s += l
	}
	return s
}
