package diffcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefineDiff_MidLineCharacterEdit(t *testing.T) {
	original := []string{"const oldValue = 42;"}
	modified := []string{"const newValue = 42;"}
	lineDiff := SequenceDiff{Seq1Range: OffsetRange{0, 1}, Seq2Range: OffsetRange{0, 1}}

	mappings, timedOut := refineDiff(lineDiff, original, modified, NewOptions(), NewClock(1000))
	require.False(t, timedOut)
	require.NotEmpty(t, mappings)

	// Every covered interval must include the three differing characters
	// ("old"/"new" at columns 7-9) and the total covered range must be
	// <= 6 characters on each side.
	minCol, maxCol := 1<<30, 0
	for _, m := range mappings {
		minCol = min(minCol, m.Original.StartPosition.Column)
		maxCol = max(maxCol, m.Original.EndPosition.Column)
	}
	require.LessOrEqual(t, minCol, 7)
	require.GreaterOrEqual(t, maxCol, 10)
	require.LessOrEqual(t, maxCol-minCol, 6)
}

func TestRefineDiff_TimeoutProducesSingleFallbackMapping(t *testing.T) {
	original := []string{"abcdefghijklmnopqrstuvwxyz"}
	modified := []string{"zyxwvutsrqponmlkjihgfedcba"}
	lineDiff := SequenceDiff{Seq1Range: OffsetRange{0, 1}, Seq2Range: OffsetRange{0, 1}}

	clock := &Clock{budget: 1}
	mappings, timedOut := refineDiff(lineDiff, original, modified, NewOptions(), clock)
	require.True(t, timedOut)
	require.Len(t, mappings, 1)
}

func TestRemoveShortMatches_MergesTinyGap(t *testing.T) {
	diffs := []SequenceDiff{
		{Seq1Range: OffsetRange{0, 2}, Seq2Range: OffsetRange{0, 2}},
		{Seq1Range: OffsetRange{4, 6}, Seq2Range: OffsetRange{4, 6}},
	}
	merged := removeShortMatches(diffs, removeShortMatchesThreshold)
	require.Len(t, merged, 1)
	require.Equal(t, OffsetRange{Start: 0, EndExclusive: 6}, merged[0].Seq1Range)
}

func TestRemoveVeryShortMatchesBetweenLongDiffs(t *testing.T) {
	long1 := SequenceDiff{Seq1Range: OffsetRange{0, 30}, Seq2Range: OffsetRange{0, 30}}
	long2 := SequenceDiff{Seq1Range: OffsetRange{33, 63}, Seq2Range: OffsetRange{33, 63}}
	merged := removeVeryShortMatchesBetweenLongDiffs([]SequenceDiff{long1, long2},
		removeVeryShortBetweenLongDiffsMinDiffLen, removeVeryShortBetweenLongDiffsMaxGap)
	require.Len(t, merged, 1)
}

func TestSubwordBoundaries_CamelCaseAndSnakeCase(t *testing.T) {
	require.Equal(t, []int{3}, subwordBoundaries([]rune("fooBar")))
	require.Equal(t, []int{4}, subwordBoundaries([]rune("foo_bar")))
	require.Equal(t, []int{3}, subwordBoundaries([]rune("XMLParser")))
}
