package diffcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeDiff_Identity(t *testing.T) {
	lines := []string{"line 1", "line 2"}
	result := ComputeDiff(lines, lines, NewOptions())
	require.Empty(t, result.Changes)
	require.False(t, result.HitTimeout)
}

func TestComputeDiff_SingleLineReplacement(t *testing.T) {
	original := []string{"line 1", "line 2"}
	modified := []string{"line 1", "line 3"}
	result := ComputeDiff(original, modified, NewOptions())

	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	require.Equal(t, LineRange{StartLine: 2, EndLineExclusive: 3}, c.Original)
	require.Equal(t, LineRange{StartLine: 2, EndLineExclusive: 3}, c.Modified)
	require.NotEmpty(t, c.InnerChanges)
}

func TestComputeDiff_PureAppendedLine(t *testing.T) {
	original := []string{"a"}
	modified := []string{"a", "b"}
	result := ComputeDiff(original, modified, NewOptions())

	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	require.True(t, c.Original.IsEmpty())
	require.Equal(t, LineRange{StartLine: 2, EndLineExclusive: 3}, c.Modified)
	require.Len(t, c.InnerChanges, 1)
	require.Equal(t, Position{Line: 2, Column: 1}, c.InnerChanges[0].Modified.StartPosition)
	// The empty original side sits where line 2 would have been, not at
	// the start of the file.
	require.Equal(t, Position{Line: 2, Column: 1}, c.InnerChanges[0].Original.StartPosition)
	require.Equal(t, Position{Line: 2, Column: 1}, c.InnerChanges[0].Original.EndPosition)
}

func TestComputeDiff_PureDeletedLineNotAtStart(t *testing.T) {
	original := []string{"a", "b"}
	modified := []string{"a"}
	result := ComputeDiff(original, modified, NewOptions())

	require.Len(t, result.Changes, 1)
	c := result.Changes[0]
	require.Equal(t, LineRange{StartLine: 2, EndLineExclusive: 3}, c.Original)
	require.True(t, c.Modified.IsEmpty())
	require.Len(t, c.InnerChanges, 1)
	// The empty modified side sits where line 2 would have been, not at
	// the start of the file.
	require.Equal(t, Position{Line: 2, Column: 1}, c.InnerChanges[0].Modified.StartPosition)
	require.Equal(t, Position{Line: 2, Column: 1}, c.InnerChanges[0].Modified.EndPosition)
}

func TestComputeDiff_WhitespaceInsensitiveIndentationChange(t *testing.T) {
	original := []string{"  foo();"}
	modified := []string{"    foo();"}
	opts := NewOptions()
	opts.IgnoreTrimWhitespace = true

	result := ComputeDiff(original, modified, opts)
	require.Empty(t, result.Changes)
}

func TestComputeDiff_WhitespaceGapReportedWhenRequested(t *testing.T) {
	original := []string{"  foo();", "bar();"}
	modified := []string{"    foo();", "baz();"}
	opts := NewOptions()
	opts.IgnoreTrimWhitespace = true
	opts.ReportWhitespaceInnerChanges = true

	result := ComputeDiff(original, modified, opts)
	require.GreaterOrEqual(t, len(result.Changes), 2)
}

func TestComputeDiff_TimeoutOnPathologicalInput(t *testing.T) {
	n := 4000
	original := make([]string, n)
	modified := make([]string, n)
	for i := 0; i < n; i++ {
		original[i] = randomish("o", i)
		modified[i] = randomish("m", i)
	}

	opts := NewOptions()
	opts.MaxComputationTimeMs = 1

	result := ComputeDiff(original, modified, opts)
	require.True(t, result.HitTimeout)
}

func TestComputeDiff_SwapAsymmetry(t *testing.T) {
	original := []string{"a", "b", "c"}
	modified := []string{"a", "x", "c"}

	forward := ComputeDiff(original, modified, NewOptions())
	backward := ComputeDiff(modified, original, NewOptions())

	require.Equal(t, len(forward.Changes), len(backward.Changes))
	for i, c := range forward.Changes {
		require.Equal(t, c.Original, backward.Changes[i].Modified)
		require.Equal(t, c.Modified, backward.Changes[i].Original)
	}
}

func TestComputeDiff_ParallelMatchesSequential(t *testing.T) {
	// Unchanged gaps of four lines exceed joinLinesThreshold, so the three
	// line diffs stay separate and Parallel=4 really fans out.
	original := []string{"a", "1", "b", "c", "d", "e", "2", "f", "g", "h", "i", "3", "j"}
	modified := []string{"a", "x", "b", "c", "d", "e", "y", "f", "g", "h", "i", "z", "j"}

	sequential := ComputeDiff(original, modified, NewOptions())

	parallelOpts := NewOptions()
	parallelOpts.Parallel = 4
	parallel := ComputeDiff(original, modified, parallelOpts)

	require.Equal(t, sequential, parallel)
}

func TestComputeDiff_SortednessInvariant(t *testing.T) {
	original := []string{"a", "1", "b", "2", "c", "3", "d"}
	modified := []string{"a", "x", "b", "y", "c", "z", "d"}
	result := ComputeDiff(original, modified, NewOptions())

	for i := 1; i < len(result.Changes); i++ {
		require.LessOrEqual(t, result.Changes[i-1].Original.EndLineExclusive, result.Changes[i].Original.StartLine)
		require.LessOrEqual(t, result.Changes[i-1].Modified.EndLineExclusive, result.Changes[i].Modified.StartLine)
	}
}

func randomish(prefix string, i int) string {
	// Deterministic lines. The prefix keeps every line of one side distinct
	// from every line of the other, so the sides share no runs; within one
	// side the pattern repeats every 130 lines.
	return prefix + string(rune('a'+i%26)) + string(rune('A'+(i*7)%26)) + string(rune('0'+i%10))
}
