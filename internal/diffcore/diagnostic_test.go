package diffcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat_Identity(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Format(&b, LinesDiff{}))
	require.Equal(t, "Number of changes: 0\nHit timeout: no\n", b.String())
}

func TestFormat_SingleLineReplacement(t *testing.T) {
	ld := LinesDiff{
		Changes: []LineDiff{{
			Original: LineRange{StartLine: 2, EndLineExclusive: 3},
			Modified: LineRange{StartLine: 2, EndLineExclusive: 3},
			InnerChanges: []RangeMapping{{
				Original: CharRange{StartPosition: Position{Line: 2, Column: 6}, EndPosition: Position{Line: 2, Column: 7}},
				Modified: CharRange{StartPosition: Position{Line: 2, Column: 6}, EndPosition: Position{Line: 2, Column: 7}},
			}},
		}},
	}

	var b strings.Builder
	require.NoError(t, Format(&b, ld))
	expected := "Number of changes: 1\n" +
		"Hit timeout: no\n" +
		"[0] Lines 2-2 -> Lines 2-2 (1 inner change)\n" +
		"  Inner: L2:C6-L2:C7 -> L2:C6-L2:C7\n"
	require.Equal(t, expected, b.String())
}

func TestFormat_PureAppendedLine(t *testing.T) {
	ld := LinesDiff{
		Changes: []LineDiff{{
			Original: LineRange{StartLine: 2, EndLineExclusive: 2},
			Modified: LineRange{StartLine: 2, EndLineExclusive: 3},
			InnerChanges: []RangeMapping{{
				Original: CharRange{StartPosition: Position{Line: 2, Column: 1}, EndPosition: Position{Line: 2, Column: 1}},
				Modified: CharRange{StartPosition: Position{Line: 2, Column: 1}, EndPosition: Position{Line: 2, Column: 2}},
			}},
		}},
	}

	var b strings.Builder
	require.NoError(t, Format(&b, ld))
	expected := "Number of changes: 1\n" +
		"Hit timeout: no\n" +
		"[0] Lines 2-1 -> Lines 2-2 (1 inner change)\n" +
		"  Inner: L2:C1-L2:C1 -> L2:C1-L2:C2\n"
	require.Equal(t, expected, b.String())
}

func TestFormat_ZeroInnerChangesTrailer(t *testing.T) {
	ld := LinesDiff{
		Changes: []LineDiff{{
			Original: LineRange{StartLine: 1, EndLineExclusive: 2},
			Modified: LineRange{StartLine: 1, EndLineExclusive: 2},
		}},
	}
	var b strings.Builder
	require.NoError(t, Format(&b, ld))
	require.Contains(t, b.String(), "(no inner changes)")
}

func TestFormat_HitTimeoutYes(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Format(&b, LinesDiff{HitTimeout: true}))
	require.Contains(t, b.String(), "Hit timeout: yes")
}
