package obslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogf_WritesAndAppends(t *testing.T) {
	t.Setenv("VSCODIFF_LOG_FILE", filepath.Join(t.TempDir(), "vscodiff.log"))

	Logf("hello %s", "world")
	Logf(" %d", 123)

	b, err := os.ReadFile(os.Getenv("VSCODIFF_LOG_FILE"))
	require.NoError(t, err)
	require.Equal(t, "hello world\n 123\n", string(b))
}

func TestLogf_NoOpWhenUnset(t *testing.T) {
	t.Setenv("VSCODIFF_LOG_FILE", "")
	Logf("should not %s", "panic")
}

func TestLogf_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VSCODIFF_LOG_FILE", dir)

	Logf("ignored %d", 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestTimeout_FormatsStageAndBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vscodiff.log")
	t.Setenv("VSCODIFF_LOG_FILE", path)

	Timeout("line-level", 500)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "line-level")
	require.Contains(t, string(b), "500ms")
}

func TestRepaired_FormatsWhereAndDetail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vscodiff.log")
	t.Setenv("VSCODIFF_LOG_FILE", path)

	Repaired("assembly.ComputeDiff", "overlapping line ranges")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "assembly.ComputeDiff")
	require.Contains(t, string(b), "overlapping line ranges")
}
