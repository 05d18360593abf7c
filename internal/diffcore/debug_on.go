//go:build diffcoredebug

package diffcore

// assertInvariant panics when cond is false. Only compiled in with
// -tags diffcoredebug.
func assertInvariant(cond bool, msg string) {
	if !cond {
		panic("diffcore: invariant violated: " + msg)
	}
}
