//go:build !diffcoredebug

package diffcore

// assertInvariant is a no-op in release builds; violations are repaired
// silently by the caller instead. Build with -tags diffcoredebug
// to turn violations into panics while developing the optimize/refine
// passes.
func assertInvariant(cond bool, msg string) {}
