// Package diffcore computes a structured, line- and character-level diff
// between two texts using the Myers O(ND) algorithm followed by a
// multi-stage post-processing pipeline (shift, extend, join, and prune)
// that turns a raw edit script into the boundary placement a human editor
// would choose.
//
// The package is a pure function library: ComputeDiff performs no I/O
// except the optional debug log line that internal/obslog appends when
// VSCODIFF_LOG_FILE is set and an invariant violation is repaired,
// never touches global state, and is safe to call concurrently from
// multiple goroutines on disjoint inputs. See Options for the knobs that
// control whitespace sensitivity, timeouts, and subword extension.
package diffcore
