// Package obslog is a minimal env-var-gated logger for the diff core. It
// exists so that internal decisions that don't belong in the diagnostic
// output can still be observed without threading a logger through every
// call site. diffcore calls Repaired when it drops a mapping that violates
// an invariant; nothing in this module calls Timeout.
package obslog

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

var mu sync.Mutex

// Logf appends formatted output to the file named by VSCODIFF_LOG_FILE.
//
// If VSCODIFF_LOG_FILE is unset/empty or the path can't be opened as a
// file, Logf is a no-op.
func Logf(format string, args ...any) {
	path := os.Getenv("VSCODIFF_LOG_FILE")
	if path == "" {
		return
	}

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}

// Timeout logs that a diff computation hit its wall-clock budget before
// finishing, and at what stage.
func Timeout(stage string, budgetMS int64) {
	Logf("diffcore: timeout after %dms during %s, falling back to trivial diff", budgetMS, stage)
}

// Repaired logs that an internal invariant was violated and silently
// repaired rather than surfaced to the caller.
func Repaired(where, detail string) {
	Logf("diffcore: repaired invalid state in %s: %s", where, detail)
}
