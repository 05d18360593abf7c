package diffcore

import (
	"fmt"
	"io"
)

// Format renders ld as a plain-text diagnostic report:
//
//	Number of changes: N
//	Hit timeout: yes|no
//	[i] Lines a-b -> Lines c-d (k inner changes)
//	  Inner: L<line>:C<col>-L<line>:C<col> -> L<line>:C<col>-L<line>:C<col>
//
// Mappings with zero inner changes render the trailing " (no inner
// changes)" and no child lines. This byte layout is load-bearing for
// callers that diff CLI output across runs, so it must not change
// incidentally.
func Format(w io.Writer, ld LinesDiff) error {
	if _, err := fmt.Fprintf(w, "Number of changes: %d\n", len(ld.Changes)); err != nil {
		return err
	}
	hit := "no"
	if ld.HitTimeout {
		hit = "yes"
	}
	if _, err := fmt.Fprintf(w, "Hit timeout: %s\n", hit); err != nil {
		return err
	}

	for i, c := range ld.Changes {
		if len(c.InnerChanges) == 0 {
			if _, err := fmt.Fprintf(w, "[%d] %s -> %s (no inner changes)\n", i, c.Original, c.Modified); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "[%d] %s -> %s (%d %s)\n", i, c.Original, c.Modified, len(c.InnerChanges), pluralInnerChanges(len(c.InnerChanges))); err != nil {
			return err
		}
		for _, ic := range c.InnerChanges {
			if _, err := fmt.Fprintf(w, "  Inner: %s -> %s\n", ic.Original, ic.Modified); err != nil {
				return err
			}
		}
	}
	return nil
}

func pluralInnerChanges(n int) string {
	if n == 1 {
		return "inner change"
	}
	return "inner changes"
}
