// Package cli implements the diagnostic command-line wrapper around
// diffcore: it reads two files, computes their diff, and prints the
// reference diagnostic format.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vscodediff/vscodediff/internal/diffcore"
	"github.com/vscodediff/vscodediff/internal/flagcli"
	"github.com/vscodediff/vscodediff/internal/textwidth"
)

// RunOptions carries the process argv and I/O streams into Run.
type RunOptions struct {
	Args []string
	In   io.Reader
	Out  io.Writer
	Err  io.Writer
}

// Run executes the diagnostic CLI and returns a process exit code: 0 on
// any run that produced output (including timeouts), 2 on flag/argument
// errors, 1 on I/O errors such as a missing file.
func Run(ctx context.Context, opts RunOptions) int {
	root := newRootCommand()
	return flagcli.Run(ctx, root, flagcli.RunOptions{Args: opts.Args, In: opts.In, Out: opts.Out, Err: opts.Err})
}

func newRootCommand() *flagcli.Command {
	root := &flagcli.Command{
		Name:  "vscodiff",
		Short: "compute a VSCode-parity line/character diff between two files",
		Args:  flagcli.ExactArgs(2),
	}
	brief := root.Flags().Bool("brief", 'b', false, "print wall-clock timing after results")
	timeoutMs := root.Flags().Int("timeout", 'T', diffcore.DefaultMaxComputationTimeMs, "override the diff computation timeout, in milliseconds")
	ignoreTrimWhitespace := root.Flags().Bool("ignore-trim-whitespace", 'w', false, "ignore leading/trailing whitespace when locating line changes")

	root.Run = func(c *flagcli.Context) error {
		return runDiff(c, *brief, *timeoutMs, *ignoreTrimWhitespace)
	}
	return root
}

func runDiff(c *flagcli.Context, brief bool, timeoutMs int, ignoreTrimWhitespace bool) error {
	path1, path2 := c.Args[0], c.Args[1]

	start := time.Now()
	original, err := readLines(path1)
	if err != nil {
		return flagcli.ExitError{Code: 1, Err: fmt.Errorf("reading %s: %w", path1, err)}
	}
	modified, err := readLines(path2)
	if err != nil {
		return flagcli.ExitError{Code: 1, Err: fmt.Errorf("reading %s: %w", path2, err)}
	}
	readElapsed := time.Since(start)

	opts := diffcore.NewOptions()
	opts.IgnoreTrimWhitespace = ignoreTrimWhitespace
	if timeoutMs < 0 {
		// Negative timeout normalizes to unlimited.
		opts.MaxComputationTimeMs = 0
	} else {
		opts.MaxComputationTimeMs = uint32(timeoutMs)
	}

	diffStart := time.Now()
	result := diffcore.ComputeDiff(original, modified, opts)
	diffElapsed := time.Since(diffStart)

	if err := diffcore.Format(c.Out, result); err != nil {
		return flagcli.ExitError{Code: 1, Err: err}
	}

	if brief {
		printTimingReport(c.Out, readElapsed, diffElapsed)
	}
	return nil
}

// readLines splits a file's contents into lines the way the diff engine
// expects: terminator-free lines, with a trailing newline producing a
// genuine trailing empty "line" rather than being stripped. strings.Split
// on "\n" gives exactly that; difflib.SplitLines does not — it keeps each
// line's "\n" embedded and turns the final element into "\n" instead of
// "", which would double every newline once LinesSliceCharSequence
// re-inserts its own separator.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

func printTimingReport(w io.Writer, readElapsed, diffElapsed time.Duration) {
	rows := []struct {
		label string
		d     time.Duration
	}{
		{"read", readElapsed},
		{"diff", diffElapsed},
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, textwidth.TextWidth(r.label, nil))
	}

	fmt.Fprintln(w)
	for _, r := range rows {
		fmt.Fprintf(w, "%s : %s\n", textwidth.Pad(r.label, labelWidth, nil), r.d)
	}
}
