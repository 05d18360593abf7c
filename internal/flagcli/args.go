package flagcli

import "fmt"

// ExactArgs returns an ArgsFunc that validates that exactly n args are
// provided. vscodiff's root command takes exactly two positional
// arguments (the two files to diff), so this is the only arity check the
// CLI surface needs; the teacher's NoArgs/MinimumArgs/RangeArgs variants
// existed for a command tree with subcommands of varying arity, which
// this single flat command doesn't have.
func ExactArgs(n int) ArgsFunc {
	return func(args []string) error {
		if len(args) == n {
			return nil
		}
		return usageErrorf("expected %s, got %d", pluralArgs(n), len(args))
	}
}

func pluralArgs(n int) string {
	if n == 1 {
		return "1 arg"
	}
	return fmt.Sprintf("%d args", n)
}
