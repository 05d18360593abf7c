// Package textwidth measures monospace column widths, used by the
// diagnostic CLI to align its timing report.
package textwidth

import "github.com/mattn/go-runewidth"

// Options control width calculation.
//
// Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the text width of str for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// RuneWidth returns the width of r for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func RuneWidth(r rune, opts *Options) int {
	return conditionFromOptions(opts).RuneWidth(r)
}

// Pad right-pads s with spaces so that TextWidth(result, opts) >= width.
func Pad(s string, width int, opts *Options) string {
	w := TextWidth(s, opts)
	if w >= width {
		return s
	}
	padding := make([]byte, width-w)
	for i := range padding {
		padding[i] = ' '
	}
	return s + string(padding)
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
