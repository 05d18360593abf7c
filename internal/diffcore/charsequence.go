package diffcore

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// elementCategory classifies a single rune in a LinesSliceCharSequence for
// boundary-score and strong-equality purposes.
type elementCategory uint8

const (
	categoryWhitespace elementCategory = iota
	categoryWordChar
	categoryPunctuation
	categoryLineBreak
)

// LinesSliceCharSequence adapts a contiguous slice of lines to Sequence at
// character granularity: the lines are concatenated with '\n' separators
// into one rune buffer, and every offset is mapped back to the (line,
// column) position it originated from. It is built once per line-diff
// refinement and freed before the next.
type LinesSliceCharSequence struct {
	runes           []rune
	positions       []Position
	categories      []elementCategory
	wordStart       []int // wordStart[i] = offset of the start of the word token containing i, or -1
	wordEnd         []int // wordEnd[i] = offset one past the end of that word token, or -1
	firstLineNumber int   // 1-based line number lines[lineRange.Start] would have started at, even if lineRange is empty
}

// NewLinesSliceCharSequence builds a char sequence over lines[lineRange],
// where lineRange is a 0-based, exclusive-end slice index into lines and
// firstLineNumber is the 1-based line number of lines[lineRange.Start].
func NewLinesSliceCharSequence(lines []string, lineRange OffsetRange, firstLineNumber int) *LinesSliceCharSequence {
	s := &LinesSliceCharSequence{firstLineNumber: firstLineNumber}
	var b strings.Builder
	for i := lineRange.Start; i < lineRange.EndExclusive; i++ {
		if i > lineRange.Start {
			b.WriteByte('\n')
		}
		b.WriteString(lines[i])
	}
	text := b.String()

	s.runes = make([]rune, 0, len(text))
	s.positions = make([]Position, 0, len(text))
	s.categories = make([]elementCategory, 0, len(text))

	line := firstLineNumber
	col := 1
	for _, r := range text {
		s.runes = append(s.runes, r)
		s.positions = append(s.positions, Position{Line: line, Column: col})
		s.categories = append(s.categories, categorize(r))
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	s.buildWordIndex(text)
	return s
}

func categorize(r rune) elementCategory {
	switch {
	case r == '\n':
		return categoryLineBreak
	case unicode.IsSpace(r):
		return categoryWhitespace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return categoryWordChar
	default:
		return categoryPunctuation
	}
}

// buildWordIndex runs Unicode Standard Annex #29 word segmentation once
// over the flattened buffer and records, for every rune offset, the
// [start,end) of the word token it falls in. Non-word tokens (whitespace,
// punctuation runs) leave wordStart/wordEnd at -1, meaning "not inside a
// word" for the extend-to-word pass.
func (s *LinesSliceCharSequence) buildWordIndex(text string) {
	n := len(s.runes)
	s.wordStart = make([]int, n)
	s.wordEnd = make([]int, n)
	for i := range s.wordStart {
		s.wordStart[i] = -1
		s.wordEnd[i] = -1
	}

	// byteToRune maps every byte offset in text (including len(text)) to
	// the rune index it falls in or immediately follows; the words
	// iterator reports Start()/End() as byte offsets on rune boundaries.
	byteToRune := make([]int, 0, len(text)+1)
	runeIdx := 0
	lastByte := 0
	for bi := range text {
		for lastByte < bi {
			byteToRune = append(byteToRune, runeIdx)
			lastByte++
		}
		byteToRune = append(byteToRune, runeIdx)
		runeIdx++
		lastByte = bi + 1
	}
	for lastByte <= len(text) {
		byteToRune = append(byteToRune, runeIdx)
		lastByte++
	}

	iter := words.FromString(text)
	for iter.Next() {
		val := iter.Value()
		if !isWordToken(val) {
			continue
		}
		startByte := iter.Start()
		endByte := iter.End()
		startRune := byteToRune[startByte]
		endRune := byteToRune[endByte]
		for i := startRune; i < endRune && i < n; i++ {
			s.wordStart[i] = startRune
			s.wordEnd[i] = endRune
		}
	}
}

// isWordToken reports whether a uax29 word-segmentation token is a "word"
// (contains at least one letter, digit, or underscore) as opposed to
// whitespace or punctuation. uax29 emits every character, including
// spaces, as its own token when it isn't part of a larger word run.
func isWordToken(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

func (s *LinesSliceCharSequence) Length() int { return len(s.runes) }

func (s *LinesSliceCharSequence) Hash(i int) uint64 { return uint64(s.runes[i]) }

// IsStronglyEqual requires both the exact rune and category to match, so
// e.g. a space and a tab (both categoryWhitespace but different hashes
// already) or two different punctuation marks are never conflated by a
// pass that only checks category.
func (s *LinesSliceCharSequence) IsStronglyEqual(i, j int) bool {
	return s.runes[i] == s.runes[j] && s.categories[i] == s.categories[j]
}

// GetBoundaryScore rewards line breaks, word starts, and transitions
// between element categories as natural inner-diff boundaries.
func (s *LinesSliceCharSequence) GetBoundaryScore(i int) int32 {
	var score int32
	if i > 0 && s.categories[i-1] == categoryLineBreak {
		score += 10
	}
	if i < len(s.categories) && (i == 0 || s.categories[i] != s.categories[i-1]) {
		score += 5
	}
	if i < len(s.wordStart) && s.wordStart[i] == i {
		score += 3
	}
	return score
}

// Position returns the (line, column) that rune offset i maps back to.
func (s *LinesSliceCharSequence) Position(i int) Position {
	if i < len(s.positions) {
		return s.positions[i]
	}
	// One-past-the-end offset: same line as the last rune, one column
	// further, or firstLineNumber:1 for an empty sequence — the line the
	// (empty) range would have started at, not an arbitrary file-start
	// default, since this sequence may sit anywhere in the file (e.g. a
	// pure line insertion/deletion).
	if len(s.positions) == 0 {
		return Position{Line: s.firstLineNumber, Column: 1}
	}
	last := s.positions[len(s.positions)-1]
	if s.categories[len(s.categories)-1] == categoryLineBreak {
		return Position{Line: last.Line + 1, Column: 1}
	}
	return Position{Line: last.Line, Column: last.Column + 1}
}

// Category returns the element category of rune offset i.
func (s *LinesSliceCharSequence) Category(i int) elementCategory { return s.categories[i] }

// WordRange returns the [start,end) rune range of the word token
// containing offset i, or false if i is not inside a word token.
func (s *LinesSliceCharSequence) WordRange(i int) (OffsetRange, bool) {
	if i < 0 || i >= len(s.wordStart) || s.wordStart[i] < 0 {
		return OffsetRange{}, false
	}
	return OffsetRange{Start: s.wordStart[i], EndExclusive: s.wordEnd[i]}, true
}

// Runes returns the rune slice backing this sequence, for subword
// splitting and diagnostics.
func (s *LinesSliceCharSequence) Runes() []rune { return s.runes }
