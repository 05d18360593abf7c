package diffcore

import "strings"

// Sequence is the capability set the Myers engine and the optimize passes
// are written against: an integer
// length, a total hash function under which two positions are equal iff
// their hashes match, an optional boundary score used only by
// line/character-level optimization, and a stricter-than-hash equality
// used to avoid merging near-matches.
type Sequence interface {
	// Length returns the number of elements in the sequence.
	Length() int
	// Hash returns a content hash for element i. Two elements are
	// considered equal by the diff engine iff their hashes match.
	Hash(i int) uint64
	// GetBoundaryScore rates how natural a diff boundary at position i
	// would be; higher is better. Used only by the optimize passes.
	GetBoundaryScore(i int) int32
	// IsStronglyEqual reports whether elements i and j of this sequence
	// are equal under a stricter relation than Hash-equality. The join
	// pass in optimize.go compares the two sequences by Hash and does not
	// call it.
	IsStronglyEqual(i, j int) bool
}

// LineSequence adapts a slice of lines to Sequence. It is built once per
// ComputeDiff call and is read-only thereafter.
type LineSequence struct {
	lines                []string
	hashes               []uint64
	leadingWhitespace    []int
	trailingWhitespace   []int
	ignoreTrimWhitespace bool
}

// NewLineSequence builds a LineSequence over lines. When ignoreTrimWhitespace
// is true, each line's content hash is computed on the trimmed body, but
// the amount of leading/trailing whitespace trimmed is remembered
// separately for the whitespace-gap scan in assembly.go.
func NewLineSequence(lines []string, ignoreTrimWhitespace bool) *LineSequence {
	s := &LineSequence{
		lines:                lines,
		hashes:               make([]uint64, len(lines)),
		leadingWhitespace:    make([]int, len(lines)),
		trailingWhitespace:   make([]int, len(lines)),
		ignoreTrimWhitespace: ignoreTrimWhitespace,
	}
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		s.leadingWhitespace[i], s.trailingWhitespace[i] = whitespaceExtents(line, trimmed)
		if ignoreTrimWhitespace {
			s.hashes[i] = fnv1a(trimmed)
		} else {
			s.hashes[i] = fnv1a(line)
		}
	}
	return s
}

// whitespaceExtents returns the number of leading and trailing whitespace
// bytes trimmed from line to produce trimmed.
func whitespaceExtents(line, trimmed string) (leading, trailing int) {
	if trimmed == "" {
		return len(line), 0
	}
	leading = strings.Index(line, trimmed)
	trailing = len(line) - leading - len(trimmed)
	return leading, trailing
}

func (s *LineSequence) Length() int { return len(s.lines) }

func (s *LineSequence) Hash(i int) uint64 { return s.hashes[i] }

// Line returns the raw (untrimmed) text of line i.
func (s *LineSequence) Line(i int) string { return s.lines[i] }

// LeadingWhitespace returns how many bytes of leading whitespace line i has.
func (s *LineSequence) LeadingWhitespace(i int) int { return s.leadingWhitespace[i] }

// TrailingWhitespace returns how many bytes of trailing whitespace line i has.
func (s *LineSequence) TrailingWhitespace(i int) int { return s.trailingWhitespace[i] }

// GetBoundaryScore rewards blank lines and indentation-only lines as
// natural diff boundaries.
func (s *LineSequence) GetBoundaryScore(i int) int32 {
	var score int32
	if i > 0 && strings.TrimSpace(s.lines[i-1]) == "" {
		score += 10
	}
	if i < len(s.lines) && strings.TrimSpace(s.lines[i]) == "" {
		score += 10
	}
	if i > 0 && i-1 < len(s.lines) {
		indent := len(s.lines[i-1]) - len(strings.TrimLeft(s.lines[i-1], " \t"))
		if indent > 0 && indent == len(s.lines[i-1]) {
			score += 5
		}
	}
	return score
}

// IsStronglyEqual reports whether lines i and j are byte-identical.
// Strong equality is always on the untrimmed content: whitespace-only
// differences are not treated as strongly equal even when
// ignoreTrimWhitespace made them hash-equal.
func (s *LineSequence) IsStronglyEqual(i, j int) bool {
	return s.lines[i] == s.lines[j]
}

// fnv1a hashes s with the 64-bit FNV-1a algorithm.
func fnv1a(s string) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}
