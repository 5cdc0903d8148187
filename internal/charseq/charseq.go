// Package charseq implements a char-granularity Sequence: a flat,
// code-point-addressed view over a contiguous half-open line range,
// carrying enough per-line bookkeeping (line-start offsets,
// trimmed-prefix widths, original start columns) to translate character
// offsets back to (line, column) coordinates.
package charseq

import (
	"sort"
	"strings"
	"unicode"

	"github.com/redgreen/linediff/internal/diffseq"
)

// Pref selects which side of an exact line-boundary offset
// TranslateOffset resolves to.
type Pref int

const (
	// Left resolves a boundary offset to the end of the preceding line.
	Left Pref = iota
	// Right resolves a boundary offset to the start of the following line.
	Right
)

// Sequence is a Sequence (diffseq.Sequence) over the Unicode code points
// of a contiguous run of lines, joined by '\n' with no trailing newline.
type Sequence struct {
	runes []rune

	// Per contributing line (len == number of lines in the slice):
	lineStart     []int // char offset where the line starts in runes
	trimmedPrefix []int // leading code points discarded by ignoreTrimWhitespace
	startCol      []int // original starting column of the line (0-based)
}

var _ diffseq.Sequence = (*Sequence)(nil)

// New builds a char Sequence over lines[lo:hi]. When ignoreTrimWhitespace
// is set, leading ASCII whitespace of every line is dropped from the
// comparable text; the dropped width is recorded so
// TranslateOffset can add it back. startColumn gives the 0-based column
// at which the first line's slice begins (0 for a full-line slice).
func New(lines []string, lo, hi int, ignoreTrimWhitespace bool, startColumn int) *Sequence {
	n := hi - lo
	if n == 0 {
		// A zero-line slice (e.g. the empty side of a pure insertion's
		// char sequence) still needs one coordinate frame so
		// TranslateOffset(0, ...) resolves.
		return &Sequence{
			lineStart:     []int{0},
			trimmedPrefix: []int{0},
			startCol:      []int{startColumn},
		}
	}
	s := &Sequence{
		lineStart:     make([]int, n),
		trimmedPrefix: make([]int, n),
		startCol:      make([]int, n),
	}
	var buf []rune
	for idx := 0; idx < n; idx++ {
		line := []rune(lines[lo+idx])
		sc := 0
		if idx == 0 {
			sc = startColumn
			if sc > len(line) {
				sc = len(line)
			}
			line = line[sc:]
		}
		trimmed := 0
		if ignoreTrimWhitespace {
			for trimmed < len(line) && isASCIISpace(line[trimmed]) {
				trimmed++
			}
			line = line[trimmed:]
		}
		s.lineStart[idx] = len(buf)
		s.trimmedPrefix[idx] = trimmed
		s.startCol[idx] = sc
		buf = append(buf, line...)
		if idx != n-1 {
			buf = append(buf, '\n')
		}
	}
	s.runes = buf
	return s
}

func isASCIISpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\f' || r == '\v'
}

// Len implements diffseq.Sequence.
func (s *Sequence) Len() int { return len(s.runes) }

// Element implements diffseq.Sequence.
func (s *Sequence) Element(i int) uint32 { return uint32(s.runes[i]) }

// StronglyEqual implements diffseq.Sequence: code-point equality.
func (s *Sequence) StronglyEqual(i int, other diffseq.Sequence, j int) bool {
	o, ok := other.(*Sequence)
	if !ok {
		return false
	}
	return s.runes[i] == o.runes[j]
}

type category int

const (
	catWord category = iota
	catOther
	catSpace
	catSeparator
	catLF
	catCR
	catSentinel
)

func categoryScore(c category) int {
	switch c {
	case catLF, catCR:
		return 10
	case catSeparator:
		return 30
	case catSpace:
		return 3
	case catSentinel:
		return 10
	case catOther:
		return 2
	default: // catWord
		return 0
	}
}

func categorize(r rune) category {
	switch r {
	case '\n':
		return catLF
	case '\r':
		return catCR
	case ',', ';':
		return catSeparator
	case ' ', '\t':
		return catSpace
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return catWord
	}
	return catOther
}

// runeAt returns the rune at i and whether i is inside [0, Len()).
func (s *Sequence) runeAt(i int) (rune, bool) {
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

// BoundaryScore implements diffseq.Sequence per the following category
// table: CR immediately followed by LF never breaks (score 0); breaking
// right after LF is strongly preferred (150); otherwise both adjacent
// code points' categories contribute, plus a mismatch bonus and a
// lowercase-to-uppercase transition bonus.
func (s *Sequence) BoundaryScore(k int) int {
	left, leftOK := s.runeAt(k - 1)
	right, rightOK := s.runeAt(k)

	if leftOK && rightOK && left == '\r' && right == '\n' {
		return 0
	}
	if leftOK && left == '\n' {
		return 150
	}

	catL, catR := catSentinel, catSentinel
	if leftOK {
		catL = categorize(left)
	}
	if rightOK {
		catR = categorize(right)
	}

	score := categoryScore(catL) + categoryScore(catR)
	if catL != catR {
		score += 10
	}
	if leftOK && rightOK && unicode.IsLower(left) && unicode.IsUpper(right) {
		score++
	}
	return score
}

// lineFloor returns the largest line index k with lineStart[k] <= off,
// clamped to the last line.
func (s *Sequence) lineFloor(off int) int {
	k := sort.Search(len(s.lineStart), func(i int) bool { return s.lineStart[i] > off }) - 1
	if k < 0 {
		k = 0
	}
	return k
}

// TranslateOffset is the inverse of the per-line offset map: given a flat
// code-point offset, it returns the 0-based line within the slice and
// the 0-based column, using pref to break ties exactly at a line
// boundary.
func (s *Sequence) TranslateOffset(off int, pref Pref) (line, col int) {
	k := s.lineFloor(off)
	onBoundary := s.lineStart[k] == off
	crossedBoundary := false
	if onBoundary && pref == Left && k > 0 {
		k--
		crossedBoundary = true
	}

	lineStart := s.lineStart[k]
	lineoff := off - lineStart
	if crossedBoundary {
		// off sat exactly at the next line's start; stepping back a line
		// must also drop the '\n' joining the two lines from the count.
		lineoff--
	}

	var leading int
	if lineoff == 0 && pref == Left {
		leading = 0
	} else {
		leading = s.trimmedPrefix[k]
	}
	return k, lineoff + leading + s.startCol[k]
}

// Coord is a 0-based (line, column) pair relative to the slice a
// Sequence was built over.
type Coord struct {
	Line, Column int
}

// TranslateRange maps [lo, hi) to a pair of Coords, using Right
// preference at lo and Left preference at hi. If the resulting end
// precedes the start in reading order, both collapse to the end
// position.
func (s *Sequence) TranslateRange(lo, hi int) (start, end Coord) {
	sl, sc := s.TranslateOffset(lo, Right)
	el, ec := s.TranslateOffset(hi, Left)
	start, end = Coord{sl, sc}, Coord{el, ec}
	if end.Line < start.Line || (end.Line == start.Line && end.Column < start.Column) {
		start = end
	}
	return start, end
}

// CountLines returns the number of lines spanned by [lo, hi).
func (s *Sequence) CountLines(lo, hi int) int {
	if hi <= lo {
		return 1
	}
	startLine, _ := s.TranslateOffset(lo, Right)
	endLine, _ := s.TranslateOffset(hi, Left)
	return endLine - startLine + 1
}

// GetText returns the substring [lo, hi) as a string of code points.
func (s *Sequence) GetText(lo, hi int) string {
	return string(s.runes[lo:hi])
}

// ExtendToFullLines expands [lo, hi) outward to the nearest line-start
// boundaries (or the sequence's ends).
func (s *Sequence) ExtendToFullLines(lo, hi int) (int, int) {
	loLine := s.lineFloor(lo)
	newLo := s.lineStart[loLine]

	var hiLine int
	if hi == 0 {
		hiLine = 0
	} else {
		hiLine = s.lineFloor(hi - 1)
	}
	var newHi int
	if hiLine+1 < len(s.lineStart) {
		newHi = s.lineStart[hiLine+1]
	} else {
		newHi = len(s.runes)
	}
	return newLo, newHi
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FindWord returns the maximal [start, end) run of word runes containing
// i. ok is false if i is not itself a word rune.
func (s *Sequence) FindWord(i int) (start, end int, ok bool) {
	if i < 0 || i >= len(s.runes) || !isWordRune(s.runes[i]) {
		return 0, 0, false
	}
	start, end = i, i+1
	for start > 0 && isWordRune(s.runes[start-1]) {
		start--
	}
	for end < len(s.runes) && isWordRune(s.runes[end]) {
		end++
	}
	return start, end, true
}

// FindSubword returns the maximal [start, end) run of word runes
// containing i that does not cross an uppercase-letter boundary (a
// camelCase/PascalCase split point). ok is false if i is not itself a
// word rune.
func (s *Sequence) FindSubword(i int) (start, end int, ok bool) {
	if i < 0 || i >= len(s.runes) || !isWordRune(s.runes[i]) {
		return 0, 0, false
	}
	start, end = i, i+1
	for start > 0 && isWordRune(s.runes[start-1]) {
		if unicode.IsUpper(s.runes[start]) {
			break
		}
		start--
	}
	for end < len(s.runes) && isWordRune(s.runes[end]) {
		if unicode.IsUpper(s.runes[end]) {
			break
		}
		end++
	}
	return start, end, true
}

// TrimmedWidth returns the number of code points of text that remain
// after trimming ASCII whitespace from both ends, along with the number
// of line breaks the raw text contains. Used by the
// long-diff proximity fusion heuristic.
func TrimmedWidth(text string) (width, lineBreaks int) {
	trimmed := strings.Trim(text, " \t\r\n\f\v")
	width = len([]rune(trimmed))
	lineBreaks = strings.Count(text, "\n")
	return width, lineBreaks
}
