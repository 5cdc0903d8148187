// Package lineseq implements a line-granularity Sequence: each element
// is one line of text, compared by the interned id of its (optionally
// trimmed) content, with strong equality falling back to the original,
// un-trimmed bytes.
package lineseq

import (
	"strings"

	"github.com/redgreen/linediff/internal/diffseq"
	"github.com/redgreen/linediff/internal/intern"
)

const boundaryScoreFloor = 1000

// Sequence is a Sequence (diffseq.Sequence) over an ordered collection of
// lines.
type Sequence struct {
	lines []string // original, un-trimmed lines
	ids   []uint32 // interned id of the (optionally trimmed) line
}

var _ diffseq.Sequence = (*Sequence)(nil)

// New builds a line Sequence from lines, interning each (optionally
// trimmed) line's text through interner so that equal lines across two
// sequences sharing the same interner receive the same id. Callers
// diffing two sets of lines against each other should share one
// interner between both sides.
func New(lines []string, interner *intern.Interner, ignoreTrimWhitespace bool) *Sequence {
	ids := make([]uint32, len(lines))
	for i, line := range lines {
		key := line
		if ignoreTrimWhitespace {
			key = trimASCIISpace(line)
		}
		ids[i] = interner.GetOrCreate(key)
	}
	return &Sequence{lines: append([]string(nil), lines...), ids: ids}
}

// Lines returns the original, un-trimmed lines backing the sequence.
func (s *Sequence) Lines() []string { return s.lines }

// Len implements diffseq.Sequence.
func (s *Sequence) Len() int { return len(s.lines) }

// Element implements diffseq.Sequence.
func (s *Sequence) Element(i int) uint32 { return s.ids[i] }

// StronglyEqual implements diffseq.Sequence. It compares the original,
// un-trimmed text of the two lines byte-wise, ignoring ids entirely.
func (s *Sequence) StronglyEqual(i int, other diffseq.Sequence, j int) bool {
	o, ok := other.(*Sequence)
	if !ok {
		return false
	}
	return s.lines[i] == o.lines[j]
}

// BoundaryScore implements diffseq.Sequence using an indent metric: 1000
// minus the combined leading-whitespace width of the two lines adjacent
// to the cut. A side outside [0, Len()) contributes 0.
func (s *Sequence) BoundaryScore(k int) int {
	var left, right int
	if k-1 >= 0 && k-1 < len(s.lines) {
		left = indent(s.lines[k-1])
	}
	if k >= 0 && k < len(s.lines) {
		right = indent(s.lines[k])
	}
	return boundaryScoreFloor - (left + right)
}

func indent(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			n++
			continue
		}
		break
	}
	return n
}

func trimASCIISpace(s string) string {
	return strings.Trim(s, " \t\r\n\f\v")
}
