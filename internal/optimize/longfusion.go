package optimize

import (
	"math"

	"github.com/redgreen/linediff/internal/charseq"
	"github.com/redgreen/linediff/internal/diffseq"
)

const proximityScoreCap = 130

var proximityThreshold = math.Pow(math.Pow(proximityScoreCap, 1.5), 1.5) * 1.3

// FuseLongDiffs runs up to 10 passes fusing consecutive char diffs
// across a short, low-content, high-combined-size gap.
func FuseLongDiffs(a, b *charseq.Sequence, diffs []diffseq.Diff) []diffseq.Diff {
	for pass := 0; pass < 10; pass++ {
		next, changed := longDiffPass(a, b, diffs)
		diffs = next
		if !changed {
			break
		}
	}
	return diffs
}

func longDiffPass(a, b *charseq.Sequence, diffs []diffseq.Diff) ([]diffseq.Diff, bool) {
	if len(diffs) < 2 {
		return diffs, false
	}
	result := make([]diffseq.Diff, 0, len(diffs))
	changed := false
	cur := diffs[0]
	for _, y := range diffs[1:] {
		if gapQualifies(a, cur, y) && proximityScore(a, b, cur, y) >= proximityThreshold {
			cur = diffseq.Diff{ALo: cur.ALo, AHi: y.AHi, BLo: cur.BLo, BHi: y.BHi}
			changed = true
			continue
		}
		result = append(result, cur)
		cur = y
	}
	return append(result, cur), changed
}

func gapQualifies(a *charseq.Sequence, x, y diffseq.Diff) bool {
	lines := a.CountLines(x.AHi, y.ALo)
	chars := y.ALo - x.AHi
	if lines > 5 || chars > 500 {
		return false
	}
	text := a.GetText(x.AHi, y.ALo)
	width, breaks := charseq.TrimmedWidth(text)
	return width <= 20 && breaks <= 1
}

func proximityScore(a, b *charseq.Sequence, x, y diffseq.Diff) float64 {
	return sizeScore(a, x.ALo, x.AHi) + sizeScore(b, x.BLo, x.BHi) +
		sizeScore(a, y.ALo, y.AHi) + sizeScore(b, y.BLo, y.BHi)
}

func sizeScore(s *charseq.Sequence, lo, hi int) float64 {
	if hi <= lo {
		return 0
	}
	lines := s.CountLines(lo, hi)
	val := float64(lines*40 + (hi - lo))
	if val > proximityScoreCap {
		val = proximityScoreCap
	}
	return math.Pow(math.Pow(val, 1.5), 1.5)
}

const whitespaceEdgeExtension = 3

// ExtendWhitespaceEdges is the final pass of §4.6.6: surviving diffs
// whose combined size exceeds 100 code points are extended by up to 3
// trimmed code points into the surrounding whitespace on each side,
// staying clear of neighboring diffs.
func ExtendWhitespaceEdges(a, b *charseq.Sequence, diffs []diffseq.Diff) []diffseq.Diff {
	if len(diffs) == 0 {
		return diffs
	}
	result := make([]diffseq.Diff, len(diffs))
	copy(result, diffs)
	n, m := a.Len(), b.Len()
	prevA, prevB := 0, 0
	for i := range result {
		d := result[i]
		nextA, nextB := n, m
		if i+1 < len(result) {
			nextA, nextB = result[i+1].ALo, result[i+1].BLo
		}
		if d.LenA()+d.LenB() > 100 {
			d = extendEdges(a, b, d, prevA, prevB, nextA, nextB)
			result[i] = d
		}
		prevA, prevB = d.AHi, d.BHi
	}
	return result
}

func extendEdges(a, b *charseq.Sequence, d diffseq.Diff, prevA, prevB, nextA, nextB int) diffseq.Diff {
	d.ALo -= extendLeft(a, d.ALo, prevA)
	d.BLo -= extendLeft(b, d.BLo, prevB)
	d.AHi += extendRight(a, d.AHi, nextA)
	d.BHi += extendRight(b, d.BHi, nextB)
	return d
}

func extendLeft(s *charseq.Sequence, pos, bound int) int {
	n := 0
	for n < whitespaceEdgeExtension && pos-n-1 >= bound && isTrimSpace(s.Element(pos-n-1)) {
		n++
	}
	return n
}

func extendRight(s *charseq.Sequence, pos, bound int) int {
	n := 0
	for n < whitespaceEdgeExtension && pos+n < bound && isTrimSpace(s.Element(pos+n)) {
		n++
	}
	return n
}

func isTrimSpace(r uint32) bool {
	switch rune(r) {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}
