package optimize

import "github.com/redgreen/linediff/internal/diffseq"

// AlignToBoundaries slides each pure insert/delete within its free range
// to the position with the best combined boundary score, capped at a
// shift radius of 100 on each side. Modification diffs (both sides
// non-empty) are left untouched.
func AlignToBoundaries(a, b diffseq.Sequence, diffs []diffseq.Diff) []diffseq.Diff {
	if len(diffs) == 0 {
		return diffs
	}
	result := make([]diffseq.Diff, len(diffs))
	copy(result, diffs)

	prevA, prevB := 0, 0
	n, m := a.Len(), b.Len()
	for i, d := range result {
		nextA, nextB := n, m
		if i+1 < len(result) {
			nextA, nextB = result[i+1].ALo, result[i+1].BLo
		}
		if d.IsPureInsertOrDelete() {
			result[i] = alignOne(a, b, d, prevA, prevB, nextA, nextB)
		}
		prevA, prevB = result[i].AHi, result[i].BHi
	}
	return result
}

const shiftRadiusCap = 100

func alignOne(a, b diffseq.Sequence, d diffseq.Diff, prevA, prevB, nextA, nextB int) diffseq.Diff {
	insertion := d.InsertsOnly()

	var leftBound, rightBound int
	if insertion {
		leftBound = d.ALo - prevA
		rightBound = nextA - d.AHi
	} else {
		leftBound = d.BLo - prevB
		rightBound = nextB - d.BHi
	}
	if leftBound > shiftRadiusCap {
		leftBound = shiftRadiusCap
	}
	if rightBound > shiftRadiusCap {
		rightBound = shiftRadiusCap
	}

	maxLeft := 0
	for maxLeft < leftBound && canShiftBy(a, b, d, insertion, -(maxLeft+1)) {
		maxLeft++
	}
	maxRight := 0
	for maxRight < rightBound && canShiftBy(a, b, d, insertion, maxRight) {
		maxRight++
	}

	bestDelta := 0
	bestScore := boundaryScoreAt(a, b, d, insertion, 0)
	for delta := -maxLeft; delta <= maxRight; delta++ {
		if delta == 0 {
			continue
		}
		s := boundaryScoreAt(a, b, d, insertion, delta)
		if s > bestScore {
			bestScore = s
			bestDelta = delta
		}
	}
	return diffseq.Diff{ALo: d.ALo + bestDelta, AHi: d.AHi + bestDelta, BLo: d.BLo + bestDelta, BHi: d.BHi + bestDelta}
}

// canShiftBy reports whether d can move by delta (negative: left, via the
// element that would enter/exit at the far end; non-negative: right, via
// the element at the near end), using strongly_equal throughout.
func canShiftBy(a, b diffseq.Sequence, d diffseq.Diff, insertion bool, delta int) bool {
	if delta < 0 {
		s := -delta
		if insertion {
			return a.StronglyEqual(d.ALo-s, b, d.BHi-s)
		}
		return b.StronglyEqual(d.BLo-s, a, d.AHi-s)
	}
	s := delta
	return a.StronglyEqual(d.ALo+s, b, d.BLo+s)
}

func boundaryScoreAt(a, b diffseq.Sequence, d diffseq.Diff, insertion bool, delta int) int {
	newALo, newAHi := d.ALo+delta, d.AHi+delta
	newBLo, newBHi := d.BLo+delta, d.BHi+delta
	if insertion {
		return a.BoundaryScore(newALo) + b.BoundaryScore(newBLo) + b.BoundaryScore(newBHi)
	}
	return b.BoundaryScore(newBLo) + a.BoundaryScore(newALo) + a.BoundaryScore(newAHi)
}
