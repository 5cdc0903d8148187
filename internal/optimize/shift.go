// Package optimize implements the heuristic diff-list post-processors
// shared between line- and char-granularity diffing. Every function here
// is pure over its (A, B, diffs) inputs.
package optimize

import "github.com/redgreen/linediff/internal/diffseq"

// ShiftAndJoin runs the left-shift-then-right-shift process twice in
// succession, which reaches a fixed point in practice without a third
// pass being observed to help.
func ShiftAndJoin(a, b diffseq.Sequence, diffs []diffseq.Diff) []diffseq.Diff {
	diffs = shiftAndJoinOnce(a, b, diffs)
	diffs = shiftAndJoinOnce(a, b, diffs)
	return diffs
}

func shiftAndJoinOnce(a, b diffseq.Sequence, diffs []diffseq.Diff) []diffseq.Diff {
	diffs = leftShiftPass(a, b, diffs)
	diffs = rightShiftPass(a, b, diffs)
	return diffs
}

// leftShiftPass slides each pure insert/delete as far left as the
// elements allow, using fast Element equality, merging into the
// previous diff when the whole gap collapses.
func leftShiftPass(a, b diffseq.Sequence, diffs []diffseq.Diff) []diffseq.Diff {
	result := make([]diffseq.Diff, 0, len(diffs))
	prevA, prevB := 0, 0
	for _, d := range diffs {
		if d.IsPureInsertOrDelete() {
			d = leftShiftOne(a, b, d, prevA, prevB)
		}
		if len(result) > 0 {
			last := result[len(result)-1]
			if d.ALo == last.AHi && d.BLo == last.BHi {
				merged := diffseq.Diff{ALo: last.ALo, AHi: d.AHi, BLo: last.BLo, BHi: d.BHi}
				result[len(result)-1] = merged
				prevA, prevB = merged.AHi, merged.BHi
				continue
			}
		}
		result = append(result, d)
		prevA, prevB = d.AHi, d.BHi
	}
	return result
}

func leftShiftOne(a, b diffseq.Sequence, d diffseq.Diff, prevA, prevB int) diffseq.Diff {
	if d.InsertsOnly() {
		maxShift := d.ALo - prevA
		delta := 0
		for delta < maxShift && a.Element(d.ALo-delta-1) == b.Element(d.BHi-delta-1) {
			delta++
		}
		return diffseq.Diff{ALo: d.ALo - delta, AHi: d.AHi - delta, BLo: d.BLo - delta, BHi: d.BHi - delta}
	}
	// DeletesOnly
	maxShift := d.BLo - prevB
	delta := 0
	for delta < maxShift && b.Element(d.BLo-delta-1) == a.Element(d.AHi-delta-1) {
		delta++
	}
	return diffseq.Diff{ALo: d.ALo - delta, AHi: d.AHi - delta, BLo: d.BLo - delta, BHi: d.BHi - delta}
}

// rightShiftPass mirrors leftShiftPass, sliding each pure insert/delete
// as far right as strongly_equal allows, merging into the next diff
// when the whole forward gap collapses.
func rightShiftPass(a, b diffseq.Sequence, diffs []diffseq.Diff) []diffseq.Diff {
	n, m := a.Len(), b.Len()
	result := make([]diffseq.Diff, len(diffs))
	copy(result, diffs)
	nextA, nextB := n, m
	for i := len(result) - 1; i >= 0; i-- {
		d := result[i]
		if d.IsPureInsertOrDelete() {
			d = rightShiftOne(a, b, d, nextA, nextB)
			result[i] = d
		}
		if i+1 < len(result) {
			next := result[i+1]
			if d.AHi == next.ALo && d.BHi == next.BLo {
				merged := diffseq.Diff{ALo: d.ALo, AHi: next.AHi, BLo: d.BLo, BHi: next.BHi}
				result[i] = merged
				result = append(result[:i+1], result[i+2:]...)
			}
		}
		nextA, nextB = d.ALo, d.BLo
	}
	return result
}

func rightShiftOne(a, b diffseq.Sequence, d diffseq.Diff, nextA, nextB int) diffseq.Diff {
	var maxShift int
	if d.InsertsOnly() {
		maxShift = nextA - d.AHi
	} else {
		maxShift = nextB - d.BHi
	}
	delta := 0
	for delta < maxShift && a.StronglyEqual(d.ALo+delta, b, d.BLo+delta) {
		delta++
	}
	return diffseq.Diff{ALo: d.ALo + delta, AHi: d.AHi + delta, BLo: d.BLo + delta, BHi: d.BHi + delta}
}
