package optimize

import "github.com/redgreen/linediff/internal/diffseq"

// FuseShortMatches runs a single pass merging consecutive diffs whose
// unchanged gap is at most 2 elements on either axis. Granularity-
// agnostic; it is called inside char refinement. The line-level
// whitespace-gap pass does not call it.
func FuseShortMatches(diffs []diffseq.Diff) []diffseq.Diff {
	if len(diffs) < 2 {
		return diffs
	}
	result := make([]diffseq.Diff, 0, len(diffs))
	cur := diffs[0]
	for _, d := range diffs[1:] {
		gapA := d.ALo - cur.AHi
		gapB := d.BLo - cur.BHi
		if gapA <= 2 || gapB <= 2 {
			cur = diffseq.Diff{ALo: cur.ALo, AHi: d.AHi, BLo: cur.BLo, BHi: d.BHi}
			continue
		}
		result = append(result, cur)
		cur = d
	}
	return append(result, cur)
}

// FuseWhitespaceGaps fuses consecutive line diffs X then Y, at line
// granularity, when the unchanged line range between them contains at
// most 4 non-whitespace characters and at least one of X, Y spans more
// than 5 lines total (both axes summed). Runs up to 10 passes, stopping
// early once a pass makes no change.
func FuseWhitespaceGaps(lines []string, diffs []diffseq.Diff) []diffseq.Diff {
	for pass := 0; pass < 10; pass++ {
		next, changed := whitespaceGapPass(lines, diffs)
		diffs = next
		if !changed {
			break
		}
	}
	return diffs
}

func whitespaceGapPass(lines []string, diffs []diffseq.Diff) ([]diffseq.Diff, bool) {
	if len(diffs) < 2 {
		return diffs, false
	}
	result := make([]diffseq.Diff, 0, len(diffs))
	changed := false
	cur := diffs[0]
	for _, y := range diffs[1:] {
		gapNonWS := nonWhitespaceCount(lines, cur.AHi, y.ALo)
		xSize := cur.LenA() + cur.LenB()
		ySize := y.LenA() + y.LenB()
		if gapNonWS <= 4 && (xSize > 5 || ySize > 5) {
			cur = diffseq.Diff{ALo: cur.ALo, AHi: y.AHi, BLo: cur.BLo, BHi: y.BHi}
			changed = true
			continue
		}
		result = append(result, cur)
		cur = y
	}
	return append(result, cur), changed
}

func nonWhitespaceCount(lines []string, loLine, hiLine int) int {
	n := 0
	for i := loLine; i < hiLine && i < len(lines); i++ {
		for _, r := range lines[i] {
			if r != ' ' && r != '\t' && r != '\r' && r != '\n' && r != '\f' && r != '\v' {
				n++
			}
		}
	}
	return n
}
