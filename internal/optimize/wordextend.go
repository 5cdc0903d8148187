package optimize

import (
	"sort"

	"github.com/redgreen/linediff/internal/charseq"
	"github.com/redgreen/linediff/internal/diffseq"
)

// ExtendToWords operates at char granularity. It inverts diffs to find
// the equal regions between them, and for each equal region whose
// boundary sits inside a word (or subword, when force is set) whose
// matched portion is too short, emits a synthetic diff spanning the
// whole word. Synthetic diffs are then merged with the original list,
// fusing any overlaps.
//
// Without force, a word is extended when its matched width is below 2/3
// of the word's width; with force, subwords are used and any partial
// overlap (matched width below the full width) triggers extension.
func ExtendToWords(a, b *charseq.Sequence, diffs []diffseq.Diff, force bool) []diffseq.Diff {
	equals := invertToEqualRegions(a.Len(), b.Len(), diffs)

	var synthetic []diffseq.Diff
	for _, eq := range equals {
		if d, ok := wordExtensionAt(a, eq.ALo, eq.AHi, force); ok {
			synthetic = append(synthetic, diffseq.Diff{ALo: d.start, AHi: d.end, BLo: eq.BLo, BHi: eq.BLo})
		}
		if d, ok := wordExtensionAt(a, eq.AHi, eq.ALo, force); ok {
			synthetic = append(synthetic, diffseq.Diff{ALo: d.start, AHi: d.end, BLo: eq.BHi, BHi: eq.BHi})
		}
		if d, ok := wordExtensionAt(b, eq.BLo, eq.BHi, force); ok {
			synthetic = append(synthetic, diffseq.Diff{ALo: eq.ALo, AHi: eq.ALo, BLo: d.start, BHi: d.end})
		}
		if d, ok := wordExtensionAt(b, eq.BHi, eq.BLo, force); ok {
			synthetic = append(synthetic, diffseq.Diff{ALo: eq.AHi, AHi: eq.AHi, BLo: d.start, BHi: d.end})
		}
	}
	if len(synthetic) == 0 {
		return diffs
	}
	return mergeSortedOverlapping(append(append([]diffseq.Diff(nil), diffs...), synthetic...))
}

type wordSpan struct{ start, end int }

// wordExtensionAt inspects the boundary at offset k within an equal
// region that spans [regionLo, regionHi) on this side (regionHi may be
// less than regionLo when inspecting the trailing boundary; both calls
// pass the boundary point k as the first argument and the opposite end
// of the equal region as the second, used only to bound the matched
// width measurement). It reports a word/subword span to synthesize a
// diff over, if the matched portion is too short.
func wordExtensionAt(s *charseq.Sequence, k, regionOtherEnd int, force bool) (wordSpan, bool) {
	var start, end int
	var ok bool
	if force {
		start, end, ok = s.FindSubword(k)
		if !ok && k > 0 {
			start, end, ok = s.FindSubword(k - 1)
		}
	} else {
		start, end, ok = s.FindWord(k)
		if !ok && k > 0 {
			start, end, ok = s.FindWord(k - 1)
		}
	}
	if !ok {
		return wordSpan{}, false
	}
	total := end - start
	if total == 0 {
		return wordSpan{}, false
	}
	matched := matchedWidth(k, regionOtherEnd, start, end)
	if force {
		if matched < total {
			return wordSpan{start, end}, true
		}
		return wordSpan{}, false
	}
	if matched*3 < total*2 {
		return wordSpan{start, end}, true
	}
	return wordSpan{}, false
}

func matchedWidth(k, regionOtherEnd, wordStart, wordEnd int) int {
	lo, hi := k, regionOtherEnd
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < wordStart {
		lo = wordStart
	}
	if hi > wordEnd {
		hi = wordEnd
	}
	if hi < lo {
		return 0
	}
	return hi - lo
}

type equalRegion struct{ ALo, AHi, BLo, BHi int }

func invertToEqualRegions(n, m int, diffs []diffseq.Diff) []equalRegion {
	var regions []equalRegion
	prevA, prevB := 0, 0
	for _, d := range diffs {
		if d.ALo > prevA || d.BLo > prevB {
			regions = append(regions, equalRegion{prevA, d.ALo, prevB, d.BLo})
		}
		prevA, prevB = d.AHi, d.BHi
	}
	if prevA < n || prevB < m {
		regions = append(regions, equalRegion{prevA, n, prevB, m})
	}
	return regions
}

// mergeSortedOverlapping sorts diffs by (ALo, BLo) and fuses any whose
// ranges overlap or touch on either axis.
func mergeSortedOverlapping(diffs []diffseq.Diff) []diffseq.Diff {
	sort.Slice(diffs, func(i, j int) bool {
		if diffs[i].ALo != diffs[j].ALo {
			return diffs[i].ALo < diffs[j].ALo
		}
		return diffs[i].BLo < diffs[j].BLo
	})
	result := make([]diffseq.Diff, 0, len(diffs))
	cur := diffs[0]
	for _, d := range diffs[1:] {
		if d.ALo <= cur.AHi && d.BLo <= cur.BHi {
			if d.AHi > cur.AHi {
				cur.AHi = d.AHi
			}
			if d.BHi > cur.BHi {
				cur.BHi = d.BHi
			}
			continue
		}
		result = append(result, cur)
		cur = d
	}
	return append(result, cur)
}
