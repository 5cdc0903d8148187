package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redgreen/linediff/internal/charseq"
	"github.com/redgreen/linediff/internal/diffseq"
)

func TestMatchedWidth(t *testing.T) {
	assert.Equal(t, 2, matchedWidth(0, 3, 0, 2))
	assert.Equal(t, 2, matchedWidth(3, 0, 0, 2)) // swapped lo/hi
	assert.Equal(t, 0, matchedWidth(5, 6, 0, 2)) // entirely outside the word
}

func TestInvertToEqualRegions(t *testing.T) {
	diffs := []diffseq.Diff{{ALo: 2, AHi: 3, BLo: 2, BHi: 3}}
	regions := invertToEqualRegions(6, 6, diffs)
	assert.Equal(t, []equalRegion{{0, 2, 0, 2}, {3, 6, 3, 6}}, regions)
}

func TestInvertToEqualRegionsNoLeadingOrTrailing(t *testing.T) {
	diffs := []diffseq.Diff{{ALo: 0, AHi: 4, BLo: 0, BHi: 4}}
	regions := invertToEqualRegions(4, 4, diffs)
	assert.Empty(t, regions)
}

func TestMergeSortedOverlapping(t *testing.T) {
	diffs := []diffseq.Diff{{ALo: 5, AHi: 7, BLo: 5, BHi: 7}, {ALo: 0, AHi: 2, BLo: 0, BHi: 2}, {ALo: 1, AHi: 3, BLo: 1, BHi: 3}}
	got := mergeSortedOverlapping(diffs)
	assert.Equal(t, []diffseq.Diff{{ALo: 0, AHi: 3, BLo: 0, BHi: 3}, {ALo: 5, AHi: 7, BLo: 5, BHi: 7}}, got)
}

func TestWordExtensionAtDeclinesWhenMostlyMatched(t *testing.T) {
	a := charseq.New([]string{"ab c"}, 0, 1, false, 0)
	_, ok := wordExtensionAt(a, 0, 3, false)
	assert.False(t, ok)
}

func TestWordExtensionAtExtendsShortMatch(t *testing.T) {
	a := charseq.New([]string{"ab c"}, 0, 1, false, 0)
	span, ok := wordExtensionAt(a, 3, 0, false)
	assert.True(t, ok)
	assert.Equal(t, wordSpan{3, 4}, span)
}

func TestWordExtensionAtForceLowersThreshold(t *testing.T) {
	a := charseq.New([]string{"cat"}, 0, 1, false, 0)

	_, ok := wordExtensionAt(a, 2, 0, false)
	assert.False(t, ok, "2/3 matched should not extend under the ordinary threshold")

	span, ok := wordExtensionAt(a, 2, 0, true)
	assert.True(t, ok, "any partial overlap should extend when forced")
	assert.Equal(t, wordSpan{0, 3}, span)
}

// boundsOf returns the tightest (minALo, maxAHi, minBLo, maxBHi) spanning
// all diffs, independent of how they were merged or ordered.
func boundsOf(diffs []diffseq.Diff) (minALo, maxAHi, minBLo, maxBHi int) {
	minALo, minBLo = 1<<30, 1<<30
	for _, d := range diffs {
		if d.ALo < minALo {
			minALo = d.ALo
		}
		if d.AHi > maxAHi {
			maxAHi = d.AHi
		}
		if d.BLo < minBLo {
			minBLo = d.BLo
		}
		if d.BHi > maxBHi {
			maxBHi = d.BHi
		}
	}
	return
}

func TestExtendToWordsExtendsPartialWordReplace(t *testing.T) {
	a := charseq.New([]string{"ab c"}, 0, 1, false, 0)
	b := charseq.New([]string{"ab d"}, 0, 1, false, 0)
	diffs := []diffseq.Diff{{ALo: 3, AHi: 4, BLo: 3, BHi: 4}}

	got := ExtendToWords(a, b, diffs, false)

	minALo, maxAHi, minBLo, maxBHi := boundsOf(got)
	assert.Equal(t, 3, minALo)
	assert.Equal(t, 4, maxAHi)
	assert.Equal(t, 3, minBLo)
	assert.Equal(t, 4, maxBHi)
}

func TestExtendToWordsNoOpWhenNothingToExtend(t *testing.T) {
	a := charseq.New([]string{"a b"}, 0, 1, false, 0)
	b := charseq.New([]string{"a c"}, 0, 1, false, 0)
	diffs := []diffseq.Diff{{ALo: 2, AHi: 3, BLo: 2, BHi: 3}}

	got := ExtendToWords(a, b, diffs, false)
	assert.Equal(t, diffs, got)
}
