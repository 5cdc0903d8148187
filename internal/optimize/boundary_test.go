package optimize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redgreen/linediff/internal/diffseq"
)

func TestAlignToBoundariesPrefersHigherScore(t *testing.T) {
	a := testSeq{
		elems: []rune("xaay"),
		scoreFn: func(k int) int {
			if k == 1 {
				return 100
			}
			return 0
		},
	}
	b := testSeq{
		elems: []rune("xaaay"),
		scoreFn: func(k int) int {
			if k == 1 || k == 2 {
				return 50
			}
			return 0
		},
	}
	diffs := []diffseq.Diff{{ALo: 2, AHi: 2, BLo: 2, BHi: 3}}
	got := AlignToBoundaries(a, b, diffs)
	assert.Equal(t, []diffseq.Diff{{ALo: 1, AHi: 1, BLo: 1, BHi: 2}}, got)
}

func TestAlignToBoundariesLeavesModificationsUntouched(t *testing.T) {
	a := seq("abc")
	b := seq("xyz")
	diffs := []diffseq.Diff{{ALo: 1, AHi: 2, BLo: 1, BHi: 2}}
	got := AlignToBoundaries(a, b, diffs)
	assert.Equal(t, diffs, got)
}

func TestAlignToBoundariesEmpty(t *testing.T) {
	a := seq("abc")
	b := seq("abc")
	got := AlignToBoundaries(a, b, nil)
	assert.Empty(t, got)
}

func TestAlignToBoundariesCapsShiftRadius(t *testing.T) {
	aElems := strings.Repeat("a", 250)
	bElems := strings.Repeat("a", 251)
	a := testSeq{
		elems: []rune(aElems),
		scoreFn: func(k int) int {
			switch k {
			case 10:
				return 1000 // outside the capped shift radius, must be ignored
			case 50:
				return 500 // inside the capped shift radius, must win
			default:
				return 0
			}
		},
	}
	b := testSeq{elems: []rune(bElems)}
	diffs := []diffseq.Diff{{ALo: 125, AHi: 125, BLo: 125, BHi: 126}}
	got := AlignToBoundaries(a, b, diffs)
	assert.Equal(t, []diffseq.Diff{{ALo: 50, AHi: 50, BLo: 50, BHi: 51}}, got)
}
