package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redgreen/linediff/internal/diffseq"
)

func TestFuseShortMatchesMergesSmallGap(t *testing.T) {
	diffs := []diffseq.Diff{{ALo: 0, AHi: 1, BLo: 0, BHi: 1}, {ALo: 3, AHi: 4, BLo: 3, BHi: 4}}
	got := FuseShortMatches(diffs)
	assert.Equal(t, []diffseq.Diff{{ALo: 0, AHi: 4, BLo: 0, BHi: 4}}, got)
}

func TestFuseShortMatchesKeepsLargeGap(t *testing.T) {
	diffs := []diffseq.Diff{{ALo: 0, AHi: 1, BLo: 0, BHi: 1}, {ALo: 4, AHi: 5, BLo: 4, BHi: 5}}
	got := FuseShortMatches(diffs)
	assert.Equal(t, diffs, got)
}

func TestFuseShortMatchesOrCondition(t *testing.T) {
	diffs := []diffseq.Diff{{ALo: 0, AHi: 1, BLo: 0, BHi: 1}, {ALo: 10, AHi: 11, BLo: 2, BHi: 3}}
	got := FuseShortMatches(diffs)
	assert.Equal(t, []diffseq.Diff{{ALo: 0, AHi: 11, BLo: 0, BHi: 3}}, got)
}

func TestFuseShortMatchesShortInput(t *testing.T) {
	assert.Empty(t, FuseShortMatches(nil))
	one := []diffseq.Diff{{ALo: 0, AHi: 1, BLo: 0, BHi: 1}}
	assert.Equal(t, one, FuseShortMatches(one))
}

func TestFuseWhitespaceGapsMergesAcrossBlankLine(t *testing.T) {
	lines := []string{"a", "b", "c", "   ", "e"}
	diffs := []diffseq.Diff{{ALo: 0, AHi: 3, BLo: 0, BHi: 3}, {ALo: 4, AHi: 5, BLo: 4, BHi: 5}}
	got := FuseWhitespaceGaps(lines, diffs)
	assert.Equal(t, []diffseq.Diff{{ALo: 0, AHi: 5, BLo: 0, BHi: 5}}, got)
}

func TestFuseWhitespaceGapsRejectsNonWhitespaceGap(t *testing.T) {
	lines := []string{"a", "b", "c", "xxxxx", "e"}
	diffs := []diffseq.Diff{{ALo: 0, AHi: 3, BLo: 0, BHi: 3}, {ALo: 4, AHi: 5, BLo: 4, BHi: 5}}
	got := FuseWhitespaceGaps(lines, diffs)
	assert.Equal(t, diffs, got)
}

func TestFuseWhitespaceGapsRejectsSmallDiffs(t *testing.T) {
	lines := []string{"a", "   ", "b"}
	diffs := []diffseq.Diff{{ALo: 0, AHi: 1, BLo: 0, BHi: 1}, {ALo: 2, AHi: 3, BLo: 2, BHi: 3}}
	got := FuseWhitespaceGaps(lines, diffs)
	assert.Equal(t, diffs, got)
}
