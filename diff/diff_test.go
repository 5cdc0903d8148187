package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redgreen/linediff/internal/diffseq"
)

func TestComputeLineAlignmentsBothEmpty(t *testing.T) {
	got := ComputeLineAlignments(nil, nil, Options{})
	assert.Equal(t, Result{}, got)
}

func TestComputeLineAlignmentsIdentical(t *testing.T) {
	got := ComputeLineAlignments([]string{"x"}, []string{"x"}, Options{})
	assert.Empty(t, got.LineDiffs)
	assert.Empty(t, got.RangeMappings)
	assert.False(t, got.HitTimeout)
}

func TestComputeLineAlignmentsFullLineReplace(t *testing.T) {
	got := ComputeLineAlignments([]string{"foo"}, []string{"bar"}, Options{ConsiderWhitespaceChanges: true})

	assert.Equal(t, []diffseq.Diff{{ALo: 0, AHi: 1, BLo: 0, BHi: 1}}, got.LineDiffs)
	want := []diffseq.RangeMapping{{
		Original: diffseq.Range{Start: diffseq.Position{Line: 1, Column: 1}, End: diffseq.Position{Line: 1, Column: 4}},
		Modified: diffseq.Range{Start: diffseq.Position{Line: 1, Column: 1}, End: diffseq.Position{Line: 1, Column: 4}},
	}}
	assert.Equal(t, want, got.RangeMappings)
	assert.False(t, got.HitTimeout)
}

func TestComputeLineAlignmentsMidSequencePureInsert(t *testing.T) {
	got := ComputeLineAlignments([]string{"a", "c"}, []string{"a", "b", "c"}, Options{ConsiderWhitespaceChanges: true})

	assert.Equal(t, []diffseq.Diff{{ALo: 1, AHi: 1, BLo: 1, BHi: 2}}, got.LineDiffs)
	want := []diffseq.RangeMapping{{
		Original: diffseq.Range{Start: diffseq.Position{Line: 2, Column: 1}, End: diffseq.Position{Line: 2, Column: 1}},
		Modified: diffseq.Range{Start: diffseq.Position{Line: 2, Column: 1}, End: diffseq.Position{Line: 2, Column: 2}},
	}}
	assert.Equal(t, want, got.RangeMappings)
	assert.False(t, got.HitTimeout)
}

func TestComputeLineAlignmentsMidSequencePureDelete(t *testing.T) {
	got := ComputeLineAlignments([]string{"a", "b", "c"}, []string{"a", "c"}, Options{ConsiderWhitespaceChanges: true})

	assert.Equal(t, []diffseq.Diff{{ALo: 1, AHi: 2, BLo: 1, BHi: 1}}, got.LineDiffs)
	want := []diffseq.RangeMapping{{
		Original: diffseq.Range{Start: diffseq.Position{Line: 2, Column: 1}, End: diffseq.Position{Line: 2, Column: 2}},
		Modified: diffseq.Range{Start: diffseq.Position{Line: 2, Column: 1}, End: diffseq.Position{Line: 2, Column: 1}},
	}}
	assert.Equal(t, want, got.RangeMappings)
	assert.False(t, got.HitTimeout)
}

func TestComputeLineAlignmentsScanEqualSpansDisabled(t *testing.T) {
	got := ComputeLineAlignments([]string{"x  "}, []string{"x"}, Options{
		IgnoreTrimWhitespace: true,
		ScanEqualSpans:       false,
	})
	assert.Empty(t, got.LineDiffs)
	assert.Empty(t, got.RangeMappings)
}

func TestComputeLineAlignmentsScanEqualSpansRevealsWhitespaceDiff(t *testing.T) {
	got := ComputeLineAlignments([]string{"x  "}, []string{"x"}, Options{
		IgnoreTrimWhitespace:      true,
		ScanEqualSpans:            true,
		ConsiderWhitespaceChanges: true,
	})
	// The line-level pass sees the lines as equal (trim-insensitive), but
	// the equal-span scan re-examines them at full char granularity and
	// must surface the trailing whitespace as a change.
	assert.Empty(t, got.LineDiffs)
	assert.NotEmpty(t, got.RangeMappings)
}
