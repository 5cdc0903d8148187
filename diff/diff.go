// Package diff is the top-level coordinator: it builds the two line
// sequences off a shared interner, picks the small-input DP aligner or
// the Myers engine for the line-level pass, runs the line-level
// optimizer chain, and refines every surviving line diff into
// character-level RangeMappings.
package diff

import (
	"github.com/redgreen/linediff/internal/diffseq"
	"github.com/redgreen/linediff/internal/dpalign"
	"github.com/redgreen/linediff/internal/intern"
	"github.com/redgreen/linediff/internal/lineseq"
	"github.com/redgreen/linediff/internal/myers"
	"github.com/redgreen/linediff/internal/optimize"
	"github.com/redgreen/linediff/internal/refine"
)

// dpInputThreshold is the |a|+|b| cutoff below which the DP aligner
// runs instead of Myers for the line-level pass.
const dpInputThreshold = 1700

// Options controls whitespace policy, inline word extension, the engine
// timeout, and the optional equal-span whitespace scan.
type Options struct {
	IgnoreTrimWhitespace      bool
	ConsiderWhitespaceChanges bool
	ExtendToSubwords          bool
	TimeoutMS                 int
	// ScanEqualSpans re-examines every line the line-level pass left
	// equal for a whitespace-only inline change; default false.
	ScanEqualSpans bool
}

// Result is the coordinator's output: the line-level diff list, the
// character-level range mappings it refines to, and whether any engine
// invocation in the pipeline hit its timeout budget.
type Result struct {
	LineDiffs     []diffseq.Diff
	RangeMappings []diffseq.RangeMapping
	HitTimeout    bool
}

// ComputeLineAlignments is the core's single external entry point. An
// empty a and b (both zero lines) is the invalid/empty input case: it
// returns an empty Result without invoking any engine.
func ComputeLineAlignments(a, b []string, options Options) Result {
	if len(a) == 0 && len(b) == 0 {
		return Result{}
	}

	var interner intern.Interner
	aSeq := lineseq.New(a, &interner, options.IgnoreTrimWhitespace)
	bSeq := lineseq.New(b, &interner, options.IgnoreTrimWhitespace)

	budget := myers.NewBudget(options.TimeoutMS)
	flag := &myers.TimeoutFlag{}

	var lineDiffs []diffseq.Diff
	if len(a)+len(b) < dpInputThreshold {
		lineDiffs = dpalign.Run(aSeq, bSeq, budget, flag)
	} else {
		lineDiffs = myers.Run(aSeq, bSeq, budget, flag)
	}

	lineDiffs = optimize.ShiftAndJoin(aSeq, bSeq, lineDiffs)
	lineDiffs = optimize.AlignToBoundaries(aSeq, bSeq, lineDiffs)
	lineDiffs = optimize.FuseWhitespaceGaps(aSeq.Lines(), lineDiffs)

	policy := refine.Policy{
		ConsiderWhitespaceChanges: options.ConsiderWhitespaceChanges,
		ExtendToSubwords:          options.ExtendToSubwords,
	}

	var mappings []diffseq.RangeMapping
	for _, d := range lineDiffs {
		mappings = append(mappings, refine.Diff(a, b, d, policy, budget, flag)...)
	}

	if options.ScanEqualSpans {
		mappings = append(mappings, scanEqualSpans(a, b, lineDiffs, policy, budget, flag)...)
	}

	return Result{LineDiffs: lineDiffs, RangeMappings: mappings, HitTimeout: flag.Hit()}
}

// scanEqualSpans covers the optional case where every line the
// line-level pass left as equal is still a candidate for a
// whitespace-only inline change when ConsiderWhitespaceChanges is set
// and IgnoreTrimWhitespace hid a difference from the line-level pass.
// Each equal line is run back through refine.Diff as its own
// one-line-wide diff region.
func scanEqualSpans(a, b []string, lineDiffs []diffseq.Diff, policy refine.Policy, budget *myers.Budget, flag *myers.TimeoutFlag) []diffseq.RangeMapping {
	var out []diffseq.RangeMapping
	prevA, prevB := 0, 0
	emit := func(loA, hiA, loB, hiB int) {
		if hiA-loA != hiB-loB {
			return
		}
		for i := 0; i < hiA-loA; i++ {
			line := diffseq.Diff{ALo: loA + i, AHi: loA + i + 1, BLo: loB + i, BHi: loB + i + 1}
			out = append(out, refine.Diff(a, b, line, policy, budget, flag)...)
		}
	}
	for _, d := range lineDiffs {
		emit(prevA, d.ALo, prevB, d.BLo)
		prevA, prevB = d.AHi, d.BHi
	}
	emit(prevA, len(a), prevB, len(b))
	return out
}

