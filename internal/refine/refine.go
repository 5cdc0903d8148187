// Package refine implements per-line-diff character refinement: given
// one line-level diff, it builds char sequences over exactly the
// affected lines, re-runs the engine and the char-level optimizer
// chain, and translates the surviving char diffs into 1-based (line,
// column) RangeMappings.
package refine

import (
	"github.com/redgreen/linediff/internal/charseq"
	"github.com/redgreen/linediff/internal/diffseq"
	"github.com/redgreen/linediff/internal/myers"
	"github.com/redgreen/linediff/internal/optimize"
)

// Policy carries the two whitespace/extension flags refinement needs
// from the caller's Options.
type Policy struct {
	ConsiderWhitespaceChanges bool
	ExtendToSubwords          bool
}

// Diff refines one line-level diff into its inline RangeMappings.
func Diff(aLines, bLines []string, lineDiff diffseq.Diff, policy Policy, budget *myers.Budget, flag *myers.TimeoutFlag) []diffseq.RangeMapping {
	ignoreTrimWhitespace := !policy.ConsiderWhitespaceChanges

	a := charseq.New(aLines, lineDiff.ALo, lineDiff.AHi, ignoreTrimWhitespace, 0)
	b := charseq.New(bLines, lineDiff.BLo, lineDiff.BHi, ignoreTrimWhitespace, 0)

	charDiffs := myers.Run(a, b, budget, flag)

	charDiffs = optimize.ShiftAndJoin(a, b, charDiffs)
	charDiffs = optimize.AlignToBoundaries(a, b, charDiffs)

	charDiffs = optimize.ExtendToWords(a, b, charDiffs, false)
	if policy.ExtendToSubwords {
		charDiffs = optimize.ExtendToWords(a, b, charDiffs, true)
	}

	charDiffs = optimize.FuseShortMatches(charDiffs)

	charDiffs = optimize.FuseLongDiffs(a, b, charDiffs)
	charDiffs = optimize.ExtendWhitespaceEdges(a, b, charDiffs)

	mappings := make([]diffseq.RangeMapping, 0, len(charDiffs))
	for _, cd := range charDiffs {
		origStart, origEnd := a.TranslateRange(cd.ALo, cd.AHi)
		modStart, modEnd := b.TranslateRange(cd.BLo, cd.BHi)
		mappings = append(mappings, diffseq.RangeMapping{
			Original: diffseq.Range{
				Start: diffseq.Position{Line: lineDiff.ALo + origStart.Line + 1, Column: origStart.Column + 1},
				End:   diffseq.Position{Line: lineDiff.ALo + origEnd.Line + 1, Column: origEnd.Column + 1},
			},
			Modified: diffseq.Range{
				Start: diffseq.Position{Line: lineDiff.BLo + modStart.Line + 1, Column: modStart.Column + 1},
				End:   diffseq.Position{Line: lineDiff.BLo + modEnd.Line + 1, Column: modEnd.Column + 1},
			},
		})
	}
	return mappings
}
