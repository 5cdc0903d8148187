// Package dpalign implements a small-input dynamic-programming line
// aligner, used by the coordinator instead of Myers when |A|+|B| < 1700.
package dpalign

import (
	"math"

	"github.com/redgreen/linediff/internal/diffseq"
	"github.com/redgreen/linediff/internal/lineseq"
	"github.com/redgreen/linediff/internal/myers"
)

// Run maximizes sum(score(i, j)) over matched line pairs and returns
// the alignment as a SequenceDiff list. Equality between A[i] and B[j]
// is decided the same way the Myers engine decides it (interned element
// ids), so the two algorithms agree on what counts as "the same line"
// under the caller's whitespace policy.
func Run(a, b *lineseq.Sequence, budget *myers.Budget, flag *myers.TimeoutFlag) []diffseq.Diff {
	n, m := a.Len(), b.Len()
	if n == 0 && m == 0 {
		return nil
	}

	if budget.Expired() {
		flag.Set()
		return []diffseq.Diff{{ALo: 0, AHi: n, BLo: 0, BHi: m}}
	}

	bLines := b.Lines()

	// dp[i][j]: best score aligning A[:i] with B[:j]. run[i][j]: length
	// of the consecutive diagonal run ending at (i, j), used to break
	// ties in favor of longer matched runs.
	dp := make([][]float64, n+1)
	run := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]float64, m+1)
		run[i] = make([]int, m+1)
	}

	const (
		opDiag = iota
		opUp   // consumes A[i-1] only (deletion)
		opLeft // consumes B[j-1] only (insertion)
	)
	choice := make([][]uint8, n+1)
	for i := range choice {
		choice[i] = make([]uint8, m+1)
	}

	for i := 1; i <= n; i++ {
		if i%256 == 0 && budget.Expired() {
			flag.Set()
			return []diffseq.Diff{{ALo: 0, AHi: n, BLo: 0, BHi: m}}
		}
		for j := 1; j <= m; j++ {
			equal := a.Element(i-1) == b.Element(j-1)
			diag := dp[i-1][j-1] + pairScore(equal, bLines[j-1])
			up := dp[i-1][j]
			left := dp[i][j-1]

			best := diag
			bestOp := uint8(opDiag)
			bestRun := run[i-1][j-1] + 1
			if up > best || (up == best && run[i-1][j] > bestRun) {
				best, bestOp, bestRun = up, opUp, run[i-1][j]
			}
			if left > best || (left == best && run[i][j-1] > bestRun) {
				best, bestOp, bestRun = left, opLeft, run[i][j-1]
			}
			dp[i][j] = best
			choice[i][j] = bestOp
			if bestOp == opDiag {
				run[i][j] = run[i-1][j-1] + 1
			} else {
				run[i][j] = 0
			}
		}
	}

	type step struct {
		equal   bool
		ai, bi  int // consumed indices, -1 if not consumed on that side
	}
	var steps []step
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && choice[i][j] == opDiag:
			steps = append(steps, step{equal: a.Element(i-1) == b.Element(j-1), ai: i - 1, bi: j - 1})
			i--
			j--
		case i > 0 && (j == 0 || choice[i][j] == opUp):
			steps = append(steps, step{ai: i - 1, bi: -1})
			i--
		default:
			steps = append(steps, step{ai: -1, bi: j - 1})
			j--
		}
	}
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}

	var diffs []diffseq.Diff
	var pending bool
	var cur diffseq.Diff
	ca, cb := 0, 0
	flushPending := func() {
		if pending {
			diffs = append(diffs, cur)
			pending = false
		}
	}
	for _, st := range steps {
		if st.ai >= 0 && st.bi >= 0 && st.equal {
			flushPending()
			ca++
			cb++
			continue
		}
		if !pending {
			cur = diffseq.Diff{ALo: ca, AHi: ca, BLo: cb, BHi: cb}
			pending = true
		}
		if st.ai >= 0 {
			cur.AHi = ca + 1
			ca++
		}
		if st.bi >= 0 {
			cur.BHi = cb + 1
			cb++
		}
	}
	flushPending()
	return diffs
}

func pairScore(equal bool, bLine string) float64 {
	if !equal {
		return 0.99
	}
	if bLine == "" {
		return 0.1
	}
	return 1 + math.Log(1+float64(len([]rune(bLine))))
}
