// Package myers implements the forward-only O(ND) shortest-edit-script
// algorithm, generic over any diffseq.Sequence pair, with a cooperative
// wall-clock budget.
package myers

import (
	"time"

	"github.com/redgreen/linediff/internal/diffseq"
)

// Budget is a cooperative wall-clock limit checked once per outer d
// iteration. A zero Budget never expires.
type Budget struct {
	deadline time.Time
	limited  bool
}

// NewBudget returns a Budget that expires ms milliseconds from now. A
// non-positive ms disables the timeout.
func NewBudget(ms int) *Budget {
	if ms <= 0 {
		return &Budget{}
	}
	return &Budget{deadline: time.Now().Add(time.Duration(ms) * time.Millisecond), limited: true}
}

// Expired reports whether the budget's deadline has passed.
func (b *Budget) Expired() bool {
	if b == nil || !b.limited {
		return false
	}
	return time.Now().After(b.deadline)
}

// TimeoutFlag is the single, monotonic, OR-ed timeout signal shared by
// every engine invocation within one pipeline run: once set, it stays
// set.
type TimeoutFlag struct {
	hit bool
}

// Set marks the flag hit. Idempotent.
func (f *TimeoutFlag) Set() {
	if f != nil {
		f.hit = true
	}
}

// Hit reports whether the flag has ever been set.
func (f *TimeoutFlag) Hit() bool {
	return f != nil && f.hit
}

// snake is a maximal diagonal run of matches, chained to its predecessor
// via an arena index rather than a pointer.
type snake struct {
	x, y, length int
	prev         int32 // index into the snake arena, or -1
}

// Run computes the shortest edit script between a and b. On budget
// expiry it sets flag and returns a single diff spanning both sequences.
func Run(a, b diffseq.Sequence, budget *Budget, flag *TimeoutFlag) []diffseq.Diff {
	n, m := a.Len(), b.Len()
	if n == 0 && m == 0 {
		return nil
	}

	maxD := n + m
	size := 2*maxD + 1
	offset := maxD
	v := make([]int, size)
	path := make([]int32, size)
	for i := range path {
		path[i] = -1
	}
	v[1+offset] = 0

	var snakes []snake

	for d := 0; d <= maxD; d++ {
		if budget.Expired() {
			flag.Set()
			return []diffseq.Diff{{ALo: 0, AHi: n, BLo: 0, BHi: m}}
		}

		kMin := -minInt(d, m+d%2)
		kMax := minInt(d, n+d%2)
		for k := kMin; k <= kMax; k += 2 {
			var x int
			var prev int32
			// Predecessors are taken only from inside [kMin, kMax]; the
			// slots just outside that range hold no point reached at d-1.
			down := k == kMin || (k != kMax && v[k-1+offset] < v[k+1+offset])
			if down {
				x = v[k+1+offset]
				prev = path[k+1+offset]
			} else {
				x = v[k-1+offset] + 1
				prev = path[k-1+offset]
			}
			x = minInt(x, n)
			y := x - k
			if y > m {
				// The move down left B's bounds; this diagonal's slot keeps
				// the point it reached at an earlier d.
				continue
			}

			startX, startY := x, y
			for x < n && y < m && a.Element(x) == b.Element(y) {
				x++
				y++
			}
			if x > startX {
				snakes = append(snakes, snake{x: startX, y: startY, length: x - startX, prev: prev})
				prev = int32(len(snakes) - 1)
			}

			v[k+offset] = x
			path[k+offset] = prev

			if x >= n && y >= m {
				return reconstruct(snakes, prev, n, m)
			}
		}
	}

	// Unreachable for valid inputs: the loop above always finds x==n,
	// y==m by d==maxD. Kept as a safe fallback rather than a panic.
	return []diffseq.Diff{{ALo: 0, AHi: n, BLo: 0, BHi: m}}
}

func reconstruct(snakes []snake, head int32, n, m int) []diffseq.Diff {
	var chain []snake
	for idx := head; idx >= 0; idx = snakes[idx].prev {
		chain = append(chain, snakes[idx])
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var diffs []diffseq.Diff
	prevX, prevY := 0, 0
	for _, sn := range chain {
		if sn.x != prevX || sn.y != prevY {
			diffs = append(diffs, diffseq.Diff{ALo: prevX, AHi: sn.x, BLo: prevY, BHi: sn.y})
		}
		prevX = sn.x + sn.length
		prevY = sn.y + sn.length
	}
	if prevX != n || prevY != m {
		diffs = append(diffs, diffseq.Diff{ALo: prevX, AHi: n, BLo: prevY, BHi: m})
	}
	return diffs
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
