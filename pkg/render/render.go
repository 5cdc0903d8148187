// Package render turns a computed diff.Result into a unified-diff hunk
// layout with context windowing, adapted from the project's prior
// line-level text differ to run on top of the line/char diff engine
// instead of patience diff.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/redgreen/linediff/diff"
)

// Unified is a unified-diff rendering of a computed Result.
type Unified struct {
	OldName    string
	NewName    string
	Hunks      []Hunk
	HitTimeout bool
}

// Hunk is a single hunk of a Unified diff.
type Hunk struct {
	LineOld  int
	CountOld int
	LineNew  int
	CountNew int
	Lines    []HunkLine
}

// SplitViewPaddings reports, for each run of inserts/deletes in the
// hunk, how many filler rows the shorter side needs so a side-by-side
// layout stays aligned.
func (h Hunk) SplitViewPaddings() struct{ Red, Green map[int]int } {
	red, green := map[int]int{}, map[int]int{}
	for i := 0; i < len(h.Lines); i++ {
		l := h.Lines[i]
		if l.Type() == TypeEqual {
			continue
		}
		ins, del := countNextInsertDelete(h.Lines[i:])
		if ins > del {
			red[i+del] = ins - del
		} else if del > ins {
			green[i+ins] = del - ins
		}
		i += ins + del - 1
	}
	return struct {
		Red   map[int]int
		Green map[int]int
	}{red, green}
}

func countNextInsertDelete(ll []HunkLine) (ins, del int) {
	for _, l := range ll {
		switch l.Type() {
		case TypeInsert:
			ins++
		case TypeDelete:
			del++
		default:
			return
		}
	}
	return
}

// HunkLine is one line inside a Hunk.
type HunkLine struct {
	NumberX int
	NumberY int
	Value   string
}

// Possible results of HunkLine.Type.
const (
	TypeInsert  = "insert"
	TypeDelete  = "delete"
	TypeEqual   = "equal"
	TypeInvalid = "invalid"
)

func (l HunkLine) Type() string {
	switch l.Value[0] {
	case '+':
		return TypeInsert
	case '-':
		return TypeDelete
	case ' ':
		return TypeEqual
	}
	return TypeInvalid
}

func (l HunkLine) Symbol() byte { return l.Value[0] }

func (l HunkLine) Content() string { return l.Value[1:] }

func (u Unified) String() string {
	if len(u.Hunks) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "diff %s %s\n", u.OldName, u.NewName)
	fmt.Fprintf(&b, "--- %s\n", u.OldName)
	fmt.Fprintf(&b, "+++ %s\n", u.NewName)
	for _, hunk := range u.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", hunk.LineOld, hunk.CountOld, hunk.LineNew, hunk.CountNew)
		for _, l := range hunk.Lines {
			b.WriteString(l.Value)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Options controls whitespace policy and context-line count.
type Options struct {
	// Context is the number of unchanged lines of context kept around
	// each hunk. Diff's default is 3.
	Context int
	// Space selects a whitespace display mode: "" shows every change,
	// "w" approximates --ignore-all-space, "b" approximates
	// --ignore-space-change.
	Space string
	// ExtendToSubwords enables the force-subword inline extension pass.
	ExtendToSubwords bool
	// TimeoutMS is the engine's wall-clock budget; 0 disables it.
	TimeoutMS int
}

func (o Options) toDiffOptions() diff.Options {
	switch o.Space {
	case "w": // --ignore-all-space approximation: line-edge whitespace is ignored when matching lines and leading whitespace inline; interior whitespace still counts.
		return diff.Options{
			IgnoreTrimWhitespace:      true,
			ConsiderWhitespaceChanges: false,
			ExtendToSubwords:          o.ExtendToSubwords,
			TimeoutMS:                 o.TimeoutMS,
		}
	case "b": // --ignore-space-change: ignore leading/trailing only.
		return diff.Options{
			IgnoreTrimWhitespace:      true,
			ConsiderWhitespaceChanges: true,
			ExtendToSubwords:          o.ExtendToSubwords,
			TimeoutMS:                 o.TimeoutMS,
		}
	default:
		return diff.Options{
			IgnoreTrimWhitespace:      false,
			ConsiderWhitespaceChanges: true,
			ExtendToSubwords:          o.ExtendToSubwords,
			TimeoutMS:                 o.TimeoutMS,
		}
	}
}

// Diff renders the default (full-whitespace, 3-line context) unified
// diff between old and new.
func Diff(oldName string, old []byte, newName string, new []byte) Unified {
	return DiffWithOptions(oldName, old, newName, new, Options{Context: 3})
}

type pair struct{ x, y int }

// DiffWithOptions computes the line/char diff between old and new and
// windows it into unified-diff hunks with opts.Context lines of
// surrounding context on each side, merging hunks whose gap is too
// small to print as separate context blocks.
func DiffWithOptions(oldName string, old []byte, newName string, new []byte, opts Options) Unified {
	u := Unified{OldName: oldName, NewName: newName}
	if bytes.Equal(old, new) {
		return u
	}

	aLines := splitLines(old)
	bLines := splitLines(new)

	ctxN := opts.Context
	if ctxN < 0 {
		ctxN = 3
	}

	result := diff.ComputeLineAlignments(aLines, bLines, opts.toDiffOptions())
	u.HitTimeout = result.HitTimeout

	var chunk, count pair
	var ctext []HunkLine

	flush := func() {
		if len(ctext) == 0 {
			return
		}
		lineOld, lineNew := chunk.x, chunk.y
		if count.x > 0 {
			lineOld++
		}
		if count.y > 0 {
			lineNew++
		}
		u.Hunks = append(u.Hunks, Hunk{
			LineOld:  lineOld,
			CountOld: count.x,
			LineNew:  lineNew,
			CountNew: count.y,
			Lines:    append([]HunkLine(nil), ctext...),
		})
		count = pair{}
		ctext = ctext[:0]
	}

	emitContext := func(loA, loB, n int) {
		for k := 0; k < n; k++ {
			count.x++
			count.y++
			ctext = append(ctext, HunkLine{NumberX: chunk.x + count.x, NumberY: chunk.y + count.y, Value: " " + aLines[loA+k]})
		}
		_ = loB
	}

	done := pair{0, 0}
	for _, d := range result.LineDiffs {
		commonLen := d.ALo - done.x

		if len(ctext) > 0 && commonLen < 2*ctxN {
			emitContext(done.x, done.y, commonLen)
		} else {
			if len(ctext) > 0 {
				n := minInt(commonLen, ctxN)
				emitContext(done.x, done.y, n)
				flush()
			}
			leadN := minInt(commonLen, ctxN)
			chunk = pair{d.ALo - leadN, d.BLo - leadN}
			emitContext(chunk.x, chunk.y, leadN)
		}

		for k := d.ALo; k < d.AHi; k++ {
			count.x++
			ctext = append(ctext, HunkLine{NumberX: chunk.x + count.x, NumberY: -1, Value: "-" + aLines[k]})
		}
		for k := d.BLo; k < d.BHi; k++ {
			count.y++
			ctext = append(ctext, HunkLine{NumberX: -1, NumberY: chunk.y + count.y, Value: "+" + bLines[k]})
		}

		done = pair{d.AHi, d.BHi}
	}

	if len(ctext) > 0 {
		n := minInt(len(aLines)-done.x, ctxN)
		emitContext(done.x, done.y, n)
	}
	flush()

	return u
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// splitLines splits raw file content into lines without their trailing
// newline. A final line with no trailing newline gets GNU diff's
// conventional marker appended, matching the old text differ's
// behavior.
func splitLines(b []byte) []string {
	lines := strings.Split(string(b), "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n\\ No newline at end of file"
	return lines
}
