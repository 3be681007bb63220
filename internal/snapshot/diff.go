package snapshot

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType is the kind of a diff line
type LineType int

const (
	LineEqual LineType = iota
	LineAdded
	LineRemoved
)

// DiffLine is one rendered entry in a diff
type DiffLine struct {
	Type LineType
	Text string
}

// DiffResult compares the current configuration with a snapshot
type DiffResult struct {
	Lines   []DiffLine
	Added   int // lines only in the snapshot
	Removed int // lines only in the current configuration
}

// Diff compares current against incoming line by line
func Diff(current, incoming *Snapshot) *DiffResult {
	oldText := joinLines(current.Lines())
	newText := joinLines(incoming.Lines())

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	result := &DiffResult{}
	for _, d := range diffs {
		var t LineType
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			t = LineAdded
		case diffmatchpatch.DiffDelete:
			t = LineRemoved
		default:
			t = LineEqual
		}

		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if line == "" {
				continue
			}
			result.Lines = append(result.Lines, DiffLine{Type: t, Text: line})
			switch t {
			case LineAdded:
				result.Added++
			case LineRemoved:
				result.Removed++
			}
		}
	}
	return result
}

// Identical reports whether the two sides match
func (d *DiffResult) Identical() bool {
	return d.Added == 0 && d.Removed == 0
}

// Summary returns a one-line description
func (d *DiffResult) Summary() string {
	if d.Identical() {
		return "No changes"
	}
	return fmt.Sprintf("+%d -%d", d.Added, d.Removed)
}

// Unified renders the diff with +/- prefixes
func (d *DiffResult) Unified() string {
	var b strings.Builder
	for _, l := range d.Lines {
		switch l.Type {
		case LineAdded:
			b.WriteString("+ ")
		case LineRemoved:
			b.WriteString("- ")
		default:
			b.WriteString("  ")
		}
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
