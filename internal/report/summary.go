// Package report summarizes what a fix changed in a file.
package report

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Summary counts lines by how a line-level diff classifies them
type Summary struct {
	Added     int
	Removed   int
	Unchanged int
}

// Changed reports whether any line was added or removed
func (s Summary) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

func (s Summary) String() string {
	if !s.Changed() {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d lines", s.Added, s.Removed)
}

// Summarize diffs before and after line by line. A moved block counts as
// removed at its old position and added at its new one.
func Summarize(before, after []string) Summary {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	oldChars, newChars, lineArray := dmp.DiffLinesToChars(joinText(before), joinText(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lineArray)

	var s Summary
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Added += n
		case diffmatchpatch.DiffDelete:
			s.Removed += n
		default:
			s.Unchanged += n
		}
	}
	return s
}

func joinText(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
