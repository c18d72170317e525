package text

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderDiff returns a line diff between before and after.
// Removed lines start with "-", added lines with "+", each followed by the
// line number on its side. Unchanged lines are omitted.
func RenderDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldLine += len(chunk)
			newLine += len(chunk)
		case diffmatchpatch.DiffDelete:
			for _, line := range chunk {
				fmt.Fprintf(&sb, "-%4d | %s\n", oldLine, line)
				oldLine++
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range chunk {
				fmt.Fprintf(&sb, "+%4d | %s\n", newLine, line)
				newLine++
			}
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r\n")
	}
	return lines
}
