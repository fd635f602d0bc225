package render

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line diff of two renderings. Removed lines are prefixed
// with "- ", added lines with "+ " and unchanged lines with two spaces.
// It returns "" when the renderings are equal.
func (t *Terminal) Diff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	if t.plain {
		added.DisableColor()
		removed.DisableColor()
	}

	var sb strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				sb.WriteString(added.Sprint("+ " + line))
			case diffmatchpatch.DiffDelete:
				sb.WriteString(removed.Sprint("- " + line))
			case diffmatchpatch.DiffEqual:
				sb.WriteString("  " + line)
			}
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
