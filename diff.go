package plist

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line-oriented diff of the XML renderings of a and b,
// for diagnostics. Equal values yield an empty string.
func Diff(a, b Value) string {
	if a.Equal(b) {
		return ""
	}
	ax, aerr := a.XML()
	bx, berr := b.XML()
	if aerr != nil || berr != nil {
		return ""
	}
	dmp := diffmatchpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(ax, bx)
	diffs := dmp.DiffMainRunes(ra, rb, false)
	return dmp.DiffPrettyText(dmp.DiffCharsToLines(diffs, lines))
}
