package render

import (
	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/normalize"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Skills renders the skills section: one "Category: a, b, c" line per
// category, with the category name in bold and a small gap after each line.
// Scalar category values render as-is.
func Skills(p normalize.Canonical, styles *theme.Catalog) []layout.Block {
	var blocks []layout.Block

	for _, category := range sortedKeys(p.Record) {
		blocks = append(blocks, layout.Rich(
			theme.StyleSkillItem,
			layout.Span{Text: category + ": ", Bold: true},
			layout.Span{Text: joinOrScalar(p.Record[category])},
		))
		blocks = append(blocks, layout.Spacer(3))
	}

	return blocks
}
