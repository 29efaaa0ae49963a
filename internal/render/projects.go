package render

import (
	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/normalize"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Projects renders the projects section: a bold name header (with the date
// in parentheses when present), a bulleted description, and an italic
// technologies line.
func Projects(p normalize.Canonical, styles *theme.Catalog) []layout.Block {
	var blocks []layout.Block

	for _, entry := range p.Entries {
		switch {
		case entry.Skipped != "":
			blocks = append(blocks, SkippedBlock(p.Kind, entry.Skipped))
			continue
		case entry.Literal != "":
			blocks = append(blocks, literalEntryBlocks("From Resume Text", "", entry.Literal)...)
			blocks = append(blocks, layout.Spacer(5))
			continue
		}

		project := entry.Fields

		if name := stringField(project, "name"); name != "" {
			header := name
			if date := stringField(project, "date"); date != "" {
				header += " (" + date + ")"
			}
			blocks = append(blocks, layout.Rich(
				theme.StyleJobTitle,
				layout.Span{Text: header, Bold: true},
			))
		}

		if description := stringField(project, "description"); description != "" {
			blocks = append(blocks, bullet(theme.StyleListItem, layout.Span{Text: description}))
		}

		if tech, ok := project["technologies"]; ok {
			blocks = append(blocks, layout.Rich(
				theme.StyleExperienceDetails,
				layout.Span{Text: "Technologies: " + joinOrScalar(tech), Italic: true},
			))
		}

		blocks = append(blocks, layout.Spacer(5))
	}

	return blocks
}
