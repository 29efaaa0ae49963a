package render

import (
	"strings"

	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/normalize"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Education renders the education section. It accepts the institution/school
// and date/dates key aliases, emits a placeholder header when the institution
// is missing, and prefers a bulleted details list over a joined coursework
// line when both are present.
func Education(p normalize.Canonical, styles *theme.Catalog) []layout.Block {
	var blocks []layout.Block

	for _, entry := range p.Entries {
		switch {
		case entry.Skipped != "":
			blocks = append(blocks, SkippedBlock(p.Kind, entry.Skipped))
			continue
		case entry.Literal != "":
			blocks = append(blocks, literalEntryBlocks("From Resume Text", "Education Information", entry.Literal)...)
			blocks = append(blocks, layout.Spacer(10))
			continue
		}

		edu := entry.Fields

		blocks = append(blocks, layout.TwoColumn(
			theme.StyleExperienceTitle,
			institutionLine(edu),
			stringField(edu, "date", "dates"),
		))

		if degreeLine := degreeText(edu); degreeLine != "" {
			blocks = append(blocks, layout.Rich(
				theme.StyleJobTitle,
				layout.Span{Text: degreeLine, Italic: true},
			))
		}

		if details, ok := stringList(edu, "details"); ok && len(details) > 0 {
			blocks = append(blocks, layout.Spacer(5))
			for _, detail := range details {
				blocks = append(blocks, bullet(theme.StyleListItem, layout.Span{Text: detail}))
			}
		} else if courses, ok := stringList(edu, "courses"); ok && len(courses) > 0 {
			blocks = append(blocks, layout.Spacer(5))
			blocks = append(blocks, layout.Rich(
				theme.StyleContent,
				layout.Span{Text: "Relevant Coursework:", Bold: true},
			))
			blocks = append(blocks, layout.Paragraph(theme.StyleContent, strings.Join(courses, ", ")))
		}

		blocks = append(blocks, layout.Spacer(10))
	}

	return blocks
}

// institutionLine builds the bold institution/location spans, falling back to
// a placeholder when neither key alias is present.
func institutionLine(edu map[string]any) []layout.Span {
	institution := stringField(edu, "institution", "school")
	location := stringField(edu, "location")

	switch {
	case institution != "" && location != "":
		return []layout.Span{{Text: institution + ", " + location, Bold: true}}
	case institution != "":
		return []layout.Span{{Text: institution, Bold: true}}
	default:
		return []layout.Span{{Text: "Institution not specified", Bold: true}}
	}
}

// degreeText formats "degree: major", or just the degree when no major is set.
func degreeText(edu map[string]any) string {
	degree := stringField(edu, "degree")
	major := stringField(edu, "major")

	switch {
	case degree != "" && major != "":
		return degree + ": " + major
	case degree != "":
		return degree
	default:
		return ""
	}
}
