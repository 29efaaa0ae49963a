package render

import (
	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/normalize"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Experience renders the work experience section: per record, a two-column
// header line (company and location left, date range right), an italic job
// title, then bulleted responsibilities and achievements with metric
// highlighting.
func Experience(p normalize.Canonical, styles *theme.Catalog) []layout.Block {
	var blocks []layout.Block

	for _, entry := range p.Entries {
		switch {
		case entry.Skipped != "":
			blocks = append(blocks, SkippedBlock(p.Kind, entry.Skipped))
			continue
		case entry.Literal != "":
			blocks = append(blocks, literalEntryBlocks("From Resume Text", "", entry.Literal)...)
			blocks = append(blocks, layout.Spacer(10))
			continue
		}

		exp := entry.Fields

		left := companyLine(exp)
		if len(left) > 0 || exp["date"] != nil {
			blocks = append(blocks, layout.TwoColumn(
				theme.StyleExperienceTitle,
				left,
				formatDateRange(stringField(exp, "date", "dates")),
			))
		}

		if title := stringField(exp, "title"); title != "" {
			blocks = append(blocks, layout.Rich(
				theme.StyleJobTitle,
				layout.Span{Text: title, Italic: true},
			))
		}

		if resps, ok := stringList(exp, "responsibilities"); ok && len(resps) > 0 {
			blocks = append(blocks, layout.Spacer(5))
			for _, resp := range resps {
				blocks = append(blocks, bullet(theme.StyleListItem, Highlight(resp)...))
			}
		}

		if achievements, ok := stringList(exp, "achievements"); ok {
			for _, a := range achievements {
				blocks = append(blocks, bullet(theme.StyleListItem, layout.Span{Text: a}))
			}
		}

		blocks = append(blocks, layout.Spacer(10))
	}

	return blocks
}

// companyLine builds the bold "Company, Location" spans for the header line.
func companyLine(exp map[string]any) []layout.Span {
	company := stringField(exp, "company")
	location := stringField(exp, "location")

	switch {
	case company != "" && location != "":
		return []layout.Span{{Text: company + ", " + location, Bold: true}}
	case company != "":
		return []layout.Span{{Text: company, Bold: true}}
	default:
		return nil
	}
}

// formatDateRange formats a date range for right-aligned display. The input
// is free text already; it passes through unchanged.
func formatDateRange(date string) string {
	return date
}

// literalEntryBlocks renders a literal-text fallback record: a bold
// placeholder header, an optional italic subtitle, and the preserved text as
// a single bullet.
func literalEntryBlocks(header, subtitle, text string) []layout.Block {
	blocks := []layout.Block{
		layout.Rich(theme.StyleExperienceTitle, layout.Span{Text: header, Bold: true}),
	}
	if subtitle != "" {
		blocks = append(blocks, layout.Rich(
			theme.StyleJobTitle,
			layout.Span{Text: subtitle, Italic: true},
		))
	}
	blocks = append(blocks, bullet(theme.StyleListItem, layout.Span{Text: text}))
	return blocks
}
