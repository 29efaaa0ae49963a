package render

import (
	"regexp"

	"github.com/jonathan/resume-processor/internal/layout"
)

// highlightPattern bolds metrics and achievement keywords inside
// responsibility text: percentages (20%, 20+), currency amounts ($1,500), and
// a fixed verb list. The rule is a literal part of the formatting contract;
// do not extend the keyword set without a product decision.
var highlightPattern = regexp.MustCompile(`(?i)(\d+[%+]|\$[\d,]+|increased|decreased|improved|launched|created|developed)`)

// Highlight splits text into spans, bolding every run matched by
// highlightPattern and leaving the rest of the sentence unchanged.
func Highlight(text string) []layout.Span {
	matches := highlightPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []layout.Span{{Text: text}}
	}

	spans := make([]layout.Span, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			spans = append(spans, layout.Span{Text: text[last:m[0]]})
		}
		spans = append(spans, layout.Span{Text: text[m[0]:m[1]], Bold: true})
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, layout.Span{Text: text[last:]})
	}
	return spans
}
