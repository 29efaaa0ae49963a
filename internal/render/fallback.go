package render

import (
	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/normalize"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Default renders unregistered section kinds (summary included). Text
// payloads become one body paragraph; list elements become bullets or
// expanded records; mapping payloads expand each key to a bold key line with
// its values underneath.
func Default(p normalize.Canonical, styles *theme.Catalog) []layout.Block {
	switch p.Shape {
	case normalize.ShapeText:
		return []layout.Block{layout.Paragraph(theme.StyleContent, p.Text)}
	case normalize.ShapeList:
		return defaultListBlocks(p.Items)
	case normalize.ShapeRecord:
		return recordBlocks(p.Record)
	default:
		return nil
	}
}

func defaultListBlocks(items []any) []layout.Block {
	var blocks []layout.Block
	for _, item := range items {
		switch v := item.(type) {
		case string:
			blocks = append(blocks, bullet(theme.StyleListItem, layout.Span{Text: v}))
		case map[string]any:
			blocks = append(blocks, recordBlocks(v)...)
		default:
			blocks = append(blocks, bullet(theme.StyleListItem, layout.Span{Text: joinOrScalar(v)}))
		}
	}
	return blocks
}

// recordBlocks expands a mapping: one bold key line per field, with string
// values as body text and list values as bullets under the key.
func recordBlocks(record map[string]any) []layout.Block {
	var blocks []layout.Block
	for _, key := range sortedKeys(record) {
		blocks = append(blocks, layout.Rich(
			theme.StyleNormal,
			layout.Span{Text: key, Bold: true},
		))
		switch v := record[key].(type) {
		case string:
			blocks = append(blocks, layout.Paragraph(theme.StyleContent, v))
		case []any:
			for _, item := range v {
				blocks = append(blocks, bullet(theme.StyleListItem, layout.Span{Text: joinOrScalar(item)}))
			}
		}
	}
	return blocks
}
