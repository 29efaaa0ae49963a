package normalize

import (
	"encoding/json"
	"fmt"
)

// Shape is the closed set of canonical payload shapes. Renderers branch on
// this tag instead of re-testing value types.
type Shape int

const (
	// ShapeText is a plain text payload.
	ShapeText Shape = iota
	// ShapeRecord is a single mapping payload (skills categories, or a lone
	// record for an unregistered section).
	ShapeRecord
	// ShapeRecordList is an ordered list of entries for list-of-records
	// sections (experience, education, projects, certifications, publications).
	ShapeRecordList
	// ShapeList is a mixed list payload for unregistered sections, whose
	// elements may be strings or mappings.
	ShapeList
	// ShapeMalformed marks a payload whose shape could not be coerced; it
	// renders as a visible error block.
	ShapeMalformed
)

const (
	// maxLiteralLen caps the displayed length of a literal-text fallback.
	maxLiteralLen = 500
	// maxPreviewLen caps the preview shown for a skipped invalid entry.
	maxPreviewLen = 100
)

// Entry is one element of a canonicalized list-of-records section. Exactly
// one of Fields, Literal, or Skipped is set.
type Entry struct {
	Fields  map[string]any // a well-formed record
	Literal string         // truncated original text of a bare-string payload
	Skipped string         // bounded preview of an invalid element
}

// Canonical is a section payload after normalization, in the shape its
// renderer expects.
type Canonical struct {
	Kind  SectionKind
	Shape Shape

	Text    string         // ShapeText
	Record  map[string]any // ShapeRecord
	Entries []Entry        // ShapeRecordList
	Items   []any          // ShapeList

	// ShapeMalformed details: the kind name of the offending value and a
	// bounded preview where one is displayable.
	Reason  string
	Preview string
}

// Normalize coerces a raw section payload into the canonical shape for its
// section kind. It never fails and never mutates the input; mappings are
// shallow-copied into the result.
func Normalize(kind SectionKind, raw any) Canonical {
	if IsListKind(kind) {
		return normalizeRecordList(kind, raw)
	}
	if kind == KindSkills {
		return normalizeSkills(raw)
	}
	return normalizeOpen(kind, raw)
}

// normalizeRecordList handles sections that expect a list of records.
func normalizeRecordList(kind SectionKind, raw any) Canonical {
	switch v := raw.(type) {
	case string:
		// Literal-text fallback: preserve the text as a single placeholder
		// record rather than dropping the section.
		return Canonical{
			Kind:    kind,
			Shape:   ShapeRecordList,
			Entries: []Entry{{Literal: Truncate(v, maxLiteralLen)}},
		}
	case map[string]any:
		return Canonical{
			Kind:    kind,
			Shape:   ShapeRecordList,
			Entries: []Entry{{Fields: copyRecord(v)}},
		}
	case []any:
		entries := make([]Entry, 0, len(v))
		for _, elem := range v {
			if m, ok := elem.(map[string]any); ok {
				entries = append(entries, Entry{Fields: copyRecord(m)})
				continue
			}
			entries = append(entries, Entry{Skipped: Truncate(preview(elem), maxPreviewLen)})
		}
		return Canonical{Kind: kind, Shape: ShapeRecordList, Entries: entries}
	default:
		return Canonical{Kind: kind, Shape: ShapeMalformed, Reason: KindName(raw)}
	}
}

// normalizeSkills handles the skills section, which expects a mapping from
// category name to a skill list or a scalar.
func normalizeSkills(raw any) Canonical {
	switch v := raw.(type) {
	case map[string]any:
		return Canonical{Kind: KindSkills, Shape: ShapeRecord, Record: copyRecord(v)}
	case string:
		return Canonical{
			Kind:    KindSkills,
			Shape:   ShapeMalformed,
			Reason:  KindName(raw),
			Preview: Truncate(v, 250),
		}
	default:
		return Canonical{Kind: KindSkills, Shape: ShapeMalformed, Reason: KindName(raw)}
	}
}

// normalizeOpen handles summary and unregistered section kinds, which the
// default renderer accepts in any of the open shapes.
func normalizeOpen(kind SectionKind, raw any) Canonical {
	switch v := raw.(type) {
	case string:
		return Canonical{Kind: kind, Shape: ShapeText, Text: v}
	case map[string]any:
		return Canonical{Kind: kind, Shape: ShapeRecord, Record: copyRecord(v)}
	case []any:
		items := make([]any, len(v))
		copy(items, v)
		return Canonical{Kind: kind, Shape: ShapeList, Items: items}
	default:
		return Canonical{Kind: kind, Shape: ShapeMalformed, Reason: KindName(raw)}
	}
}

// KindName names a JSON-compatible value's shape for error messages: the
// value itself is never dumped into the document.
func KindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, json.Number:
		return "number"
	case map[string]any:
		return "mapping"
	case []any:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Truncate caps s at n characters, appending an ellipsis marker when
// truncated. The cut counts runes, not bytes, so multi-byte text is never
// split mid-encoding.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func preview(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}

func copyRecord(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
