package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-processor/internal/layout"
)

// bulletPrefix marks list-item paragraphs. cp1252-safe for the PDF core fonts.
const bulletPrefix = "• "

// bullet builds a ListItem-style paragraph from spans, prefixing the marker.
func bullet(style string, spans ...layout.Span) layout.Block {
	out := make([]layout.Span, 0, len(spans)+1)
	out = append(out, layout.Span{Text: bulletPrefix})
	out = append(out, spans...)
	return layout.Rich(style, out...)
}

// stringField returns the first non-empty string value among the given keys.
// Key aliases (institution/school, date/dates) resolve in argument order.
func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// stringList returns the value under key as a string slice, converting
// non-string elements with fmt.Sprint. ok is false when the value is absent
// or not a list.
func stringList(m map[string]any, key string) ([]string, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out, true
}

// joinOrScalar renders a value as a comma-joined list when it is one, or as
// its scalar text otherwise.
func joinOrScalar(v any) string {
	if items, ok := v.([]any); ok {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// sortedKeys returns the mapping's keys in sorted order. JSON object order is
// not preserved through map decoding, so sorting keeps output deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
