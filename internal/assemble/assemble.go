// Package assemble orders and concatenates section renderer output into one
// linear document body: header first, then the fixed section order, then any
// remaining keys in the record's encounter order. Assembly always completes;
// a record that cannot be treated as a mapping produces a whole-document
// error page instead of a failure.
package assemble

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/normalize"
	"github.com/jonathan/resume-processor/internal/render"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Document metadata is constant across all renders, never derived from the
// input (ATS discoverability tags).
const (
	docTitle   = "Resume"
	docAuthor  = "Resume Generator"
	docSubject = "Resume"

	genericName = "Resume"
)

var docKeywords = []string{"Resume", "CV", "Job Application"}

// Contact line markers and separator. The marker glyphs are fixed and
// cp1252-safe so the PDF core fonts can draw them.
const (
	contactMarker = "• "
	linkMarker    = "» "
	contactSep    = "  |  "
)

// Assemble builds the rendered document for a resume record. The record may
// be raw JSON bytes (top-level key order is preserved), an already-decoded
// mapping, or any degenerate value, which yields the error page.
func Assemble(rec any, registry *render.Registry, styles *theme.Catalog) *layout.Document {
	doc := &layout.Document{
		Title:    docTitle,
		Author:   docAuthor,
		Subject:  docSubject,
		Keywords: docKeywords,
	}

	r, ok, reason := toRecord(rec)
	if !ok {
		doc.Blocks = errorPage(reason)
		return doc
	}

	doc.Blocks = append(doc.Blocks, headerBlocks(r.fields)...)

	rendered := make(map[string]bool)
	for _, kind := range normalize.SectionOrder {
		key := string(kind)
		rendered[key] = true
		value, present := r.fields[key]
		if !present || isEmpty(value) {
			continue
		}
		doc.Blocks = append(doc.Blocks, sectionBlocks(key, value, registry, styles)...)
	}

	for _, key := range r.keys {
		if rendered[key] || normalize.ReservedKeys[key] {
			continue
		}
		value := r.fields[key]
		if isEmpty(value) {
			continue
		}
		doc.Blocks = append(doc.Blocks, sectionBlocks(key, value, registry, styles)...)
	}

	return doc
}

// sectionBlocks emits the humanized section header, a divider, and the
// section body. A renderer failure is substituted with a single error block;
// it never aborts assembly.
func sectionBlocks(key string, value any, registry *render.Registry, styles *theme.Catalog) []layout.Block {
	title := humanizeTitle(key)
	blocks := []layout.Block{
		layout.Paragraph(theme.StyleSectionHeader, title),
		layout.Divider(),
	}

	kind := normalize.SectionKind(key)
	canonical := normalize.Normalize(kind, value)
	result := registry.Render(kind, canonical, styles)
	if result.Failed {
		blocks = append(blocks, render.ErrorBlock(
			fmt.Sprintf("Error processing %s: %s", title, result.Reason),
		))
		return blocks
	}

	return append(blocks, result.Blocks...)
}

// headerBlocks builds the centered name heading and contact lines. Lines
// with no contributing fields are omitted.
func headerBlocks(fields map[string]any) []layout.Block {
	name := stringValue(fields, "name")
	if name == "" {
		name = genericName
	}
	blocks := []layout.Block{layout.Paragraph(theme.StyleHeaderName, name)}

	var contactParts []string
	if email := stringValue(fields, "email"); email != "" {
		contactParts = append(contactParts, contactMarker+email)
	}
	if phone := stringValue(fields, "phone"); phone != "" {
		contactParts = append(contactParts, contactMarker+phone)
	}

	var socialParts []string
	if github := stringValue(fields, "github"); github != "" {
		socialParts = append(socialParts, linkMarker+github)
	}
	if linkedin := stringValue(fields, "linkedin"); linkedin != "" {
		socialParts = append(socialParts, linkMarker+linkedin)
	}

	if len(contactParts) > 0 {
		blocks = append(blocks, layout.Paragraph(theme.StyleContact, strings.Join(contactParts, contactSep)))
	}
	if len(socialParts) > 0 {
		blocks = append(blocks, layout.Paragraph(theme.StyleContact, strings.Join(socialParts, contactSep)))
	}
	if len(contactParts) > 0 || len(socialParts) > 0 {
		blocks = append(blocks, layout.Spacer(5))
	}

	return blocks
}

// errorPage is the whole-document fallback for a record that is not a
// mapping: a generic header plus one explanatory paragraph.
func errorPage(reason string) []layout.Block {
	return []layout.Block{
		layout.Paragraph(theme.StyleHeaderName, "Error Processing Resume"),
		layout.Paragraph(theme.StyleNormal,
			fmt.Sprintf("The resume data could not be processed: expected a mapping, got %s.", reason)),
	}
}

// stringValue returns the field as a non-empty string, or "".
func stringValue(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

// isEmpty reports whether a section value has no content to render: nil,
// an empty string, list, or mapping.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
