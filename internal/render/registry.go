// Package render turns canonicalized section payloads into ordered layout
// block sequences. A registry dispatches each section kind to its renderer,
// with a default renderer for unrecognized kinds; failures inside a renderer
// are absorbed at the section boundary and reported as a Result, never as a
// panic that aborts the document.
package render

import (
	"fmt"

	"github.com/jonathan/resume-processor/internal/layout"
	"github.com/jonathan/resume-processor/internal/normalize"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Func renders a canonical payload for one section kind into layout blocks.
type Func func(p normalize.Canonical, styles *theme.Catalog) []layout.Block

// Result is the outcome of rendering one section: either its blocks or a
// failure the assembler substitutes with a single error block.
type Result struct {
	Blocks  []layout.Block
	Failed  bool
	Section string
	Reason  string
}

// Registry maps section kinds to renderers.
type Registry struct {
	renderers map[normalize.SectionKind]Func
	fallback  Func
}

// NewRegistry builds the default registry: experience, skills, education and
// projects have dedicated renderers; everything else (summary included) uses
// the default renderer.
func NewRegistry() *Registry {
	return &Registry{
		renderers: map[normalize.SectionKind]Func{
			normalize.KindExperience: Experience,
			normalize.KindSkills:     Skills,
			normalize.KindEducation:  Education,
			normalize.KindProjects:   Projects,
		},
		fallback: Default,
	}
}

// Register binds a renderer to a section kind, replacing any existing binding.
func (r *Registry) Register(kind normalize.SectionKind, fn Func) {
	r.renderers[kind] = fn
}

// Render dispatches the payload to the renderer for its kind and absorbs any
// panic raised inside it. Malformed payloads short-circuit to an error block
// without entering the renderer.
func (r *Registry) Render(kind normalize.SectionKind, p normalize.Canonical, styles *theme.Catalog) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{
				Failed:  true,
				Section: string(kind),
				Reason:  fmt.Sprint(rec),
			}
		}
	}()

	if p.Shape == normalize.ShapeMalformed {
		return Result{Blocks: malformedBlocks(kind, p)}
	}

	fn, ok := r.renderers[kind]
	if !ok {
		fn = r.fallback
	}
	return Result{Blocks: fn(p, styles)}
}

// malformedBlocks renders the error-marker payload produced by the
// normalizer: the shape is named, the value is never dumped.
func malformedBlocks(kind normalize.SectionKind, p normalize.Canonical) []layout.Block {
	blocks := []layout.Block{
		ErrorBlock(fmt.Sprintf("Invalid data format for %s: got %s", kind, p.Reason)),
	}
	if p.Preview != "" {
		blocks = append(blocks, layout.Paragraph(theme.StyleNormal, p.Preview))
	}
	return blocks
}

// ErrorBlock builds a single error-styled paragraph used to surface
// recoverable rendering failures inline.
func ErrorBlock(msg string) layout.Block {
	return layout.Paragraph(theme.StyleError, msg)
}

// SkippedBlock builds the visible marker for an invalid list element.
func SkippedBlock(kind normalize.SectionKind, previewText string) layout.Block {
	return ErrorBlock(fmt.Sprintf("Skipped invalid %s entry (not a record): %s", kind, previewText))
}
