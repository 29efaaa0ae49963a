// Package engine is the single entry point for turning a resume record into
// PDF bytes. It builds the per-render theme, style catalog, and renderer
// registry, and bounds how many renders run concurrently.
package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-processor/internal/assemble"
	"github.com/jonathan/resume-processor/internal/pdf"
	"github.com/jonathan/resume-processor/internal/render"
	"github.com/jonathan/resume-processor/internal/theme"
)

// Engine renders resume records to PDFs. Renders share no mutable state;
// the semaphore only caps how many run at once.
type Engine struct {
	sem *semaphore.Weighted
}

// New builds an engine allowing up to maxConcurrent simultaneous renders.
// Zero or negative means one render per CPU.
func New(maxConcurrent int) *Engine {
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &Engine{sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

// Render turns a decoded resume record into PDF bytes using the named theme.
// Unknown theme names fall back to the default theme. Blocking on the
// concurrency cap honors ctx; the render itself is not interruptible.
func (e *Engine) Render(ctx context.Context, record any, themeName string) ([]byte, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	t := theme.Resolve(themeName)
	styles := theme.BuildCatalog(t)
	registry := render.NewRegistry()

	doc := assemble.Assemble(record, registry, styles)
	return pdf.NewWriter(t, styles).Write(doc)
}

// RenderJSON renders raw JSON bytes, preserving the document's top-level
// key order for the trailing free-form sections.
func (e *Engine) RenderJSON(ctx context.Context, raw []byte, themeName string) ([]byte, error) {
	return e.Render(ctx, raw, themeName)
}
