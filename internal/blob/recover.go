package blob

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// RenderFunc re-renders a stored resume record (raw JSON) to PDF bytes.
type RenderFunc func(ctx context.Context, record []byte) ([]byte, error)

// Recoverer serves blob content with a regeneration fallback: a download
// whose blob has gone missing is re-rendered from the stored record and the
// new blob is written back, instead of failing the request.
type Recoverer struct {
	blobs  Store
	render RenderFunc
}

// NewRecoverer builds a recoverer over a blob store and a render function.
func NewRecoverer(blobs Store, render RenderFunc) *Recoverer {
	return &Recoverer{blobs: blobs, render: render}
}

// Fetch returns the PDF bytes for a resume. When blobName is empty or the
// blob is missing, the record is re-rendered and stored under a fresh name.
// The returned name differs from blobName exactly when recovery happened;
// callers should persist it.
func (r *Recoverer) Fetch(ctx context.Context, blobName string, record []byte) ([]byte, string, error) {
	if blobName != "" {
		data, err := r.blobs.Get(blobName)
		if err == nil {
			return data, blobName, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, "", err
		}
		log.Printf("[blob] %s missing, regenerating", blobName)
	}

	data, err := r.render(ctx, record)
	if err != nil {
		return nil, "", fmt.Errorf("failed to regenerate blob: %w", err)
	}

	name := NewName()
	if err := r.blobs.Put(name, data); err != nil {
		return nil, "", err
	}
	return data, name, nil
}
