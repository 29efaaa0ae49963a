// Package pdf lays assembled layout blocks onto a single-column page
// template and serializes the result to bytes.
package pdf

import "fmt"

// WriteError represents a failure serializing the final document. It is the
// one rendering failure mode that propagates to the caller: once layout
// succeeded there is no document to fall back to.
type WriteError struct {
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf write error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf write error: %s", e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
