// Package blob stores rendered PDF bytes under generated names and issues
// signed, expiring download tokens for them.
package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a named blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Store is the blob persistence interface.
type Store interface {
	Put(name string, data []byte) error
	Get(name string) ([]byte, error)
	Delete(name string) error
	Exists(name string) bool
}

// unsafeChars matches everything a blob name may not contain.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// NormalizeName replaces unsafe characters in a blob name with underscores.
func NormalizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// NewName generates a fresh PDF blob name: resume_<unix-ts>_<uuid8>.pdf.
func NewName() string {
	return fmt.Sprintf("resume_%d_%s.pdf", time.Now().Unix(), uuid.New().String()[:8])
}

// FSStore stores blobs as files in one directory.
type FSStore struct {
	dir string
}

// NewFSStore creates a filesystem blob store rooted at dir, creating the
// directory if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory %s: %w", dir, err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) path(name string) string {
	return filepath.Join(s.dir, NormalizeName(name))
}

// Put writes a blob, replacing any existing blob with the same name.
func (s *FSStore) Put(name string, data []byte) error {
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", name, err)
	}
	return nil
}

// Get reads a blob by name.
func (s *FSStore) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", name, err)
	}
	return data, nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *FSStore) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", name, err)
	}
	return nil
}

// Exists reports whether a blob with the given name is stored.
func (s *FSStore) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}
