package blob

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName_ReplacesUnsafeChars(t *testing.T) {
	assert.Equal(t, "resume_1_ab.pdf", NormalizeName("resume_1_ab.pdf"))
	assert.Equal(t, "a_b_c.pdf", NormalizeName("a/b c.pdf"))
	assert.Equal(t, "____.pdf", NormalizeName("é:ü*.pdf"))
}

func TestNewName_Format(t *testing.T) {
	name := NewName()
	assert.True(t, strings.HasPrefix(name, "resume_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Equal(t, name, NormalizeName(name))
}

func TestNewName_Unique(t *testing.T) {
	assert.NotEqual(t, NewName(), NewName())
}

func TestFSStore_PutGetRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put("doc.pdf", []byte("%PDF-data")))
	assert.True(t, store.Exists("doc.pdf"))

	data, err := store.Get("doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-data"), data)
}

func TestFSStore_GetMissingIsNotFound(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, store.Exists("missing.pdf"))
}

func TestFSStore_DeleteIdempotent(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put("doc.pdf", []byte("x")))
	require.NoError(t, store.Delete("doc.pdf"))
	assert.False(t, store.Exists("doc.pdf"))
	assert.NoError(t, store.Delete("doc.pdf"))
}

func TestFSStore_TraversalNamesConfined(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put("../escape.pdf", []byte("x")))
	// The name is normalized, so the write stays inside the store directory.
	assert.True(t, store.Exists("../escape.pdf"))
	assert.True(t, store.Exists(".._escape.pdf"))
}
