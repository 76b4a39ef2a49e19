package store

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemDocuments(t *testing.T) (*Documents, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewDocuments(NewFileBackend(fs, "/data"), nil), fs
}

func TestLoadMissingDocumentReturnsDefault(t *testing.T) {
	docs, _ := newMemDocuments(t)

	got := Load(docs, "absent.json", []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, got)
}

func TestLoadCorruptDocumentReturnsDefault(t *testing.T) {
	docs, fs := newMemDocuments(t)
	require.NoError(t, afero.WriteFile(fs, "/data/broken.json", []byte("{not json"), 0644))

	got := Load(docs, "broken.json", map[string]int{"x": 1})
	assert.Equal(t, map[string]int{"x": 1}, got)
}

func TestLoadWrongShapeReturnsDefault(t *testing.T) {
	docs, fs := newMemDocuments(t)
	require.NoError(t, afero.WriteFile(fs, "/data/items.json", []byte(`{"a": 1}`), 0644))

	got := Load(docs, "items.json", []string{})
	assert.Empty(t, got)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	docs := NewDocuments(NewFileBackend(fs, "/deep/nested/data"), nil)

	require.NoError(t, Save(docs, "doc.json", map[string]int{"a": 1}))

	exists, err := afero.Exists(fs, "/deep/nested/data/doc.json")
	require.NoError(t, err)
	assert.True(t, exists)

	leftover, err := afero.Exists(fs, "/deep/nested/data/doc.json.tmp")
	require.NoError(t, err)
	assert.False(t, leftover)
}

func TestSaveOverwritesAndLoadsBack(t *testing.T) {
	docs, _ := newMemDocuments(t)

	require.NoError(t, Save(docs, "doc.json", []string{"one", "two"}))
	require.NoError(t, Save(docs, "doc.json", []string{"three"}))

	assert.Equal(t, []string{"three"}, Load(docs, "doc.json", []string{}))
}

func TestSaveWritesIndentedUTF8(t *testing.T) {
	docs, fs := newMemDocuments(t)

	require.NoError(t, Save(docs, "doc.json", map[string]string{"title": "Café <b>☕</b>"}))

	raw, err := afero.ReadFile(fs, "/data/doc.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"title\": \"Café <b>☕</b>\"\n}\n", string(raw))
}

func TestBoltBackendPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	backend, err := NewBoltBackend(dir)
	require.NoError(t, err)
	docs := NewDocuments(backend, nil)
	require.NoError(t, Save(docs, RatingsDocument, map[string]map[string]int{"item_1": {"default": 4}}))
	require.NoError(t, docs.Close())

	backend, err = NewBoltBackend(dir)
	require.NoError(t, err)
	docs = NewDocuments(backend, nil)
	defer docs.Close()

	got := Load(docs, RatingsDocument, map[string]map[string]int{})
	assert.Equal(t, 4, got["item_1"]["default"])
}

func TestBoltBackendMissingDocument(t *testing.T) {
	backend, err := NewBoltBackend(t.TempDir())
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Read("nothing.json")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestBoltBackendMemoryOnly(t *testing.T) {
	backend, err := NewBoltBackend("")
	require.NoError(t, err)

	_, err = backend.Read("doc.json")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	require.NoError(t, backend.Write("doc.json", []byte(`[]`)))
	data, err := backend.Read("doc.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.NoError(t, backend.Close())
}
