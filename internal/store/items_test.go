package store

import (
	"testing"

	"github.com/mmcdole/vista/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func video(title string) domain.GalleryItem {
	return domain.GalleryItem{Title: title, Category: "Cooking", Type: domain.ItemTypeVideo}
}

func TestItemStoreAddAndList(t *testing.T) {
	docs, _ := newMemDocuments(t)
	s := NewItemStore(docs, nil)

	assert.Empty(t, s.List())

	id, err := s.Add(video("  Pasta  "))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Pasta", items[0].Title)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Cooking", got.Category)
}

func TestItemStoreAddIgnoresCallerID(t *testing.T) {
	docs, _ := newMemDocuments(t)
	s := NewItemStore(docs, nil)

	item := video("Pasta")
	item.ID = "chosen"
	id, err := s.Add(item)
	require.NoError(t, err)
	assert.NotEqual(t, "chosen", id)
}

func TestItemStoreAddRejectsInvalidItems(t *testing.T) {
	docs, _ := newMemDocuments(t)
	s := NewItemStore(docs, nil)

	_, err := s.Add(video("   "))
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = s.Add(domain.GalleryItem{Title: "No type"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	bad := video("Bad action")
	bad.Actions = []domain.Action{{Name: "x", TimestampSec: -1}}
	_, err = s.Add(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidAction)

	assert.Empty(t, s.List())
}

func TestItemStoreDelete(t *testing.T) {
	docs, _ := newMemDocuments(t)
	s := NewItemStore(docs, nil)

	first, err := s.Add(video("First"))
	require.NoError(t, err)
	second, err := s.Add(video("Second"))
	require.NoError(t, err)

	deleted, err := s.Delete(first)
	require.NoError(t, err)
	assert.True(t, deleted)

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, second, items[0].ID)
}

func TestItemStoreDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	docs, fs := newMemDocuments(t)
	s := NewItemStore(docs, nil)

	_, err := s.Add(video("Only"))
	require.NoError(t, err)
	before, err := afero.ReadFile(fs, "/data/"+ItemsDocument)
	require.NoError(t, err)

	deleted, err := s.Delete("item_missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	after, err := afero.ReadFile(fs, "/data/"+ItemsDocument)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestItemStoreRegeneratesCollidingIDs(t *testing.T) {
	docs, _ := newMemDocuments(t)
	s := NewItemStore(docs, nil)

	queue := []string{"item_a", "item_a", "item_a", "item_b"}
	s.newID = func() string {
		id := queue[0]
		queue = queue[1:]
		return id
	}

	first, err := s.Add(video("One"))
	require.NoError(t, err)
	second, err := s.Add(video("Two"))
	require.NoError(t, err)

	assert.Equal(t, "item_a", first)
	assert.Equal(t, "item_b", second)
}

func TestItemStoreIDsStayUniqueAcrossAddDelete(t *testing.T) {
	docs, _ := newMemDocuments(t)
	s := NewItemStore(docs, nil)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, err := s.Add(video("Item"))
		require.NoError(t, err)
		assert.False(t, seen[id], "id %s reused", id)
		seen[id] = true

		if i%3 == 0 {
			_, err := s.Delete(id)
			require.NoError(t, err)
		}
	}
}

func TestItemStoreReplaceAllAndClearAll(t *testing.T) {
	docs, _ := newMemDocuments(t)
	s := NewItemStore(docs, nil)

	items := []domain.GalleryItem{
		{ID: "item_1", Title: "One", Type: domain.ItemTypeImage},
		{ID: "item_2", Title: "Two", Type: domain.ItemTypeVideo},
	}
	require.NoError(t, s.ReplaceAll(items))

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "item_1", got[0].ID)
	assert.Equal(t, "item_2", got[1].ID)

	require.NoError(t, s.ClearAll())
	assert.Empty(t, s.List())
}

func TestItemStoreCorruptDocumentReadsEmpty(t *testing.T) {
	docs, fs := newMemDocuments(t)
	require.NoError(t, afero.WriteFile(fs, "/data/"+ItemsDocument, []byte("garbage"), 0644))

	s := NewItemStore(docs, nil)
	assert.Empty(t, s.List())

	_, err := s.Add(video("Recovered"))
	require.NoError(t, err)
	assert.Len(t, s.List(), 1)
}
