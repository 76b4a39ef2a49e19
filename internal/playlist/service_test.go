package playlist

import (
	"testing"

	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItems []domain.GalleryItem

func (f fakeItems) List() []domain.GalleryItem { return f }

func newService(t *testing.T, items ...domain.GalleryItem) *Service {
	t.Helper()
	docs := store.NewDocuments(store.NewFileBackend(afero.NewMemMapFs(), "/data"), nil)
	return NewService(store.NewPlaylistStore(docs, nil), fakeItems(items), nil)
}

var (
	pasta = domain.GalleryItem{ID: "item_pasta", Title: "Pasta", Type: domain.ItemTypeVideo}
	yoga  = domain.GalleryItem{ID: "item_yoga", Title: "Yoga", Type: domain.ItemTypeVideo}
)

func TestCreateKeepsExistingItems(t *testing.T) {
	s := newService(t, pasta)

	require.NoError(t, s.AddItem("favs", pasta.ID))
	require.NoError(t, s.Create("favs"))

	items, ok := s.Items("favs")
	require.True(t, ok)
	assert.Equal(t, []domain.GalleryItem{pasta}, items)
}

func TestCreateRejectsBlankName(t *testing.T) {
	s := newService(t)
	assert.ErrorIs(t, s.Create("   "), domain.ErrPlaylistNameRequired)
	assert.Empty(t, s.Playlists())
}

func TestCreateEmptyPlaylist(t *testing.T) {
	s := newService(t)
	require.NoError(t, s.Create("later"))

	items, ok := s.Items("later")
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestItemsPreservesOrderAndSkipsDeleted(t *testing.T) {
	s := newService(t, pasta, yoga)

	require.NoError(t, s.AddItem("mix", yoga.ID))
	require.NoError(t, s.AddItem("mix", "item_gone"))
	require.NoError(t, s.AddItem("mix", pasta.ID))

	items, ok := s.Items("mix")
	require.True(t, ok)
	assert.Equal(t, []domain.GalleryItem{yoga, pasta}, items)

	_, ok = s.Items("unknown")
	assert.False(t, ok)
}

func TestPlaylistsSortedByName(t *testing.T) {
	s := newService(t, pasta, yoga)
	require.NoError(t, s.AddItem("workout", yoga.ID))
	require.NoError(t, s.AddItem("dinner", pasta.ID))
	require.NoError(t, s.AddItem("dinner", pasta.ID))

	lists := s.Playlists()
	require.Len(t, lists, 2)
	assert.Equal(t, "dinner", lists[0].Name)
	assert.Equal(t, 1, lists[0].ItemCount())
	assert.Equal(t, "workout", lists[1].Name)
}

func TestMembership(t *testing.T) {
	s := newService(t, pasta, yoga)
	require.NoError(t, s.AddItem("dinner", pasta.ID))
	require.NoError(t, s.AddItem("favs", pasta.ID))
	require.NoError(t, s.AddItem("workout", yoga.ID))

	assert.Equal(t, map[string]bool{"dinner": true, "favs": true}, s.Membership(pasta.ID))
	assert.Empty(t, s.Membership("item_none"))
}
