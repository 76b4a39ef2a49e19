package library

import (
	"context"
	"strings"
	"testing"

	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/playlist"
	"github.com/mmcdole/vista/internal/query"
	"github.com/mmcdole/vista/internal/sample"
	"github.com/mmcdole/vista/internal/store"
	"github.com/mmcdole/vista/internal/summary"
	"github.com/mmcdole/vista/internal/upload"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	library   *Service
	playlists *playlist.Service
	ratings   *store.RatingStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	docs := store.NewDocuments(store.NewFileBackend(fs, "/data"), nil)
	t.Cleanup(func() { _ = docs.Close() })

	items := store.NewItemStore(docs, nil)
	ratings := store.NewRatingStore(docs, nil)
	return fixture{
		library:   NewService(items, ratings, upload.NewService(fs, "/data/uploads", nil), summary.New(summary.Config{}, nil), nil),
		playlists: playlist.NewService(store.NewPlaylistStore(docs, nil), items, nil),
		ratings:   ratings,
	}
}

func item(title, category string) domain.GalleryItem {
	return domain.GalleryItem{
		Title:       title,
		Category:    category,
		Type:        domain.ItemTypeVideo,
		Description: title + " walkthrough",
		Actions:     []domain.Action{{Name: "Intro", StartTime: "00:00:00"}},
	}
}

func TestEndToEndRateAndPlaylist(t *testing.T) {
	f := newFixture(t)

	first, err := f.library.Add(item("Pasta Night", "Cooking"))
	require.NoError(t, err)
	second, err := f.library.Add(item("Bread Basics", "Cooking"))
	require.NoError(t, err)

	require.NoError(t, f.library.Rate(first, 4, "alice"))
	require.NoError(t, f.library.Rate(first, 5, "bob"))

	view, ok := f.library.View(first)
	require.True(t, ok)
	assert.True(t, view.HasRating)
	assert.Equal(t, 4.5, view.Average)

	require.NoError(t, f.playlists.Create("favs"))
	require.NoError(t, f.playlists.AddItem("favs", first))
	require.NoError(t, f.playlists.AddItem("favs", first))

	favs, ok := f.playlists.Items("favs")
	require.True(t, ok)
	require.Len(t, favs, 1)
	assert.Equal(t, first, favs[0].ID)

	views := f.library.Browse(query.Request{Sort: query.SortRating})
	require.Len(t, views, 2)
	assert.Equal(t, first, views[0].Item.ID)
	assert.Equal(t, second, views[1].Item.ID)
	assert.False(t, views[1].HasRating)
}

func TestRateUnknownItem(t *testing.T) {
	f := newFixture(t)
	err := f.library.Rate("item_missing", 3, "")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRateDefaultUserOverwrites(t *testing.T) {
	f := newFixture(t)
	id, err := f.library.Add(item("Pasta Night", "Cooking"))
	require.NoError(t, err)

	require.NoError(t, f.library.Rate(id, 2, ""))
	require.NoError(t, f.library.Rate(id, 5, ""))

	assert.Equal(t, map[string]int{domain.DefaultUserID: 5}, f.ratings.Ratings(id))
}

func TestDeleteMissingItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.library.Add(item("Pasta Night", "Cooking"))
	require.NoError(t, err)

	err = f.library.Delete("item_missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Len(t, f.library.Browse(query.Request{}), 1)
}

func TestDeleteKeepsPlaylistsConsistent(t *testing.T) {
	f := newFixture(t)
	id, err := f.library.Add(item("Pasta Night", "Cooking"))
	require.NoError(t, err)
	require.NoError(t, f.playlists.AddItem("favs", id))

	require.NoError(t, f.library.Delete(id))

	_, ok := f.library.Get(id)
	assert.False(t, ok)
	favs, ok := f.playlists.Items("favs")
	require.True(t, ok)
	assert.Empty(t, favs)
}

func TestBrowseFiltersAndSearches(t *testing.T) {
	f := newFixture(t)
	items, err := sample.Items()
	require.NoError(t, err)
	require.NoError(t, f.library.Seed(items))

	all := f.library.Browse(query.Request{})
	assert.Len(t, all, len(items))

	cooking := f.library.Browse(query.Request{Category: "Cooking"})
	require.NotEmpty(t, cooking)
	for _, v := range cooking {
		assert.Equal(t, "Cooking", v.Item.Category)
	}

	images := f.library.Browse(query.Request{Type: string(domain.ItemTypeImage)})
	for _, v := range images {
		assert.Equal(t, domain.ItemTypeImage, v.Item.Type)
	}

	assert.Empty(t, f.library.Browse(query.Request{Query: "zzzz qqqq"}))
	assert.Contains(t, f.library.Categories(), query.All)
}

func TestSeedRejectsInvalidItems(t *testing.T) {
	f := newFixture(t)
	bad := item("", "Cooking")
	bad.ID = "item_bad"

	err := f.library.Seed([]domain.GalleryItem{bad})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)
	assert.Empty(t, f.library.Browse(query.Request{}))
}

func TestSuggest(t *testing.T) {
	f := newFixture(t)
	_, err := f.library.Add(item("Pasta Night", "Cooking"))
	require.NoError(t, err)
	_, err = f.library.Add(item("Mountain Sunrise", "Nature"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Pasta Night"}, f.library.Suggest("pasta"))
}

func TestUpload(t *testing.T) {
	f := newFixture(t)

	id, err := f.library.Upload(upload.Form{
		Title: "Talk",
		Type:  domain.ItemTypeVideo,
		URL:   "https://youtu.be/dQw4w9WgXcQ",
		Tags:  "talks, demo",
	})
	require.NoError(t, err)

	got, ok := f.library.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Other", got.Category)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", got.Source)
	assert.Equal(t, []string{"talks", "demo"}, got.Tags)

	_, err = f.library.Upload(upload.Form{Title: "No source", Type: domain.ItemTypeVideo})
	assert.ErrorIs(t, err, domain.ErrSourceRequired)
}

func TestClearAll(t *testing.T) {
	f := newFixture(t)
	_, err := f.library.Add(item("Pasta Night", "Cooking"))
	require.NoError(t, err)

	require.NoError(t, f.library.ClearAll())
	assert.Empty(t, f.library.Browse(query.Request{}))
}

func TestSummarizeWithoutProviderReturnsPlaceholder(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.library.SummaryConfigured())

	got := f.library.Summarize(context.Background(), item("Pasta Night", "Cooking"))
	assert.True(t, strings.HasPrefix(got, "[Demo]"), got)
}
