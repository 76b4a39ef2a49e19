package query

import (
	"testing"

	"github.com/mmcdole/vista/internal/domain"
	"github.com/stretchr/testify/assert"
)

func item(id, title, category string, typ domain.ItemType, description string) domain.GalleryItem {
	return domain.GalleryItem{ID: id, Title: title, Category: category, Type: typ, Description: description}
}

func ids(items []domain.GalleryItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func fixture() []domain.GalleryItem {
	return []domain.GalleryItem{
		item("a", "Homemade Pasta", "Cooking", domain.ItemTypeVideo, "fresh pasta from scratch"),
		item("b", "Morning Yoga", "Fitness", domain.ItemTypeVideo, "gentle stretches"),
		item("c", "Latte Art", "Art", domain.ItemTypeImage, "milk foam patterns"),
		item("d", "Pasta Sauce", "Cooking", domain.ItemTypeImage, "tomato basil"),
	}
}

func TestRunEmptyInput(t *testing.T) {
	got := Run(nil, Request{Query: "pasta", Sort: SortTitleAsc}, nil)
	assert.Empty(t, got)
}

func TestRunBlankQueryKeepsOrder(t *testing.T) {
	got := Run(fixture(), Request{Query: "   ", Category: All, Type: All, Sort: SortRelevance}, nil)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
}

func TestRunSearchMatchesDescription(t *testing.T) {
	got := Run(fixture(), Request{Query: "stretches"}, nil)
	assert.Equal(t, []string{"b"}, ids(got))

	assert.Empty(t, Run(fixture(), Request{Query: "zebra"}, nil))
}

func TestRunSearchMatchesTitleAndActions(t *testing.T) {
	items := fixture()
	items[2].Actions = []domain.Action{{Name: "Pour the heart", StartTime: "00:00:12", TimestampSec: 12}}

	assert.Equal(t, []string{"c"}, ids(Run(items, Request{Query: "HEART"}, nil)))
	assert.Equal(t, []string{"b"}, ids(Run(items, Request{Query: "yoga"}, nil)))
}

func TestRunSearchRanksByTokenCount(t *testing.T) {
	got := Run(fixture(), Request{Query: "tomato pasta"}, nil)
	// d matches both tokens, a matches one
	assert.Equal(t, []string{"d", "a"}, ids(got))
}

func TestRunCategoryFilterKeepsRelativeOrder(t *testing.T) {
	got := Run(fixture(), Request{Category: "Cooking"}, nil)
	assert.Equal(t, []string{"a", "d"}, ids(got))

	assert.Empty(t, Run(fixture(), Request{Category: "cooking"}, nil), "category match is exact")
}

func TestRunTypeFilter(t *testing.T) {
	got := Run(fixture(), Request{Type: string(domain.ItemTypeImage)}, nil)
	assert.Equal(t, []string{"c", "d"}, ids(got))
}

func TestRunTitleSortIsCaseInsensitive(t *testing.T) {
	items := []domain.GalleryItem{
		item("1", "beta", "", domain.ItemTypeVideo, ""),
		item("2", "Gamma", "", domain.ItemTypeVideo, ""),
		item("3", "Alpha", "", domain.ItemTypeVideo, ""),
	}

	asc := Run(items, Request{Sort: SortTitleAsc}, nil)
	assert.Equal(t, []string{"Alpha", "beta", "Gamma"}, titles(asc))

	desc := Run(items, Request{Sort: SortTitleDesc}, nil)
	assert.Equal(t, []string{"Gamma", "beta", "Alpha"}, titles(desc))
}

func TestRunRatingSortTreatsUnratedAsZero(t *testing.T) {
	ratings := Averages{"b": 4.5, "c": 2.0, "d": 4.5}

	got := Run(fixture(), Request{Sort: SortRating}, ratings)
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(got))

	unrated := Run(fixture(), Request{Sort: SortRating}, nil)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(unrated))
}

func TestRunNewestReversesStoreOrder(t *testing.T) {
	got := Run(fixture(), Request{Sort: SortNewest}, nil)
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids(got))

	// Newest follows store position even after search reordered the items
	searched := Run(fixture(), Request{Query: "tomato pasta", Sort: SortNewest}, nil)
	assert.Equal(t, []string{"d", "a"}, ids(searched))
}

func TestRunCombinedStages(t *testing.T) {
	got := Run(fixture(), Request{
		Query:    "pasta",
		Category: "Cooking",
		Type:     string(domain.ItemTypeVideo),
		Sort:     SortTitleAsc,
	}, nil)
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestParseSort(t *testing.T) {
	opt, ok := ParseSort("Title Z-A")
	assert.True(t, ok)
	assert.Equal(t, SortTitleDesc, opt)

	opt, ok = ParseSort("newest")
	assert.True(t, ok)
	assert.Equal(t, SortNewest, opt)

	opt, ok = ParseSort("bogus")
	assert.False(t, ok)
	assert.Equal(t, SortRelevance, opt)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{All, "Art", "Cooking", "Fitness"}, Categories(fixture()))
	assert.Equal(t, []string{All}, Categories(nil))
}

func titles(items []domain.GalleryItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}
