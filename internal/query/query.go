package query

import (
	"sort"
	"strings"

	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/search"
)

// All is the sentinel that disables the category or type filter
const All = "All"

// SortOption represents a result ordering
type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortTitleAsc  SortOption = "title_asc"
	SortTitleDesc SortOption = "title_desc"
	SortRating    SortOption = "rating"
	SortNewest    SortOption = "newest"
)

// String returns the display name for the sort option
func (o SortOption) String() string {
	switch o {
	case SortRelevance:
		return "Relevance"
	case SortTitleAsc:
		return "Title A-Z"
	case SortTitleDesc:
		return "Title Z-A"
	case SortRating:
		return "Rating"
	case SortNewest:
		return "Newest"
	default:
		return "Unknown"
	}
}

// SortOptions returns the available orderings in menu order
func SortOptions() []SortOption {
	return []SortOption{SortRelevance, SortTitleAsc, SortTitleDesc, SortRating, SortNewest}
}

// ParseSort accepts either the option key ("title_asc") or its display name ("Title A-Z")
func ParseSort(s string) (SortOption, bool) {
	s = strings.TrimSpace(s)
	for _, opt := range SortOptions() {
		if strings.EqualFold(s, string(opt)) || strings.EqualFold(s, opt.String()) {
			return opt, true
		}
	}
	return SortRelevance, false
}

// Request holds the pipeline inputs. Empty Category or Type behave like All.
type Request struct {
	Query    string
	Category string
	Type     string
	Sort     SortOption
}

// Averages adapts a precomputed item id -> average map to domain.RatingReader
type Averages map[string]float64

func (a Averages) Average(itemID string) (float64, bool) {
	v, ok := a[itemID]
	return v, ok
}

// entry tracks an item's position in store order through the pipeline
type entry struct {
	item domain.GalleryItem
	pos  int
}

// Run applies search, category filter, type filter and sort, in that order.
// items must be in store order; ratings may be nil.
func Run(items []domain.GalleryItem, req Request, ratings domain.RatingReader) []domain.GalleryItem {
	entries := make([]entry, len(items))
	for i, item := range items {
		entries[i] = entry{item: item, pos: i}
	}

	entries = searchStage(entries, req.Query)
	entries = filterStage(entries, func(item domain.GalleryItem) bool {
		return passes(req.Category, item.Category)
	})
	entries = filterStage(entries, func(item domain.GalleryItem) bool {
		return passes(req.Type, string(item.Type))
	})
	sortStage(entries, req.Sort, ratings)

	out := make([]domain.GalleryItem, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

func passes(want, have string) bool {
	return want == "" || want == All || want == have
}

// searchStage keeps items matching at least one query token, best matches
// first. A blank query keeps everything in order.
func searchStage(entries []entry, query string) []entry {
	if strings.TrimSpace(query) == "" {
		return entries
	}

	texts := make([]string, len(entries))
	for i := range entries {
		texts[i] = entries[i].item.SearchText()
	}

	matches := search.Rank(query, texts)
	out := make([]entry, len(matches))
	for i, m := range matches {
		out[i] = entries[m.Index]
	}
	return out
}

func filterStage(entries []entry, keep func(domain.GalleryItem) bool) []entry {
	out := entries[:0:0]
	for _, e := range entries {
		if keep(e.item) {
			out = append(out, e)
		}
	}
	return out
}

func sortStage(entries []entry, opt SortOption, ratings domain.RatingReader) {
	switch opt {
	case SortTitleAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].item.GetSortTitle() < entries[j].item.GetSortTitle()
		})
	case SortTitleDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].item.GetSortTitle() > entries[j].item.GetSortTitle()
		})
	case SortRating:
		scores := make(map[string]float64, len(entries))
		if ratings != nil {
			for _, e := range entries {
				if avg, ok := ratings.Average(e.item.ID); ok {
					scores[e.item.ID] = avg
				}
			}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return scores[entries[i].item.ID] > scores[entries[j].item.ID]
		})
	case SortNewest:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].pos > entries[j].pos
		})
	}
}

// Categories returns All followed by the distinct item categories in lexical order
func Categories(items []domain.GalleryItem) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		cats = append(cats, item.Category)
	}
	sort.Strings(cats)
	return append([]string{All}, cats...)
}

// Types returns the type filter choices
func Types() []string {
	return []string{All, string(domain.ItemTypeVideo), string(domain.ItemTypeImage)}
}
