package library

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/vista/internal/domain"
	"github.com/mmcdole/vista/internal/query"
	"github.com/mmcdole/vista/internal/search"
	"github.com/mmcdole/vista/internal/summary"
	"github.com/mmcdole/vista/internal/upload"
)

// suggestionLimit caps "did you mean" hints for empty searches
const suggestionLimit = 3

// Uploader turns an add-item form into an unsaved gallery item
type Uploader interface {
	Build(form upload.Form) (domain.GalleryItem, error)
}

// Service orchestrates the item and rating stores, the query pipeline and the
// summary provider.
type Service struct {
	items      domain.ItemStore
	ratings    domain.RatingStore
	uploader   Uploader
	summarizer domain.Summarizer
	logger     *slog.Logger
}

// NewService creates a new library service.
func NewService(
	items domain.ItemStore,
	ratings domain.RatingStore,
	uploader Uploader,
	summarizer domain.Summarizer,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		items:      items,
		ratings:    ratings,
		uploader:   uploader,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Browse runs the query pipeline over the current items and attaches averages
func (s *Service) Browse(req query.Request) []domain.ItemView {
	averages := query.Averages(s.ratings.Averages())
	results := query.Run(s.items.List(), req, averages)

	views := make([]domain.ItemView, len(results))
	for i, item := range results {
		avg, ok := averages.Average(item.ID)
		views[i] = domain.ItemView{Item: item, Average: avg, HasRating: ok}
	}
	s.logger.Debug("browse", "query", req.Query, "category", req.Category, "type", req.Type, "sort", req.Sort, "results", len(views))
	return views
}

// Suggest offers titles close to a query that matched nothing
func (s *Service) Suggest(q string) []string {
	items := s.items.List()
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	return search.Suggest(q, titles, suggestionLimit)
}

// Categories returns the category filter choices for the current items
func (s *Service) Categories() []string {
	return query.Categories(s.items.List())
}

// Get returns the item with id
func (s *Service) Get(id string) (domain.GalleryItem, bool) {
	for _, item := range s.items.List() {
		if item.ID == id {
			return item, true
		}
	}
	return domain.GalleryItem{}, false
}

// View returns the item with its current average rating
func (s *Service) View(id string) (domain.ItemView, bool) {
	item, ok := s.Get(id)
	if !ok {
		return domain.ItemView{}, false
	}
	avg, rated := s.ratings.Average(id)
	return domain.ItemView{Item: item, Average: avg, HasRating: rated}, true
}

// Add stores a new item and returns its id
func (s *Service) Add(item domain.GalleryItem) (string, error) {
	id, err := s.items.Add(item)
	if err != nil {
		s.logger.Warn("failed to add item", "title", item.Title, "error", err)
		return "", err
	}
	return id, nil
}

// Upload builds an item from the form and stores it
func (s *Service) Upload(form upload.Form) (string, error) {
	item, err := s.uploader.Build(form)
	if err != nil {
		s.logger.Warn("rejected upload", "title", form.Title, "error", err)
		return "", err
	}
	return s.Add(item)
}

// Delete removes an item. Its ratings and playlist entries stay behind.
func (s *Service) Delete(id string) error {
	deleted, err := s.items.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete item", "itemID", id, "error", err)
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return nil
}

// ClearAll removes every item
func (s *Service) ClearAll() error {
	if err := s.items.ClearAll(); err != nil {
		s.logger.Error("failed to clear gallery", "error", err)
		return err
	}
	s.logger.Info("cleared gallery")
	return nil
}

// Seed replaces the gallery with items, keeping their ids
func (s *Service) Seed(items []domain.GalleryItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("seed item %s: %w", item.ID, err)
		}
	}
	return s.items.ReplaceAll(items)
}

// Rate records userID's rating of an existing item. An empty userID rates as
// the default user.
func (s *Service) Rate(id string, rating int, userID string) error {
	if _, ok := s.Get(id); !ok {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return s.ratings.Record(id, rating, userID)
}

// Summarize asks the summary provider about an item's description and transcript
func (s *Service) Summarize(ctx context.Context, item domain.GalleryItem) string {
	return s.summarizer.Summarize(ctx, item.SummaryInput(), summary.DefaultInstruction)
}

// SummaryConfigured reports whether summaries will reach a real provider
func (s *Service) SummaryConfigured() bool {
	return s.summarizer.Configured()
}
