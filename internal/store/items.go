package store

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mmcdole/vista/internal/domain"
)

// ItemStore implements domain.ItemStore on the gallery metadata document.
type ItemStore struct {
	docs   *Documents
	logger *slog.Logger
	newID  func() string

	mu sync.Mutex // Serializes read-modify-write of the document
}

func NewItemStore(docs *Documents, logger *slog.Logger) *ItemStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemStore{
		docs:   docs,
		logger: logger,
		newID:  func() string { return "item_" + uuid.NewString() },
	}
}

func (s *ItemStore) load() []domain.GalleryItem {
	items := Load(s.docs, ItemsDocument, []domain.GalleryItem{})
	if items == nil {
		items = []domain.GalleryItem{}
	}
	return items
}

func (s *ItemStore) save(items []domain.GalleryItem) error {
	return Save(s.docs, ItemsDocument, items)
}

// List returns all items in stored order
func (s *ItemStore) List() []domain.GalleryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the item with id
func (s *ItemStore) Get(id string) (domain.GalleryItem, bool) {
	for _, item := range s.List() {
		if item.ID == id {
			return item, true
		}
	}
	return domain.GalleryItem{}, false
}

// Add validates the item, assigns it an id unused by any current item and appends it.
func (s *ItemStore) Add(item domain.GalleryItem) (string, error) {
	item.Title = strings.TrimSpace(item.Title)
	if err := item.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	taken := make(map[string]bool, len(items))
	for _, existing := range items {
		taken[existing.ID] = true
	}

	id := s.newID()
	for taken[id] {
		id = s.newID()
	}

	stored := item.Clone()
	stored.ID = id
	items = append(items, stored)
	if err := s.save(items); err != nil {
		return "", fmt.Errorf("add item: %w", err)
	}

	s.logger.Info("added item", "itemID", id, "title", stored.Title)
	return id, nil
}

// Delete removes the item with id. Ratings and playlist entries are left alone.
func (s *ItemStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load()
	kept := make([]domain.GalleryItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	if err := s.save(kept); err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	s.logger.Info("deleted item", "itemID", id)
	return true, nil
}

// ReplaceAll overwrites the list with items, keeping their ids
func (s *ItemStore) ReplaceAll(items []domain.GalleryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]domain.GalleryItem, len(items))
	for i, item := range items {
		stored[i] = item.Clone()
	}
	if err := s.save(stored); err != nil {
		return fmt.Errorf("replace items: %w", err)
	}
	s.logger.Info("replaced items", "count", len(stored))
	return nil
}

func (s *ItemStore) ClearAll() error {
	return s.ReplaceAll(nil)
}
