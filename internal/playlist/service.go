package playlist

import (
	"log/slog"
	"strings"

	"github.com/mmcdole/vista/internal/domain"
)

// itemLister is the read side of the item store
type itemLister interface {
	List() []domain.GalleryItem
}

// Service resolves playlists against the gallery.
type Service struct {
	playlists domain.PlaylistStore
	items     itemLister
	logger    *slog.Logger
}

// NewService creates a new playlist service.
func NewService(playlists domain.PlaylistStore, items itemLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{playlists: playlists, items: items, logger: logger}
}

// Create makes an empty playlist. An existing playlist keeps its items.
func (s *Service) Create(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrPlaylistNameRequired
	}
	if _, exists := s.playlists.List()[name]; exists {
		s.logger.Debug("playlist already exists", "playlist", name)
		return nil
	}
	return s.playlists.Upsert(name, nil)
}

// AddItem appends an item to a playlist, creating the playlist if needed
func (s *Service) AddItem(name, itemID string) error {
	return s.playlists.Append(strings.TrimSpace(name), itemID)
}

// Playlists returns every playlist ordered by name
func (s *Service) Playlists() []domain.Playlist {
	lists := s.playlists.List()
	names := s.playlists.Names()

	out := make([]domain.Playlist, 0, len(names))
	for _, name := range names {
		out = append(out, domain.Playlist{Name: name, ItemIDs: lists[name]})
	}
	return out
}

// Items returns the playlist's items in playlist order. Ids of deleted items
// are skipped.
func (s *Service) Items(name string) ([]domain.GalleryItem, bool) {
	ids, ok := s.playlists.List()[name]
	if !ok {
		return nil, false
	}

	byID := make(map[string]domain.GalleryItem)
	for _, item := range s.items.List() {
		byID[item.ID] = item
	}

	out := make([]domain.GalleryItem, 0, len(ids))
	for _, id := range ids {
		if item, found := byID[id]; found {
			out = append(out, item)
		} else {
			s.logger.Debug("skipping missing playlist item", "playlist", name, "itemID", id)
		}
	}
	return out, true
}

// Membership reports which playlists contain itemID
func (s *Service) Membership(itemID string) map[string]bool {
	membership := make(map[string]bool)
	for name, ids := range s.playlists.List() {
		for _, id := range ids {
			if id == itemID {
				membership[name] = true
				break
			}
		}
	}
	return membership
}
