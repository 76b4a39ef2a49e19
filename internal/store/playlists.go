package store

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/mmcdole/vista/internal/domain"
)

// playlistsDoc maps playlist name -> ordered item ids
type playlistsDoc map[string][]string

// PlaylistStore implements domain.PlaylistStore on the playlists document.
// Ids of deleted items may remain; readers skip them.
type PlaylistStore struct {
	docs   *Documents
	logger *slog.Logger

	mu sync.Mutex
}

func NewPlaylistStore(docs *Documents, logger *slog.Logger) *PlaylistStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaylistStore{docs: docs, logger: logger}
}

func (s *PlaylistStore) load() playlistsDoc {
	doc := Load(s.docs, PlaylistsDocument, playlistsDoc{})
	if doc == nil {
		doc = playlistsDoc{}
	}
	return doc
}

// Upsert creates or replaces the playlist. Duplicate ids keep their first position.
func (s *PlaylistStore) Upsert(name string, itemIDs []string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrPlaylistNameRequired
	}

	ids := make([]string, 0, len(itemIDs))
	seen := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	doc[name] = ids
	if err := Save(s.docs, PlaylistsDocument, doc); err != nil {
		return fmt.Errorf("save playlist: %w", err)
	}
	s.logger.Info("saved playlist", "playlist", name, "items", len(ids))
	return nil
}

// Append adds itemID to the end of the playlist, creating it if needed.
// Appending an id that is already present changes nothing.
func (s *PlaylistStore) Append(name, itemID string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrPlaylistNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	ids, exists := doc[name]
	if exists && slices.Contains(ids, itemID) {
		return nil
	}
	doc[name] = append(ids, itemID)

	if err := Save(s.docs, PlaylistsDocument, doc); err != nil {
		return fmt.Errorf("append to playlist: %w", err)
	}
	s.logger.Info("added item to playlist", "playlist", name, "itemID", itemID)
	return nil
}

// List returns a copy of every playlist
func (s *PlaylistStore) List() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	out := make(map[string][]string, len(doc))
	for name, ids := range doc {
		out[name] = append([]string{}, ids...)
	}
	return out
}

// Names returns playlist names in lexical order
func (s *PlaylistStore) Names() []string {
	lists := s.List()
	names := make([]string, 0, len(lists))
	for name := range lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
