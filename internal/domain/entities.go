package domain

import (
	"fmt"
	"strings"
)

// ItemType distinguishes gallery content kinds
type ItemType string

const (
	ItemTypeVideo ItemType = "video"
	ItemTypeImage ItemType = "image"
)

// Valid reports whether t is a known item type
func (t ItemType) Valid() bool {
	return t == ItemTypeVideo || t == ItemTypeImage
}

// Placeholder media used when an item has no source or thumbnail of its own.
const (
	PlaceholderSource    = "https://picsum.photos/800/600"
	PlaceholderThumbnail = "https://picsum.photos/400/225"
)

// Action is a named, timestamped moment inside an item
type Action struct {
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`    // Display form, e.g. "00:01:30"
	TimestampSec int    `json:"timestamp_sec"` // Offset in seconds, >= 0
}

// String renders the action the way it is searched and displayed
func (a Action) String() string {
	return fmt.Sprintf("%s %s %d", a.Name, a.StartTime, a.TimestampSec)
}

// GalleryItem represents one video or image in the gallery
type GalleryItem struct {
	ID          string   `json:"id"`       // Assigned by the item store, never reused
	Title       string   `json:"title"`    // Required, non-empty after trim
	Category    string   `json:"category"` // Free-form, e.g. "Cooking"
	Type        ItemType `json:"type"`
	Description string   `json:"description"`
	Source      string   `json:"source"`             // URL or local path of the media
	Thumbnail   string   `json:"thumbnail"`          // URL or local path of the preview image
	Duration    string   `json:"duration,omitempty"` // Display form, e.g. "00:15:30"
	Actions     []Action `json:"actions"`
	Transcript  string   `json:"transcript"`
	Tags        []string `json:"tags"`
}

func (g *GalleryItem) GetID() string    { return g.ID }
func (g *GalleryItem) GetTitle() string { return g.Title }

// GetSortTitle returns the title used for alphabetical sorting
func (g *GalleryItem) GetSortTitle() string {
	return strings.ToLower(g.Title)
}

// ThumbnailOrPlaceholder returns the thumbnail, falling back to the placeholder image
func (g *GalleryItem) ThumbnailOrPlaceholder() string {
	if strings.TrimSpace(g.Thumbnail) == "" {
		return PlaceholderThumbnail
	}
	return g.Thumbnail
}

// SourceOrPlaceholder returns the source, falling back to the placeholder media
func (g *GalleryItem) SourceOrPlaceholder() string {
	if strings.TrimSpace(g.Source) == "" {
		return PlaceholderSource
	}
	return g.Source
}

// RenderActions returns the textual rendering of the action list used by search
func (g *GalleryItem) RenderActions() string {
	parts := make([]string, len(g.Actions))
	for i, a := range g.Actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

// SearchText returns the lowercased text searched for keyword matches
func (g *GalleryItem) SearchText() string {
	return strings.ToLower(g.Description + " " + g.Title + " " + g.RenderActions())
}

// SummaryInput returns the text handed to the summary provider
func (g *GalleryItem) SummaryInput() string {
	return g.Description + "\n" + g.Transcript
}

// Validate checks the fields required for a new item
func (g *GalleryItem) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrTitleRequired
	}
	if !g.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, g.Type)
	}
	for _, a := range g.Actions {
		if a.TimestampSec < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidAction, a.Name)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can't mutate store-owned slices
func (g GalleryItem) Clone() GalleryItem {
	c := g
	c.Actions = append([]Action(nil), g.Actions...)
	c.Tags = append([]string(nil), g.Tags...)
	return c
}

// DefaultUserID is the pseudo-user ratings are recorded under
const DefaultUserID = "default"

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// ItemView pairs an item with its derived average rating
type ItemView struct {
	Item      GalleryItem
	Average   float64
	HasRating bool
}

// FormattedRating returns the average for display, or a dash when unrated
func (v ItemView) FormattedRating() string {
	if !v.HasRating {
		return "-"
	}
	return fmt.Sprintf("%.1f", v.Average)
}
