package domain

// ItemStore owns the gallery item list.
type ItemStore interface {
	// List returns all items in stored order
	List() []GalleryItem

	// Add assigns a fresh id, appends the item and returns the id
	Add(item GalleryItem) (string, error)

	// Delete removes the item with id; false if nothing matched
	Delete(id string) (bool, error)

	// ReplaceAll overwrites the whole list, keeping ids as given
	ReplaceAll(items []GalleryItem) error

	// ClearAll empties the list
	ClearAll() error
}

// RatingStore owns per-user ratings.
type RatingStore interface {
	Record(itemID string, rating int, userID string) error
	Average(itemID string) (float64, bool)
	Ratings(itemID string) map[string]int

	// Averages returns the average of every rated item in one read
	Averages() map[string]float64
}

// RatingReader is the read side the query pipeline sorts by
type RatingReader interface {
	Average(itemID string) (float64, bool)
}

// PlaylistStore owns named playlists.
type PlaylistStore interface {
	Upsert(name string, itemIDs []string) error
	Append(name, itemID string) error
	List() map[string][]string
	Names() []string
}
