package domain

import "context"

// Playlist is a named, ordered list of item ids
type Playlist struct {
	Name    string
	ItemIDs []string
}

// ItemCount returns the number of ids, including ones whose items were deleted
func (p Playlist) ItemCount() int {
	return len(p.ItemIDs)
}

// Summarizer produces a text summary of content. It never fails: problems are
// reported inside the returned text.
type Summarizer interface {
	Summarize(ctx context.Context, text, instruction string) string
	Configured() bool
}
