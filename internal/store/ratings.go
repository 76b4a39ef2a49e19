package store

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/mmcdole/vista/internal/domain"
)

// ratingsDoc maps item id -> user id -> rating
type ratingsDoc map[string]map[string]int

// RatingStore implements domain.RatingStore on the ratings document.
type RatingStore struct {
	docs   *Documents
	logger *slog.Logger

	mu sync.Mutex
}

func NewRatingStore(docs *Documents, logger *slog.Logger) *RatingStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingStore{docs: docs, logger: logger}
}

func (s *RatingStore) load() ratingsDoc {
	doc := Load(s.docs, RatingsDocument, ratingsDoc{})
	if doc == nil {
		doc = ratingsDoc{}
	}
	return doc
}

// Record stores userID's rating for itemID, replacing any earlier one.
// Ratings outside 1-5 are rejected without writing.
func (s *RatingStore) Record(itemID string, rating int, userID string) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return fmt.Errorf("%w: got %d", domain.ErrRatingOutOfRange, rating)
	}
	if userID == "" {
		userID = domain.DefaultUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	users := doc[itemID]
	if users == nil {
		users = make(map[string]int)
		doc[itemID] = users
	}
	users[userID] = rating

	if err := Save(s.docs, RatingsDocument, doc); err != nil {
		return fmt.Errorf("record rating: %w", err)
	}
	s.logger.Debug("recorded rating", "itemID", itemID, "userID", userID, "rating", rating)
	return nil
}

// Average returns the mean rating rounded to one decimal, or false when unrated.
func (s *RatingStore) Average(itemID string) (float64, bool) {
	return average(s.Ratings(itemID))
}

// Averages returns the averages of every rated item in one read
func (s *RatingStore) Averages() map[string]float64 {
	s.mu.Lock()
	doc := s.load()
	s.mu.Unlock()

	out := make(map[string]float64, len(doc))
	for itemID, users := range doc {
		if avg, ok := average(users); ok {
			out[itemID] = avg
		}
	}
	return out
}

// Ratings returns a copy of the per-user ratings for itemID
func (s *RatingStore) Ratings(itemID string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int)
	for user, r := range s.load()[itemID] {
		out[user] = r
	}
	return out
}

// average rounds half to even at one decimal
func average(users map[string]int) (float64, bool) {
	if len(users) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range users {
		sum += r
	}
	mean := float64(sum) / float64(len(users))
	return math.RoundToEven(mean*10) / 10, true
}
