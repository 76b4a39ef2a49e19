package search

import (
	"sort"
	"strings"
)

// Match represents a keyword search hit
type Match struct {
	Index int // Index in source slice
	Score int // Number of query tokens found (higher = better)
}

// Tokenize lowercases the query and splits it on whitespace
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Score counts the tokens that occur as substrings of text. Text is expected
// to be lowercased already.
func Score(tokens []string, text string) int {
	score := 0
	for _, token := range tokens {
		if strings.Contains(text, token) {
			score++
		}
	}
	return score
}

// Rank scores every text against the query and returns the hits ordered by
// descending score. Texts with equal score keep their input order, and texts
// with no matching token are dropped. A blank query returns nil.
func Rank(query string, texts []string) []Match {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	var matches []Match
	for i, text := range texts {
		if score := Score(tokens, text); score > 0 {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
