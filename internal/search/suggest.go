package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns up to limit titles that loosely match the query, closest
// first. Used to offer "did you mean" hints when a keyword search finds nothing.
func Suggest(query string, titles []string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	matches := fuzzy.RankFindFold(query, titles)

	// Sort by distance (lower is better), ties by original order
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	seen := make(map[string]bool)
	var out []string
	for _, match := range matches {
		if seen[match.Target] {
			continue
		}
		seen[match.Target] = true
		out = append(out, match.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}
