// Package suggest finds "did you mean" candidates for mistyped command names and aliases.
package suggest

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// threshold is the minimum similarity score required for a string to be considered similar.
const threshold = 0.5

type scored struct {
	name  string
	score float64
}

// FindSimilar returns a list of similar strings to the target string from a list of candidates,
// most similar first. Duplicate candidates are reported once.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	// Early returns for invalid inputs
	if target == "" || maxResults <= 0 {
		return []string{}
	}

	suggestions := make([]scored, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		if seen[name] {
			continue
		}
		seen[name] = true
		if score := calculateSimilarity(target, name); score > threshold {
			suggestions = append(suggestions, scored{name: name, score: score})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].score == suggestions[j].score {
			return suggestions[i].name < suggestions[j].name
		}
		return suggestions[i].score > suggestions[j].score
	})

	result := make([]string, 0, maxResults)
	for i := 0; i < len(suggestions) && i < maxResults; i++ {
		result = append(result, suggestions[i].name)
	}
	return result
}

func calculateSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}
	// Prefix match bonus
	if strings.HasPrefix(b, a) {
		return 0.9
	}
	return levenshtein.Similarity(a, b, nil)
}
