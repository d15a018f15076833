package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the minimum NameSimilarity for a name to be suggested.
const DefaultThreshold = 0.6

// Suggestion is a known name ranked against an unresolved one.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns those at or above
// threshold, best first. Ties are broken by name for determinism.
func Rank(name string, candidates []string, threshold float64) []Suggestion {
	var ranked []Suggestion

	for _, c := range candidates {
		score := NameSimilarity(name, c)
		if score < threshold {
			continue
		}

		ranked = append(ranked, Suggestion{Name: c, Score: score})
	}

	slices.SortFunc(ranked, func(a, b Suggestion) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return ranked
}

// Suggest returns up to limit candidate names close to name.
func Suggest(name string, candidates []string, limit int) []string {
	ranked := Rank(name, candidates, DefaultThreshold)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.Name)
	}

	return out
}
