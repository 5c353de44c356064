package conceptsearch

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match is one host-side search hit.
type Match struct {
	Concept Concept
	// Score is 0 for an exact or prefix match and grows with edit distance;
	// results are ordered by ascending score.
	Score int
}

// Search runs the same kind of fuzzy lookup over the concept tree that the
// frontend performs, for host-side use (prefilling results, validating a
// reported selection, server-driven suggestions). The query is matched
// case-insensitively against codes and labels: substring matches rank first,
// then near matches by edit distance. limit <= 0 means no limit.
func Search(concepts []Concept, query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []Match
	walk(concepts, func(c Concept) {
		if score, ok := scoreConcept(c, query); ok {
			matches = append(matches, Match{Concept: c, Score: score})
		}
	})

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		return matches[i].Concept.Code < matches[j].Concept.Code
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// maxDistance bounds how far a label may be from the query before it stops
// counting as a match.
const maxDistance = 2

func scoreConcept(c Concept, query string) (int, bool) {
	code := strings.ToLower(c.Code)
	label := strings.ToLower(c.Label)

	if strings.Contains(code, query) || strings.Contains(label, query) {
		return 0, true
	}

	best := maxDistance + 1
	for _, term := range strings.Fields(label) {
		if d := levenshtein.ComputeDistance(term, query); d < best {
			best = d
		}
	}
	if d := levenshtein.ComputeDistance(code, query); d < best {
		best = d
	}
	if best > maxDistance {
		return 0, false
	}
	return best, true
}

func walk(concepts []Concept, visit func(Concept)) {
	for _, c := range concepts {
		visit(c)
		walk(c.Children, visit)
	}
}
