package help

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/toejough/rawcmd/internal/core"
)

// Suggest returns up to three command names of ns that are close to name, best first.
// Candidates either contain name as a case-insensitive subsequence or are within
// two edits of it.
func Suggest(name string, ns *core.Namespace) []string {
	if name == "" || ns == nil {
		return nil
	}

	candidates := ns.Names()
	ranks := fuzzy.RankFindFold(name, candidates)

	seen := make(map[string]bool, len(ranks))
	for _, r := range ranks {
		seen[r.Target] = true
	}

	for i, candidate := range candidates {
		if seen[candidate] {
			continue
		}

		distance := fuzzy.LevenshteinDistance(name, candidate)
		if distance <= maxEditDistance {
			ranks = append(ranks, fuzzy.Rank{
				Source:        name,
				Target:        candidate,
				Distance:      distance,
				OriginalIndex: i,
			})
		}
	}

	sort.Stable(ranks)

	out := make([]string, 0, min(maxSuggestions, len(ranks)))
	for _, r := range ranks {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, r.Target)
	}

	return out
}

// unexported constants.
const (
	maxEditDistance = 2
	maxSuggestions  = 3
)
