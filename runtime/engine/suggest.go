package engine

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestName returns the closest catalog name to an unknown decorator
// name, or "" when nothing is close enough to be a plausible typo.
func suggestName(unknown string, candidates []string) string {
	ranks := fuzzy.RankFindFold(unknown, candidates)
	if len(ranks) == 0 {
		return ""
	}

	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}

	// A distance wider than the name itself is noise, not a typo
	if best.Distance > len(unknown) {
		return ""
	}
	return best.Target
}
