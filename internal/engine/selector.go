package engine

import (
	"math/rand/v2"
	"sort"

	"github.com/scottlepp/gen/internal/core/domain"
)

// maxFollowCandidates caps how many follow targets a single run commits
// for one actor.
const maxFollowCandidates = 10

// maxFollowActors caps how many actors a single follow run processes.
const maxFollowActors = 5

// filterCandidates materializes the subset of candidates passing the
// predicate. The input set is always freshly fetched; committing one action
// can invalidate other candidates, so nothing here is ever reused across
// runs.
func filterCandidates[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// pickOne selects uniformly at random from the eligible set, or reports
// ErrNoEligibleCandidate when the set is empty.
func pickOne[T any](rng *rand.Rand, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, domain.ErrNoEligibleCandidate
	}
	return items[rng.IntN(len(items))], nil
}

// sampleUpTo returns up to n items drawn without replacement.
func sampleUpTo[T any](rng *rand.Rand, items []T, n int) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// rankFollowCandidates orders candidates by descending shared-interest
// count, breaks ties uniformly at random, and caps the result. The shuffle
// before the stable sort is what randomizes the ties.
func rankFollowCandidates(rng *rand.Rand, cands []domain.FollowCandidate, limit int) []domain.FollowCandidate {
	ranked := make([]domain.FollowCandidate, len(cands))
	copy(ranked, cands)
	rng.Shuffle(len(ranked), func(i, j int) {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SharedInterests > ranked[j].SharedInterests
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
