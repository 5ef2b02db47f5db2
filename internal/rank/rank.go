package rank

import (
	"sort"

	"leadscout-engine/internal/domain"
)

const DefaultTopK = 20

// Top returns the k highest-scoring leads. The sort is stable: ties keep
// their original (insertion) order, so which duplicate survived upstream
// stays reproducible. The input slice is not modified.
func Top(leads []domain.Lead, k int) []domain.Lead {
	if k <= 0 {
		k = DefaultTopK
	}

	out := make([]domain.Lead, len(leads))
	copy(out, leads)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > k {
		out = out[:k]
	}
	return out
}
