// Package dedup suppresses near-duplicate business names within a single
// aggregation run using token-sort fuzzy matching, the same >90 cutoff the
// directory sources need to survive their own listing noise.
package dedup

import (
	"strings"
	"sync"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const DefaultThreshold = 90

// Set holds the names accepted so far in one run. First-seen wins; a name
// whose token-sort ratio against any accepted name is strictly above the
// threshold is rejected. Construct a fresh Set per run.
type Set struct {
	mu        sync.Mutex
	threshold int
	seen      []string
}

func NewSet(threshold int) *Set {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Set{threshold: threshold}
}

// Accept reports whether name is distinct from everything accepted so far,
// recording it if so. Comparison is case-insensitive and token-order
// insensitive, so "Joe's Bakery" and "Bakery Joes" collide.
func (s *Set) Accept(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// O(n) scan per name; fine at tens of candidates per source. Bucket by
	// name prefix before growing past that.
	for _, existing := range s.seen {
		if fuzzy.TokenSortRatio(lower, existing) > s.threshold {
			return false
		}
	}
	s.seen = append(s.seen, lower)
	return true
}

// Len returns how many distinct names have been accepted.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
