// Package leaderboard maintains per-category item popularity counters and
// answers top-N queries. All state is in process memory.
package leaderboard

import (
	"sort"
	"sync"

	"github.com/hifidelity/hifidelity/internal/model"
)

// bucket holds the counters for one category. Items are kept in first-seen
// order so that ties rank by insertion order.
type bucket struct {
	counts map[string]int64
	order  []string
}

func newBucket() *bucket {
	return &bucket{counts: make(map[string]int64)}
}

func (b *bucket) add(item string) {
	if _, seen := b.counts[item]; !seen {
		b.order = append(b.order, item)
	}
	b.counts[item]++
}

// Board is a counted multiset per category.
type Board struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
}

// New creates an empty Board.
func New() *Board {
	return &Board{buckets: make(map[string]*bucket)}
}

// Record increments each item's counter in the category by one occurrence.
// Duplicates within a single list count multiple times. An empty list is a
// no-op. The category bucket is created lazily.
func (b *Board) Record(category string, items []string) {
	if len(items) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	bk := b.buckets[category]
	if bk == nil {
		bk = newBucket()
		b.buckets[category] = bk
	}
	for _, item := range items {
		bk.add(item)
	}
}

// TopN returns up to n items ordered by descending count. Ties break by the
// order items were first seen in the category. Unknown categories yield an
// empty slice. Does not mutate state.
func (b *Board) TopN(category string, n int) []model.RankedItem {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bk := b.buckets[category]
	if bk == nil || n <= 0 {
		return []model.RankedItem{}
	}

	ranked := make([]model.RankedItem, 0, len(bk.order))
	for _, item := range bk.order {
		ranked = append(ranked, model.RankedItem{Name: item, Count: bk.counts[item]})
	}

	// Stable sort over insertion-ordered entries keeps first-seen items
	// ahead among equal counts.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Count returns the current counter for an item, zero if absent.
func (b *Board) Count(category, item string) int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bk := b.buckets[category]
	if bk == nil {
		return 0
	}
	return bk.counts[item]
}

// Categories returns the number of categories currently tracked.
func (b *Board) Categories() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.buckets)
}

// ResetAll clears every category's counters. Runs under the same lock as
// Record, so in-flight submissions either land entirely before or entirely
// after the reset.
func (b *Board) ResetAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buckets = make(map[string]*bucket)
}
