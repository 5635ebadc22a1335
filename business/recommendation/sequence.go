package recommendation

import (
	"iter"
	"sync/atomic"

	"marketReco/domain"
)

// Recommendations is the ranked output of one Generate call. It can be
// consumed once; call Generate again for a fresh list.
type Recommendations struct {
	items    []domain.RecommendedItem
	consumed atomic.Bool
}

func newRecommendations(items []domain.RecommendedItem) *Recommendations {
	return &Recommendations{items: items}
}

// Len is the number of ranked items, whether or not they were consumed.
func (r *Recommendations) Len() int {
	return len(r.items)
}

// All yields the items in rank order. Only the first range over any
// sequence returned by All sees items.
func (r *Recommendations) All() iter.Seq[domain.RecommendedItem] {
	return func(yield func(domain.RecommendedItem) bool) {
		if !r.consumed.CompareAndSwap(false, true) {
			return
		}
		for _, item := range r.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Collect drains the sequence into a slice. It is never nil.
func (r *Recommendations) Collect() []domain.RecommendedItem {
	out := make([]domain.RecommendedItem, 0, len(r.items))
	for item := range r.All() {
		out = append(out, item)
	}
	return out
}
