package dataretainer

import (
	"cmp"
	"container/heap"
	"sort"

	a "github.com/priyanka12b/innomatics-lab/aggregator/aggFunctions"
)

// Entry stores an arbitrary group Key, its aggregations and the ordered
// Value the group is ranked by.
type Entry[V cmp.Ordered] struct {
	Key   interface{}
	Aggs  []a.Aggregation
	Value V
}

// ranked is an entry plus the position it was inserted at.
type ranked[V cmp.Ordered] struct {
	entry Entry[V]
	seq   int
}

// worseThan reports whether x ranks below y: a worse value, or the same
// value inserted later.
func worseThan[V cmp.Ordered](x, y ranked[V], largest bool) bool {
	if x.entry.Value != y.entry.Value {
		if largest {
			return x.entry.Value < y.entry.Value
		}
		return x.entry.Value > y.entry.Value
	}
	return x.seq > y.seq
}

// rankHeap keeps the worst retained entry at the root.
type rankHeap[V cmp.Ordered] struct {
	items   []ranked[V]
	largest bool
}

func (h rankHeap[V]) Len() int      { return len(h.items) }
func (h rankHeap[V]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h rankHeap[V]) Less(i, j int) bool {
	return worseThan(h.items[i], h.items[j], h.largest)
}
func (h *rankHeap[V]) Push(x interface{}) { h.items = append(h.items, x.(ranked[V])) }
func (h *rankHeap[V]) Pop() interface{} {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

// TopN retains the capacity largest (or smallest) entries seen. Among equal
// values the entries inserted first are kept and listed first.
type TopN[V cmp.Ordered] struct {
	h        *rankHeap[V]
	capacity int
	inserted int
}

func NewTopN[V cmp.Ordered](capacity int, largest bool) *TopN[V] {
	if capacity <= 0 {
		capacity = 1
	}
	h := &rankHeap[V]{items: make([]ranked[V], 0, capacity), largest: largest}
	heap.Init(h)
	return &TopN[V]{h: h, capacity: capacity}
}

func (t *TopN[V]) Insert(e Entry[V]) {
	r := ranked[V]{entry: e, seq: t.inserted}
	t.inserted++

	if t.h.Len() < t.capacity {
		heap.Push(t.h, r)
		return
	}
	// a later entry never beats an equal earlier one
	if worseThan(t.h.items[0], r, t.h.largest) {
		t.h.items[0] = r
		heap.Fix(t.h, 0)
	}
}

func (t *TopN[V]) Len() int {
	return t.h.Len()
}

// Values returns the retained entries, best first.
func (t *TopN[V]) Values() []Entry[V] {
	items := append([]ranked[V](nil), t.h.items...)
	sort.Slice(items, func(i, j int) bool {
		return worseThan(items[j], items[i], t.h.largest)
	})

	out := make([]Entry[V], len(items))
	for i, r := range items {
		out[i] = r.entry
	}
	return out
}
