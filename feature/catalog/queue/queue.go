// Package queue orders sets for chunked sync work.
//
// Sets that never completed a pass come first, then the ones whose last pass
// is oldest. Ties fall back to catalog order, then id.
package queue

import (
	"container/heap"
	"time"
)

// Item is one set waiting for work.
type Item struct {
	SetID    string
	LastSync *time.Time
	Order    int
}

// Less reports whether a should be served before b.
func Less(a, b Item) bool {
	switch {
	case a.LastSync == nil && b.LastSync != nil:
		return true
	case a.LastSync != nil && b.LastSync == nil:
		return false
	case a.LastSync != nil && !a.LastSync.Equal(*b.LastSync):
		return a.LastSync.Before(*b.LastSync)
	case a.Order != b.Order:
		return a.Order < b.Order
	default:
		return a.SetID < b.SetID
	}
}

type items []Item

func (h items) Len() int           { return len(h) }
func (h items) Less(i, j int) bool { return Less(h[i], h[j]) }
func (h items) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *items) Push(x any)        { *h = append(*h, x.(Item)) }
func (h *items) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Queue is a priority queue of sets keyed by last sync time. Not safe for concurrent use.
type Queue struct {
	h items
}

// New builds a queue from items.
func New(in ...Item) *Queue {
	q := &Queue{h: append(items(nil), in...)}
	heap.Init(&q.h)
	return q
}

// Push adds a set.
func (q *Queue) Push(it Item) {
	heap.Push(&q.h, it)
}

// Pop removes and returns the set to serve next.
func (q *Queue) Pop() (Item, bool) {
	if q.h.Len() == 0 {
		return Item{}, false
	}
	return heap.Pop(&q.h).(Item), true
}

// Peek returns the set to serve next without removing it.
func (q *Queue) Peek() (Item, bool) {
	if q.h.Len() == 0 {
		return Item{}, false
	}
	return q.h[0], true
}

// Len is the number of queued sets.
func (q *Queue) Len() int {
	return q.h.Len()
}
