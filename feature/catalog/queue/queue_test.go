package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) *time.Time {
	t := time.Date(2026, 1, 1, hour, 0, 0, 0, time.UTC)
	return &t
}

func drain(q *Queue) []string {
	var ids []string
	for {
		it, ok := q.Pop()
		if !ok {
			return ids
		}
		ids = append(ids, it.SetID)
	}
}

func TestQueue_NeverSyncedFirst(t *testing.T) {
	q := New(
		Item{SetID: "synced-old", LastSync: at(1), Order: 0},
		Item{SetID: "never-b", Order: 5},
		Item{SetID: "synced-new", LastSync: at(9), Order: 1},
		Item{SetID: "never-a", Order: 2},
	)

	assert.Equal(t, []string{"never-a", "never-b", "synced-old", "synced-new"}, drain(q))
}

func TestQueue_TiesByCatalogOrder(t *testing.T) {
	q := New(
		Item{SetID: "c", LastSync: at(3), Order: 3},
		Item{SetID: "a", LastSync: at(3), Order: 1},
		Item{SetID: "b", LastSync: at(3), Order: 2},
	)

	assert.Equal(t, []string{"a", "b", "c"}, drain(q))
}

func TestQueue_PushPeek(t *testing.T) {
	q := New()
	_, ok := q.Peek()
	assert.False(t, ok)

	q.Push(Item{SetID: "later", LastSync: at(5)})
	q.Push(Item{SetID: "earlier", LastSync: at(2)})

	it, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, "earlier", it.SetID)
	assert.Equal(t, 2, q.Len())
}
