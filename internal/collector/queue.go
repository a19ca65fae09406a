// Package collector runs the sampler on a fixed cadence in the background and
// hands results to a single consumer through an unbounded FIFO queue.
package collector

import (
	"sync"

	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

// Item is one queued result: exactly one of Snapshot or Failure is set.
type Item struct {
	Snapshot *model.Snapshot
	Failure  *model.Failure
}

// Queue is an unbounded, mutex-guarded FIFO. Push never blocks and applies
// no backpressure: if the consumer stalls, items accumulate.
type Queue struct {
	mu    sync.Mutex
	items []Item
}

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// Push appends it at the tail.
func (q *Queue) Push(it Item) {
	q.mu.Lock()
	q.items = append(q.items, it)
	q.mu.Unlock()
}

// TryPop removes the head item without blocking. ok is false when empty.
func (q *Queue) TryPop() (it Item, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Item{}, false
	}
	it = q.items[0]
	q.items[0] = Item{}
	q.items = q.items[1:]
	return it, true
}

// DrainAll removes and returns everything queued, oldest first.
func (q *Queue) DrainAll() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
