// Package queue provides a value-based binary min-heap keyed by a uint64 priority.
package queue

// Item is a queue entry.
type Item[T any] struct {
	Value    T
	Priority uint64
}

// Queue is a min-heap of Items. The zero value is an empty queue.
type Queue[T any] struct {
	items []Item[T]
}

// New returns a queue with room for capacity items.
func New[T any](capacity int) *Queue[T] {
	return &Queue[T]{items: make([]Item[T], 0, capacity)}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.items) }

// Push inserts an item while maintaining the heap invariant.
func (q *Queue[T]) Push(v T, priority uint64) {
	q.items = append(q.items, Item[T]{Value: v, Priority: priority})
	q.siftUp(len(q.items) - 1)
}

// Peek returns the item with the smallest priority without removing it.
func (q *Queue[T]) Peek() (Item[T], bool) {
	if len(q.items) == 0 {
		return Item[T]{}, false
	}
	return q.items[0], true
}

// Pop removes and returns the item with the smallest priority.
func (q *Queue[T]) Pop() (Item[T], bool) {
	n := len(q.items)
	if n == 0 {
		return Item[T]{}, false
	}
	root := q.items[0]
	last := q.items[n-1]
	q.items[n-1] = Item[T]{}
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root, true
}

// Reset empties the queue and keeps its backing storage.
func (q *Queue[T]) Reset() {
	clear(q.items)
	q.items = q.items[:0]
}

func (q *Queue[T]) less(i, j int) bool {
	return q.items[i].Priority < q.items[j].Priority
}

func (q *Queue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *Queue[T]) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && q.less(r, l) {
			best = r
		}
		if !q.less(best, i) {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}
