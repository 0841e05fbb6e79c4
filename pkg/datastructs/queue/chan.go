package queue

var _ Queue[int] = (*Chan[int])(nil)

// Chan is a Queue backed by a buffered channel. It exists as the baseline
// implementation for benchmarks; the channel buffer is allocated eagerly,
// so large capacities are expensive up front.
type Chan[T any] struct {
	ch chan T
}

// NewChan creates a channel-backed queue with the given capacity.
// A non-positive capacity is clamped to 1.
func NewChan[T any](capacity int64) *Chan[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Chan[T]{ch: make(chan T, capacity)}
}

// Push inserts an item, blocking while the buffer is full.
func (q *Chan[T]) Push(item T) {
	q.ch <- item
}

// TryPush inserts an item without blocking. Returns false when full.
func (q *Chan[T]) TryPush(item T) bool {
	select {
	case q.ch <- item:
		return true
	default:
		return false
	}
}

// Pop removes and returns the oldest item, blocking while empty.
func (q *Chan[T]) Pop() T {
	return <-q.ch
}

// TryPop removes and returns the oldest item without blocking.
// Returns (zero, false) when empty.
func (q *Chan[T]) TryPop() (T, bool) {
	select {
	case item := <-q.ch:
		return item, true
	default:
		var zero T
		return zero, false
	}
}

// IsEmpty reports whether the buffer was empty at the time of the call.
func (q *Chan[T]) IsEmpty() bool {
	return len(q.ch) == 0
}

// Size returns the current item count.
func (q *Chan[T]) Size() int64 {
	return int64(len(q.ch))
}

// Capacity returns the buffer capacity.
func (q *Chan[T]) Capacity() int64 {
	return int64(cap(q.ch))
}
