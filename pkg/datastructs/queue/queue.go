package queue

// DefaultCapacity is the bound applied when a queue is constructed with a
// non-positive capacity.
const DefaultCapacity = 1 << 20

// Queue is a generic interface for blocking bounded FIFO queues.
type Queue[T any] interface {
	// Push inserts an item at the tail.
	// It blocks while the queue is full.
	Push(item T)

	// Pop removes and returns the oldest item.
	// It blocks while the queue is empty.
	Pop() T

	// Capacity returns the maximum number of buffered items.
	Capacity() int64
}
