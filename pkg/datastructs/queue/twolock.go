package queue

import (
	"sync"
	"sync/atomic"

	"github.com/queuex/go-queue/pkg/settings"
)

var _ Queue[int] = (*TwoLock[int])(nil)

const cacheLineSize = 64

// node is a link in the queue's forward chain. The node whose next pointer
// is nil is the tail sentinel: it carries no value yet. A push writes the
// value into the sentinel and only then publishes a fresh sentinel through
// next, so a reader that observes a non-nil next also observes the value.
type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// holds reports whether the node carries a value, i.e. is not the sentinel.
func (n *node[T]) holds() bool {
	return n.next.Load() != nil
}

// TwoLock is a bounded multiple-producer multiple-consumer FIFO queue built
// on the two-lock linked queue algorithm. Producers contend only on the tail
// lock, consumers only on the head lock; the two sides meet through an
// atomic size counter and cross-signaling on the empty->non-empty and
// full->non-full transitions.
type TwoLock[T any] struct {
	capacity int64        // Maximum number of buffered items
	size     atomic.Int64 // Current item count, in [0, capacity]

	_ [cacheLineSize]byte // Padding to prevent false sharing

	headMu   sync.Mutex
	head     *node[T]   // Oldest unconsumed node, or the sentinel when empty
	notEmpty *sync.Cond // Bound to headMu

	_ [cacheLineSize]byte // Padding to prevent false sharing

	tailMu  sync.Mutex
	tail    *node[T]   // Always the current sentinel
	notFull *sync.Cond // Bound to tailMu
}

// NewTwoLock creates a queue bounded to the given capacity.
// A non-positive capacity falls back to DefaultCapacity.
func NewTwoLock[T any](capacity int64) *TwoLock[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	sentinel := &node[T]{}
	q := &TwoLock[T]{
		capacity: capacity,
		head:     sentinel,
		tail:     sentinel,
	}
	q.notEmpty = sync.NewCond(&q.headMu)
	q.notFull = sync.NewCond(&q.tailMu)

	return q
}

// NewTwoLockFromSettings creates a queue bounded by the queue settings
// block, with the same capacity fallback as NewTwoLock.
func NewTwoLockFromSettings[T any](s settings.Queue) *TwoLock[T] {
	return NewTwoLock[T](s.Capacity)
}

// Push inserts an item at the tail, blocking while the queue is full.
func (q *TwoLock[T]) Push(item T) {
	q.tailMu.Lock()
	for q.size.Load() >= q.capacity {
		q.notFull.Wait()
	}
	q.append(item)
	wasEmpty := q.size.Add(1) == 1
	q.tailMu.Unlock()

	if wasEmpty {
		fence(&q.headMu)
		q.notEmpty.Broadcast()
	}
}

// TryPush inserts an item at the tail without blocking.
// It returns false when the queue is full.
func (q *TwoLock[T]) TryPush(item T) bool {
	q.tailMu.Lock()
	if q.size.Load() >= q.capacity {
		q.tailMu.Unlock()
		return false
	}
	q.append(item)
	wasEmpty := q.size.Add(1) == 1
	q.tailMu.Unlock()

	if wasEmpty {
		fence(&q.headMu)
		q.notEmpty.Broadcast()
	}
	return true
}

// PushUnbounded inserts an item at the tail, ignoring the capacity bound and
// skipping consumer wake-ups. It is meant for tests and harnesses; mixing it
// with blocking Pop in production paths can leave consumers asleep.
func (q *TwoLock[T]) PushUnbounded(item T) {
	q.tailMu.Lock()
	q.append(item)
	q.size.Add(1)
	q.tailMu.Unlock()
}

// append fills the current sentinel and links a fresh one.
// Callers must hold tailMu.
func (q *TwoLock[T]) append(item T) {
	sentinel := &node[T]{}
	q.tail.value = item
	q.tail.next.Store(sentinel)
	q.tail = sentinel
}

// Pop removes and returns the oldest item, blocking while the queue is empty.
func (q *TwoLock[T]) Pop() T {
	q.headMu.Lock()
	for q.size.Load() == 0 {
		q.notEmpty.Wait()
	}
	item := q.advance()
	wasFull := q.size.Add(-1) == q.capacity-1
	q.headMu.Unlock()

	if wasFull {
		fence(&q.tailMu)
		q.notFull.Broadcast()
	}
	return item
}

// TryPop removes and returns the oldest item without blocking.
// It returns (zero, false) when the queue is empty.
func (q *TwoLock[T]) TryPop() (T, bool) {
	q.headMu.Lock()
	if !q.head.holds() {
		q.headMu.Unlock()
		var zero T
		return zero, false
	}
	item := q.advance()
	wasFull := q.size.Add(-1) == q.capacity-1
	q.headMu.Unlock()

	if wasFull {
		fence(&q.tailMu)
		q.notFull.Broadcast()
	}
	return item, true
}

// PopUnbounded removes and returns the oldest item without blocking and
// without waking producers blocked on a full queue. It returns (zero, false)
// when the queue is empty. Test/harness counterpart of PushUnbounded.
func (q *TwoLock[T]) PopUnbounded() (T, bool) {
	q.headMu.Lock()
	if !q.head.holds() {
		q.headMu.Unlock()
		var zero T
		return zero, false
	}
	item := q.advance()
	q.size.Add(-1)
	q.headMu.Unlock()
	return item, true
}

// advance unlinks the head node and returns its value.
// Callers must hold headMu and have established that head holds a value.
func (q *TwoLock[T]) advance() T {
	next := q.head.next.Load()
	if next == nil {
		// Callers checked for a value, so a sentinel here means the
		// chain is corrupted.
		panic("queue: sentinel at head of non-empty queue")
	}
	item := q.head.value
	q.head = next
	return item
}

// fence acquires and releases mu so that structural updates made under the
// caller's own lock are visible to waiters on the other side before the
// broadcast that follows. The empty critical section is the point.
func fence(mu *sync.Mutex) {
	mu.Lock()
	mu.Unlock()
}

// Peek returns the oldest item without removing it, or (zero, false) when
// the queue is empty. The result is a snapshot and may be stale as soon as
// it is returned.
func (q *TwoLock[T]) Peek() (T, bool) {
	q.headMu.Lock()
	defer q.headMu.Unlock()

	if !q.head.holds() {
		var zero T
		return zero, false
	}
	return q.head.value, true
}

// IsEmpty reports whether the queue was empty at the time of the call.
// Snapshot semantics, same as Peek.
func (q *TwoLock[T]) IsEmpty() bool {
	q.headMu.Lock()
	defer q.headMu.Unlock()
	return !q.head.holds()
}

// Size returns the current item count. Approximate under concurrent access.
func (q *TwoLock[T]) Size() int64 {
	return q.size.Load()
}

// Capacity returns the maximum queue size.
func (q *TwoLock[T]) Capacity() int64 {
	return q.capacity
}

// Clear drains all items from the queue, waking producers blocked on a full
// queue.
func (q *TwoLock[T]) Clear() {
	for {
		if _, ok := q.TryPop(); !ok {
			return
		}
	}
}
