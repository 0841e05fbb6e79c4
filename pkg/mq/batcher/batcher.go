package batcher

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/queuex/go-queue/pkg/datastructs/queue"
)

// ErrClosed is returned by Push after Close has been called.
var ErrClosed = errors.New("batcher: closed")

const (
	defaultBatchSize     = 512
	defaultFlushInterval = 100 * time.Millisecond

	// How often a worker re-polls a dry queue while its flush window is open.
	flushPoll = time.Millisecond
)

// item wraps a value on the internal queue. A stop item is the shutdown
// marker; Close enqueues one per worker so every buffered value ahead of the
// marker is flushed before the worker exits.
type item[T any] struct {
	value T
	stop  bool
}

// QueueBatcher is a lossless concurrent batcher backed by a bounded two-lock
// queue.
//
// Behavior:
//   - Multiple goroutines can call Push() concurrently.
//   - Push blocks when QueueCapacity items are buffered (backpressure).
//   - Workers assemble batches of up to BatchSize items and flush them to
//     the Consumer; a short batch waits up to FlushInterval for more items
//     before it is flushed, bounding the latency a quiet queue can add.
//   - Flush errors are logged and do not stop the workers.
//   - Close drains everything already buffered before returning. Items
//     pushed concurrently with Close may be dropped.
type QueueBatcher[T any] struct {
	q      *queue.TwoLock[item[T]]
	cons   Consumer[T]
	cfg    Config
	log    *zap.Logger
	group  *errgroup.Group
	closed atomic.Bool
	once   sync.Once
}

// New creates a QueueBatcher for type T and starts its workers.
// A nil logger disables logging.
func New[T any](cons Consumer[T], cfg Config, log *zap.Logger) *QueueBatcher[T] {
	// Default config
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}

	b := &QueueBatcher[T]{
		q:     queue.NewTwoLock[item[T]](cfg.QueueCapacity),
		cons:  cons,
		cfg:   cfg,
		log:   log,
		group: &errgroup.Group{},
	}
	for i := 0; i < cfg.Workers; i++ {
		b.group.Go(b.run)
	}

	return b
}

// Push adds an item to the batcher, blocking while the internal queue is
// full. Returns ErrClosed after Close.
func (b *QueueBatcher[T]) Push(v T) error {
	if b.closed.Load() {
		return ErrClosed
	}
	b.q.Push(item[T]{value: v})
	return nil
}

// Close stops intake, waits for all buffered items to be flushed and for the
// workers to exit. Safe to call more than once.
func (b *QueueBatcher[T]) Close() error {
	b.once.Do(func() {
		b.closed.Store(true)
		for i := 0; i < b.cfg.Workers; i++ {
			b.q.Push(item[T]{stop: true})
		}
	})
	return b.group.Wait()
}

// run is the worker loop: block for the first item, then top up the batch
// for up to FlushInterval and flush.
func (b *QueueBatcher[T]) run() error {
	for {
		first := b.q.Pop()
		if first.stop {
			return nil
		}

		batch := make([]T, 0, b.cfg.BatchSize)
		batch = append(batch, first.value)
		stopped := b.fill(&batch)

		if err := b.flush(batch); err != nil {
			b.log.Error("batch flush failed",
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
		}

		if stopped {
			return nil
		}
	}
}

// fill tops up the batch until it reaches BatchSize, a stop marker arrives,
// or FlushInterval elapses with the queue dry. Returns whether a stop marker
// was consumed.
func (b *QueueBatcher[T]) fill(batch *[]T) bool {
	deadline := time.Now().Add(b.cfg.FlushInterval)
	for len(*batch) < b.cfg.BatchSize {
		it, ok := b.q.TryPop()
		if ok {
			if it.stop {
				return true
			}
			*batch = append(*batch, it.value)
			continue
		}
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(flushPoll)
	}
	return false
}

// flush hands the batch to the Consumer. The slice is never reused, so the
// Consumer owns the data it receives.
func (b *QueueBatcher[T]) flush(batch []T) error {
	if len(batch) == 0 {
		return nil
	}
	if err := b.cons.Consume(batch); err != nil {
		return errors.Wrap(err, "consume batch")
	}
	return nil
}
