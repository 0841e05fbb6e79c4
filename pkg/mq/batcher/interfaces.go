package batcher

import (
	"time"

	"github.com/queuex/go-queue/pkg/settings"
)

// Consumer is the interface that must be implemented by users of the Batcher.
// It is responsible for processing a batch of items.
type Consumer[T any] interface {
	// Consume processes a batch of items.
	// Returns an error if processing fails.
	Consume(batch []T) error
}

// Config holds configuration for the QueueBatcher.
type Config struct {
	// BatchSize is the maximum number of items flushed to the Consumer at
	// once. Defaults to 512.
	BatchSize int

	// QueueCapacity bounds the internal queue. Push blocks once this many
	// items are buffered. Defaults to the queue package default.
	QueueCapacity int64

	// FlushInterval is how long a worker waits for more items to top up a
	// short batch before flushing it. Defaults to 100ms.
	FlushInterval time.Duration

	// Workers is the number of goroutines draining the queue. Defaults to 1.
	Workers int
}

// ConfigFromSettings maps the batcher settings block onto a Config.
func ConfigFromSettings(s settings.Batcher) Config {
	return Config{
		BatchSize:     s.BatchSize,
		QueueCapacity: s.QueueCapacity,
		FlushInterval: time.Duration(s.FlushInterval) * time.Millisecond,
		Workers:       s.Workers,
	}
}
