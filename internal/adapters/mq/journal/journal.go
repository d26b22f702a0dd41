// Package journal defines the contract for recording and consuming store
// mutation records.
//
// The journal is best-effort: mutations must never block on it, so a full
// journal drops the record and counts the drop instead of applying
// backpressure to the request path.
package journal

import (
	"context"
	"sync"

	"github.com/okian/tudu/internal/domain/model"
	"github.com/okian/tudu/pkg/metrics"
)

// Default journal configuration constants.
const (
	defaultCapacity = 1024
)

// Change is the payload type flowing through the journal.
type Change = model.Change

// Journal provides non-blocking record and channel-based consumption
// semantics.
type Journal interface {
	// Record adds a change to the journal.
	// Returns false if the journal is full or closed and the change was dropped.
	Record(ctx context.Context, c Change) bool

	// Stream returns a channel that receives changes as they become available.
	// The channel is closed when the journal is closed.
	Stream(ctx context.Context) <-chan Change

	// Len returns the current number of pending changes.
	Len(ctx context.Context) int

	// Close shuts down the journal. After closing, no new changes are
	// accepted and the stream channel is closed.
	Close() error

	// IsClosed reports whether the journal has been closed.
	IsClosed() bool
}

// InMemoryJournal implements Journal using a buffered channel.
type InMemoryJournal struct {
	changes  chan Change
	capacity int

	mu     sync.RWMutex
	closed bool
}

var _ Journal = (*InMemoryJournal)(nil)

// NewInMemoryJournal creates a new in-memory journal with configuration options.
func NewInMemoryJournal(opts ...Option) *InMemoryJournal {
	j := &InMemoryJournal{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(j)
	}

	j.changes = make(chan Change, j.capacity)

	metrics.UpdateJournalCapacity(j.capacity)
	metrics.UpdateJournalSize(0)
	metrics.UpdateJournalUtilization(0.0)

	return j
}

// Record adds a change to the journal.
func (j *InMemoryJournal) Record(ctx context.Context, c Change) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		metrics.RecordJournalDrop()
		return false
	}

	select {
	case j.changes <- c:
		metrics.RecordJournalRecord()
		size := len(j.changes)
		metrics.UpdateJournalSize(size)
		metrics.UpdateJournalUtilization(float64(size) / float64(j.capacity))
		return true
	case <-ctx.Done():
		metrics.RecordJournalDrop()
		return false
	default:
		// Full; audit is best-effort, drop rather than block a mutation.
		metrics.RecordJournalDrop()
		return false
	}
}

// Stream returns a channel that receives changes as they become available.
func (j *InMemoryJournal) Stream(ctx context.Context) <-chan Change {
	out := make(chan Change)
	go func() {
		defer close(out)
		for c := range j.changes {
			select {
			case out <- c:
				size := len(j.changes)
				metrics.UpdateJournalSize(size)
				metrics.UpdateJournalUtilization(float64(size) / float64(j.capacity))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of pending changes.
func (j *InMemoryJournal) Len(_ context.Context) int {
	size := len(j.changes)
	metrics.UpdateJournalSize(size)
	metrics.UpdateJournalUtilization(float64(size) / float64(j.capacity))
	return size
}

// Close shuts down the journal.
func (j *InMemoryJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}

	close(j.changes)
	j.closed = true
	return nil
}

// IsClosed reports whether the journal has been closed.
func (j *InMemoryJournal) IsClosed() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.closed
}
