// Package worker defines worker contracts for asynchronous change
// processing.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/tudu/internal/domain/model"
	"github.com/okian/tudu/pkg/logger"
	"github.com/okian/tudu/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	poolShutdownTimeout     = 30 * time.Second
)

// Change abstracts what workers read off the journal.
type Change = model.Change

// Recorder folds a change into the activity state.
type Recorder interface {
	Apply(ctx context.Context, c Change) error
}

// Journal defines how workers receive changes.
type Journal interface {
	Stream(ctx context.Context) <-chan Change
}

// Worker processes changes using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// JournalWorker implements Worker for draining the change journal.
type JournalWorker struct {
	journal  Journal
	recorder Recorder
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

var _ Worker = (*JournalWorker)(nil)

// NewJournalWorker creates a new worker with configuration options.
func NewJournalWorker(journal Journal, recorder Recorder, opts ...Option) *JournalWorker {
	w := &JournalWorker{
		journal:  journal,
		recorder: recorder,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *JournalWorker) Run(ctx context.Context) {
	defer close(w.done)

	stream := w.journal.Stream(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case c, ok := <-stream:
			if !ok {
				// Journal closed, worker should stop.
				return
			}
			if err := w.processChange(ctx, c); err != nil {
				w.logger.Error(ctx, "error processing change",
					logger.String("changeID", c.ChangeID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *JournalWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processChange folds a single change into the recorder.
func (w *JournalWorker) processChange(ctx context.Context, c Change) error {
	if err := w.recorder.Apply(ctx, c); err != nil {
		return fmt.Errorf("apply change %s: %w", c.ChangeID, err)
	}
	metrics.RecordChangeApplied(string(c.Op))
	return nil
}

// Pool manages multiple workers draining the same journal.
type Pool struct {
	workers []*JournalWorker

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, journal Journal, recorder Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*JournalWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewJournalWorker(
			journal,
			recorder,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Stop shuts down all workers, waiting up to poolShutdownTimeout.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
	defer cancel()

	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker did not stop cleanly", logger.Error(err))
		}
	}
	metrics.UpdateWorkerCount(0)
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}
