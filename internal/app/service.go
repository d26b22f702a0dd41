// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/okian/tudu/internal/adapters/mq/journal"
	"github.com/okian/tudu/internal/adapters/mq/worker"
	repository "github.com/okian/tudu/internal/adapters/repository"
	"github.com/okian/tudu/internal/domain/model"
	"github.com/okian/tudu/internal/domain/types"
	"github.com/okian/tudu/pkg/logger"
	"github.com/okian/tudu/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultJournalSize = 1024
)

// Service implements the API dependencies for the todo system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	journal journal.Journal
	pool    *worker.Pool
	tally   *Tally

	// Configuration
	workerCount int
	journalSize int
	seed        []types.Todo

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of journal workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithJournalSize sets the capacity of the change journal.
func WithJournalSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.journalSize = size
		}
	}
}

// WithSeed loads the given todos into the store at startup.
func WithSeed(todos []types.Todo) Option {
	return func(s *Service) {
		s.seed = todos
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: 0, // worker.NewPool falls back to a CPU-derived default
		journalSize: defaultJournalSize,
		tally:       NewTally(),
		logger:      nil, // resolved on Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting todo service...")

	s.store = repository.NewMemStore(ctx, repository.WithSeed(s.seed))
	s.journal = journal.NewInMemoryJournal(
		journal.WithCapacity(s.journalSize),
	)
	s.pool = worker.NewPool(s.workerCount, s.journal, s.tally)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "todo service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("journalSize", s.journalSize),
		logger.Int("seeded", s.store.Count(ctx)),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping todo service...")

	if s.pool != nil {
		s.pool.Stop()
	}
	if s.journal != nil {
		_ = s.journal.Close()
	}

	s.started = false
	s.logger.Info(ctx, "todo service stopped")
}

// record pushes a change into the journal. Audit is best-effort; drops are
// logged and counted but never fail the mutation.
func (s *Service) record(ctx context.Context, op model.Op, todoID int) {
	c := model.NewChange(op, todoID)
	if !s.journal.Record(ctx, c) {
		s.logger.Warn(ctx, "change journal dropped a record",
			logger.String("op", string(op)),
			logger.Int("todoID", todoID),
		)
	}
}

// GetTodo returns the todo with the given id.
func (s *Service) GetTodo(ctx context.Context, id int) (types.Todo, error) {
	return s.store.Get(ctx, id)
}

// ListTodos returns up to n todos in insertion order.
func (s *Service) ListTodos(ctx context.Context, n int) ([]types.Todo, error) {
	return s.store.List(ctx, n)
}

// CreateTodo inserts a new todo and journals the mutation.
func (s *Service) CreateTodo(ctx context.Context, t types.Todo) (types.Todo, error) {
	created, err := s.store.Create(ctx, t)
	if err != nil {
		return types.Todo{}, err
	}
	metrics.RecordTodoCreated()
	s.record(ctx, model.OpCreated, created.ID)
	s.logger.Debug(ctx, "todo created",
		logger.Int("id", created.ID),
		logger.String("name", created.Name),
	)
	return created, nil
}

// UpdateTodo applies a partial update and journals the mutation.
func (s *Service) UpdateTodo(ctx context.Context, id int, patch types.TodoPatch) (types.Todo, error) {
	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return types.Todo{}, err
	}
	metrics.RecordTodoUpdated()
	s.record(ctx, model.OpUpdated, id)
	return updated, nil
}

// DeleteTodo removes a todo and journals the mutation.
func (s *Service) DeleteTodo(ctx context.Context, id int) (types.Todo, error) {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return types.Todo{}, err
	}
	metrics.RecordTodoDeleted()
	s.record(ctx, model.OpDeleted, id)
	return removed, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"journalSize": s.journalSize,
	}

	if s.started {
		journalLen := s.journal.Len(ctx)
		totalTodos := s.store.Count(ctx)

		stats["workerCount"] = s.pool.Size()
		stats["journalLength"] = journalLen
		stats["totalTodos"] = totalTodos
		stats["changes"] = s.tally.Snapshot()

		metrics.UpdateStoreSize(totalTodos)
	}

	return stats
}
