// Package repository defines the todo store interface and errors.
package repository

import (
	"context"
	"sync"

	"github.com/okian/tudu/internal/domain/types"
	"github.com/okian/tudu/pkg/metrics"
)

// In-memory Store implementation.
//
// Ordering: insertion order, which is the only ordering the listing
// operation guarantees. A slice keeps that order directly; the index map
// gives O(1) id lookups. Ids are assigned as max(existing)+1, matching the
// store's uniqueness invariant.

const defaultCapacity = 64

// MemStore implements Store with a slice plus an id index, guarded by a
// RWMutex. Handlers run concurrently even though individual operations are
// trivial.
type MemStore struct {
	mu       sync.RWMutex
	todos    []types.Todo
	index    map[int]int // id -> position in todos
	capacity int
	seed     []types.Todo
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an in-memory store with configuration options.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		capacity: defaultCapacity,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.todos = make([]types.Todo, 0, s.capacity)
	s.index = make(map[int]int, s.capacity)

	for _, t := range s.seed {
		if t.ID == 0 {
			t.ID = s.nextIDLocked()
		}
		if _, exists := s.index[t.ID]; exists {
			continue // seed ids must be unique; keep the first
		}
		s.index[t.ID] = len(s.todos)
		s.todos = append(s.todos, t)
	}
	s.seed = nil

	metrics.UpdateStoreSize(len(s.todos))
	return s
}

// nextIDLocked returns max(existing ids)+1. Callers must hold the lock, or
// be inside construction where no lock is needed yet.
func (s *MemStore) nextIDLocked() int {
	next := 1
	for id := range s.index {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// Get returns the todo with the given id.
func (s *MemStore) Get(_ context.Context, id int) (types.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return types.Todo{}, ErrNotFound
	}
	return s.todos[pos], nil
}

// List returns up to n todos in insertion order.
func (s *MemStore) List(_ context.Context, n int) ([]types.Todo, error) {
	if n < 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.todos) {
		n = len(s.todos)
	}
	out := make([]types.Todo, n)
	copy(out, s.todos[:n])
	return out, nil
}

// Create inserts a new todo and assigns it the next unused id.
func (s *MemStore) Create(_ context.Context, t types.Todo) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextIDLocked()
	s.index[t.ID] = len(s.todos)
	s.todos = append(s.todos, t)

	metrics.UpdateStoreSize(len(s.todos))
	return t, nil
}

// Update applies a partial update to the todo with the given id.
func (s *MemStore) Update(_ context.Context, id int, patch types.TodoPatch) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return types.Todo{}, ErrNotFound
	}
	patch.Apply(&s.todos[pos])
	return s.todos[pos], nil
}

// Delete removes the todo with the given id and returns the removed record.
func (s *MemStore) Delete(_ context.Context, id int) (types.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return types.Todo{}, ErrNotFound
	}
	removed := s.todos[pos]

	// Shift the tail left to preserve insertion order, then fix positions.
	s.todos = append(s.todos[:pos], s.todos[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.todos); i++ {
		s.index[s.todos[i].ID] = i
	}

	metrics.UpdateStoreSize(len(s.todos))
	return removed, nil
}

// Count returns the number of todos in the store.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}
