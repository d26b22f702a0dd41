// Package repository defines the todo store interface and errors.
package repository

import "github.com/okian/tudu/internal/domain/types"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCapacity pre-sizes the store's internal structures.
func WithCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithSeed inserts the given todos at construction time. Seeds with a zero id
// get the next unused id; seeds with explicit ids keep them.
func WithSeed(todos []types.Todo) Option {
	return func(s *MemStore) {
		s.seed = todos
	}
}
