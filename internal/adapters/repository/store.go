// Package repository defines the todo store interface and errors.
package repository

import (
	"context"

	"github.com/okian/tudu/internal/domain/types"
)

// Store provides read/write access to the todo collection.
type Store interface {
	// Get returns the todo with the given id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id int) (types.Todo, error)

	// List returns up to n todos in insertion order.
	List(ctx context.Context, n int) ([]types.Todo, error)

	// Create inserts a new todo and assigns it the next unused id.
	// The returned copy carries the assigned id.
	Create(ctx context.Context, t types.Todo) (types.Todo, error)

	// Update applies a partial update to the todo with the given id and
	// returns the updated record. Returns ErrNotFound if the id is unknown.
	Update(ctx context.Context, id int, patch types.TodoPatch) (types.Todo, error)

	// Delete removes the todo with the given id and returns the removed
	// record. Returns ErrNotFound if the id is unknown.
	Delete(ctx context.Context, id int) (types.Todo, error)

	// Count returns the number of todos in the store.
	Count(ctx context.Context) int
}
