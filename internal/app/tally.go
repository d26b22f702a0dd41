package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/tudu/internal/domain/model"
)

// Tally folds journal changes into per-operation counters. It is the
// worker pool's Recorder.
type Tally struct {
	mu       sync.RWMutex
	counts   map[model.Op]int
	lastAt   time.Time
	lastOp   model.Op
	lastTodo int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{
		counts: make(map[model.Op]int),
	}
}

// Apply folds a single change into the tally.
func (t *Tally) Apply(_ context.Context, c model.Change) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counts[c.Op]++
	t.lastAt = c.At
	t.lastOp = c.Op
	t.lastTodo = c.TodoID
	return nil
}

// Snapshot returns a copy of the tally for the stats endpoint.
func (t *Tally) Snapshot() map[string]interface{} {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := map[string]interface{}{
		"created": t.counts[model.OpCreated],
		"updated": t.counts[model.OpUpdated],
		"deleted": t.counts[model.OpDeleted],
	}
	if !t.lastAt.IsZero() {
		snap["lastOp"] = string(t.lastOp)
		snap["lastTodoID"] = t.lastTodo
		snap["lastAt"] = t.lastAt.Format(time.RFC3339)
	}
	return snap
}
