// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Op names a store mutation kind.
type Op string

// Mutation kinds recorded in the journal.
const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change is the audit record emitted for every store mutation. It flows
// through the journal to the workers and never crosses the HTTP boundary.
type Change struct {
	ChangeID string    // unique id for this mutation
	Op       Op        // created, updated or deleted
	TodoID   int       // subject todo identifier
	At       time.Time // mutation timestamp
}

// NewChange builds a Change with a fresh id and the current time.
func NewChange(op Op, todoID int) Change {
	return Change{
		ChangeID: uuid.NewString(),
		Op:       op,
		TodoID:   todoID,
		At:       time.Now().UTC(),
	}
}
