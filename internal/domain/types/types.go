// Package types contains common types used across the application.
package types

// Priority orders todos from most to least urgent. Lower value means more
// urgent; LOW is the creation default.
type Priority int

// Priority levels.
const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Valid reports whether p is one of the defined levels.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Todo is the single record type of the service. JSON field names mirror the
// public API schema.
type Todo struct {
	ID          int      `json:"todo_id"`
	Name        string   `json:"todo_name"`
	Description string   `json:"todo_description"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// TodoPatch carries a partial update. Nil fields leave the stored value
// unchanged; the id is never patchable.
type TodoPatch struct {
	Name        *string   `json:"todo_name"`
	Description *string   `json:"todo_description"`
	Priority    *Priority `json:"priority"`
	Completed   *bool     `json:"completed"`
}

// Apply overwrites the fields of t that the patch supplies.
func (p TodoPatch) Apply(t *Todo) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
