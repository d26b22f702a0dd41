// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/okian/tudu/internal/domain/types"
)

// Todo and TodoPatch mirror the shapes returned by the store.
type (
	Todo      = types.Todo
	TodoPatch = types.TodoPatch
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// GetTodo returns the todo with the given id.
	GetTodo(ctx context.Context, id int) (Todo, error)

	// ListTodos returns up to n todos in insertion order.
	ListTodos(ctx context.Context, n int) ([]Todo, error)

	// CreateTodo inserts a new todo and returns it with its assigned id.
	CreateTodo(ctx context.Context, t Todo) (Todo, error)

	// UpdateTodo applies a partial update and returns the updated record.
	UpdateTodo(ctx context.Context, id int, patch TodoPatch) (Todo, error)

	// DeleteTodo removes a todo and returns the removed record.
	DeleteTodo(ctx context.Context, id int) (Todo, error)
}

// validate checks the declarative constraints on request bodies. The field
// bounds live on the request structs; no custom validation code.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	todoHandler   *TodoHandler
	todosHandler  *TodosHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxListLimit, defaultListLimit int) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		todoHandler:   NewTodoHandler(deps),
		todosHandler:  NewTodosHandler(deps, maxListLimit, defaultListLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/todo", RequestIDMiddleware(MetricsMiddleware(s.todosHandler.HandleTodos, "todos")))
	mux.HandleFunc("/todo/", RequestIDMiddleware(MetricsMiddleware(s.todoHandler.HandleTodo, "todo")))
}

// todoCreateRequest mirrors the OpenAPI schema for POST /todo.
type todoCreateRequest struct {
	Name        string          `json:"todo_name" validate:"required,min=2,max=150"`
	Description string          `json:"todo_description" validate:"max=300"`
	Priority    *types.Priority `json:"priority" validate:"omitnil,min=1,max=3"`
	Completed   bool            `json:"completed"`
}

// todo builds the domain record, applying the priority default.
func (r todoCreateRequest) todo() Todo {
	priority := types.PriorityLow
	if r.Priority != nil {
		priority = *r.Priority
	}
	return Todo{
		Name:        r.Name,
		Description: r.Description,
		Priority:    priority,
		Completed:   r.Completed,
	}
}

// todoPatchRequest mirrors the OpenAPI schema for PUT /todo/{id}.
// Absent fields leave the stored values unchanged.
type todoPatchRequest struct {
	Name        *string         `json:"todo_name" validate:"omitnil,min=2,max=150"`
	Description *string         `json:"todo_description" validate:"omitnil,max=300"`
	Priority    *types.Priority `json:"priority" validate:"omitnil,min=1,max=3"`
	Completed   *bool           `json:"completed"`
}

func (r todoPatchRequest) patch() TodoPatch {
	return TodoPatch{
		Name:        r.Name,
		Description: r.Description,
		Priority:    r.Priority,
		Completed:   r.Completed,
	}
}

// deleteResponse confirms a deletion and echoes the removed record.
type deleteResponse struct {
	Message string `json:"message"`
	Todo    Todo   `json:"todo"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// isValidation reports whether err comes from the schema validator.
func isValidation(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
