// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/okian/tudu/pkg/metrics"
)

// TodosHandler handles collection requests on /todo.
type TodosHandler struct {
	deps         Dependencies
	maxLimit     int
	defaultLimit int
}

// NewTodosHandler creates a new collection handler.
func NewTodosHandler(deps Dependencies, maxLimit, defaultLimit int) *TodosHandler {
	return &TodosHandler{
		deps:         deps,
		maxLimit:     maxLimit,
		defaultLimit: defaultLimit,
	}
}

// HandleTodos dispatches GET (list) and POST (create) on /todo.
func (h *TodosHandler) HandleTodos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleList handles GET /todo?first_n=N requests.
func (h *TodosHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_todos"

	n := h.defaultLimit
	if raw := r.URL.Query().Get("first_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = parsed
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	todos, err := h.deps.ListTodos(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// handleCreate handles POST /todo requests.
func (h *TodosHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_todo"

	var req todoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		metrics.RecordValidationError()
		writeError(w, http.StatusUnprocessableEntity, "validation_error", WrapKind(op, ErrValidation, err))
		return
	}

	created, err := h.deps.CreateTodo(r.Context(), req.todo())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
