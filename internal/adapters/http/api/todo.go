// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/tudu/pkg/metrics"
)

// TodoHandler handles single-record requests on /todo/{id}.
type TodoHandler struct {
	deps Dependencies
}

// NewTodoHandler creates a new item handler.
func NewTodoHandler(deps Dependencies) *TodoHandler {
	return &TodoHandler{deps: deps}
}

// HandleTodo dispatches GET, PUT and DELETE on /todo/{id}.
func (h *TodoHandler) HandleTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// pathID extracts the integer id after /todo/. On failure it writes the
// error response and returns false.
func (h *TodoHandler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	const op = "api.todo_path"

	path := strings.TrimPrefix(r.URL.Path, "/todo/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return 0, false
	}
	id, err := strconv.Atoi(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return 0, false
	}
	return id, true
}

// handleGet handles GET /todo/{id} requests.
func (h *TodoHandler) handleGet(w http.ResponseWriter, r *http.Request, id int) {
	const op = "api.get_todo"

	todo, err := h.deps.GetTodo(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			metrics.RecordNotFound()
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// handleUpdate handles PUT /todo/{id} requests with a partial body.
func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int) {
	const op = "api.update_todo"

	var req todoPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		metrics.RecordValidationError()
		writeError(w, http.StatusUnprocessableEntity, "validation_error", WrapKind(op, ErrValidation, err))
		return
	}

	updated, err := h.deps.UpdateTodo(r.Context(), id, req.patch())
	if err != nil {
		if isNotFound(err) {
			metrics.RecordNotFound()
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDelete handles DELETE /todo/{id} requests.
func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int) {
	const op = "api.delete_todo"

	removed, err := h.deps.DeleteTodo(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			metrics.RecordNotFound()
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{
		Message: "todo deleted successfully",
		Todo:    removed,
	})
}
