package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asvarma/vivah/internal/model"
	"github.com/asvarma/vivah/internal/store"
	"github.com/asvarma/vivah/internal/websocket"
)

type TodoHandler struct {
	store *store.PlanStore
	hub   *websocket.Hub
}

func NewTodoHandler(s *store.PlanStore, hub *websocket.Hub) *TodoHandler {
	return &TodoHandler{store: s, hub: hub}
}

func (h *TodoHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type todoRequest struct {
	Task        string         `json:"task"`
	DueDate     *string        `json:"dueDate"`
	IsCompleted bool           `json:"isCompleted"`
	Priority    model.Priority `json:"priority"`
}

func (r *todoRequest) validate() string {
	r.Task = strings.TrimSpace(r.Task)
	if r.Task == "" {
		return "task is required"
	}
	if r.Priority == "" {
		r.Priority = model.PriorityMedium
	}
	if !r.Priority.Valid() {
		return "priority must be low, medium, or high"
	}
	return ""
}

func (r todoRequest) todo() model.TodoItem {
	return model.TodoItem{
		Task:        r.Task,
		DueDate:     r.DueDate,
		IsCompleted: r.IsCompleted,
		Priority:    r.Priority,
	}
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	todo := h.store.AddTodo(r.Context(), req.todo())
	h.broadcast(websocket.NewMessage("todo", "created", todo.ID, nil))
	writeJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	todo := req.todo()
	todo.ID = id
	h.store.UpdateTodo(r.Context(), todo)
	h.broadcast(websocket.NewMessage("todo", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.store.DeleteTodo(r.Context(), id)
	h.broadcast(websocket.NewMessage("todo", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
