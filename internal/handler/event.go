package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asvarma/vivah/internal/model"
	"github.com/asvarma/vivah/internal/store"
	"github.com/asvarma/vivah/internal/websocket"
)

type EventHandler struct {
	store *store.PlanStore
	hub   *websocket.Hub
}

func NewEventHandler(s *store.PlanStore, hub *websocket.Hub) *EventHandler {
	return &EventHandler{store: s, hub: hub}
}

func (h *EventHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type eventRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Venue string `json:"venue"`
	Notes string `json:"notes"`
}

func (r eventRequest) event() model.Event {
	return model.Event{
		Title: r.Title,
		Date:  r.Date,
		Time:  r.Time,
		Venue: r.Venue,
		Notes: r.Notes,
	}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	event := h.store.AddEvent(r.Context(), req.event())
	h.broadcast(websocket.NewMessage("event", "created", event.ID, nil))
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	event := req.event()
	event.ID = id
	h.store.UpdateEvent(r.Context(), event)
	h.broadcast(websocket.NewMessage("event", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.store.DeleteEvent(r.Context(), id)
	h.broadcast(websocket.NewMessage("event", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
