package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asvarma/vivah/internal/model"
	"github.com/asvarma/vivah/internal/store"
	"github.com/asvarma/vivah/internal/websocket"
)

type GuestHandler struct {
	store *store.PlanStore
	hub   *websocket.Hub
}

func NewGuestHandler(s *store.PlanStore, hub *websocket.Hub) *GuestHandler {
	return &GuestHandler{store: s, hub: hub}
}

func (h *GuestHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type guestRequest struct {
	Name       string           `json:"name"`
	Phone      string           `json:"phone"`
	Email      string           `json:"email"`
	GroupID    *string          `json:"groupId"`
	RSVPStatus model.RSVPStatus `json:"rsvpStatus"`
}

func (r *guestRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if r.RSVPStatus == "" {
		r.RSVPStatus = model.RSVPPending
	}
	if !r.RSVPStatus.Valid() {
		return "rsvpStatus must be pending, confirmed, or declined"
	}
	return ""
}

func (r guestRequest) guest() model.Guest {
	return model.Guest{
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		GroupID:    r.GroupID,
		RSVPStatus: r.RSVPStatus,
	}
}

func (h *GuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req guestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	guest := h.store.AddGuest(r.Context(), req.guest())
	h.broadcast(websocket.NewMessage("guest", "created", guest.ID, nil))
	writeJSON(w, http.StatusCreated, guest)
}

func (h *GuestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req guestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	guest := req.guest()
	guest.ID = id
	h.store.UpdateGuest(r.Context(), guest)
	h.broadcast(websocket.NewMessage("guest", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *GuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.store.DeleteGuest(r.Context(), id)
	h.broadcast(websocket.NewMessage("guest", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type guestGroupRequest struct {
	Name string `json:"name"`
}

func (h *GuestHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req guestGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	group := h.store.AddGuestGroup(r.Context(), req.Name)
	h.broadcast(websocket.NewMessage("guest_group", "created", group.ID, nil))
	writeJSON(w, http.StatusCreated, group)
}

func (h *GuestHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req guestGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	h.store.UpdateGuestGroup(r.Context(), id, req.Name)
	h.broadcast(websocket.NewMessage("guest_group", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteGroup removes the group; the store nulls groupId on every guest
// that pointed at it.
func (h *GuestHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.store.DeleteGuestGroup(r.Context(), id)
	h.broadcast(websocket.NewMessage("guest_group", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
