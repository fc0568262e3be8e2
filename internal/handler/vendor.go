package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asvarma/vivah/internal/model"
	"github.com/asvarma/vivah/internal/store"
	"github.com/asvarma/vivah/internal/websocket"
)

type VendorHandler struct {
	store *store.PlanStore
	hub   *websocket.Hub
}

func NewVendorHandler(s *store.PlanStore, hub *websocket.Hub) *VendorHandler {
	return &VendorHandler{store: s, hub: hub}
}

func (h *VendorHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type vendorRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Cost     float64 `json:"cost"`
	Notes    string  `json:"notes"`
}

func (r *vendorRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name is required"
	}
	if r.Cost < 0 {
		return "cost must be non-negative"
	}
	return ""
}

func (r vendorRequest) vendor() model.Vendor {
	return model.Vendor{
		Name:     r.Name,
		Category: r.Category,
		Phone:    r.Phone,
		Email:    r.Email,
		Cost:     r.Cost,
		Notes:    r.Notes,
	}
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	vendor := h.store.AddVendor(r.Context(), req.vendor())
	h.broadcast(websocket.NewMessage("vendor", "created", vendor.ID, nil))
	writeJSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	vendor := req.vendor()
	vendor.ID = id
	h.store.UpdateVendor(r.Context(), vendor)
	h.broadcast(websocket.NewMessage("vendor", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.store.DeleteVendor(r.Context(), id)
	h.broadcast(websocket.NewMessage("vendor", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
