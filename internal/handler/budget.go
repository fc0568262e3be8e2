package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asvarma/vivah/internal/model"
	"github.com/asvarma/vivah/internal/store"
	"github.com/asvarma/vivah/internal/websocket"
)

type BudgetHandler struct {
	store *store.PlanStore
	hub   *websocket.Hub
}

func NewBudgetHandler(s *store.PlanStore, hub *websocket.Hub) *BudgetHandler {
	return &BudgetHandler{store: s, hub: hub}
}

func (h *BudgetHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *BudgetHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	cat := h.store.AddBudgetCategory(r.Context(), req.Name)
	h.broadcast(websocket.NewMessage("budget_category", "created", cat.ID, nil))
	writeJSON(w, http.StatusCreated, cat)
}

func (h *BudgetHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	h.store.UpdateBudgetCategory(r.Context(), id, req.Name)
	h.broadcast(websocket.NewMessage("budget_category", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *BudgetHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.store.DeleteBudgetCategory(r.Context(), id)
	h.broadcast(websocket.NewMessage("budget_category", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type budgetItemRequest struct {
	Name          string  `json:"name"`
	EstimatedCost float64 `json:"estimatedCost"`
	ActualCost    float64 `json:"actualCost"`
	IsPaid        bool    `json:"isPaid"`
	Notes         string  `json:"notes"`
}

func (r budgetItemRequest) item() model.BudgetItem {
	return model.BudgetItem{
		Name:          r.Name,
		EstimatedCost: r.EstimatedCost,
		ActualCost:    r.ActualCost,
		IsPaid:        r.IsPaid,
		Notes:         r.Notes,
	}
}

func (h *BudgetHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("category_id")

	var req budgetItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.EstimatedCost < 0 || req.ActualCost < 0 {
		writeError(w, http.StatusBadRequest, "costs must be non-negative")
		return
	}

	item := h.store.AddBudgetItem(r.Context(), categoryID, req.item())
	h.broadcast(websocket.NewMessage("budget_item", "created", item.ID, map[string]any{"category_id": categoryID}))
	writeJSON(w, http.StatusCreated, item)
}

func (h *BudgetHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("category_id")
	itemID := r.PathValue("id")

	var req budgetItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.EstimatedCost < 0 || req.ActualCost < 0 {
		writeError(w, http.StatusBadRequest, "costs must be non-negative")
		return
	}

	item := req.item()
	item.ID = itemID
	h.store.UpdateBudgetItem(r.Context(), categoryID, item)
	h.broadcast(websocket.NewMessage("budget_item", "updated", itemID, map[string]any{"category_id": categoryID}))
	w.WriteHeader(http.StatusNoContent)
}

func (h *BudgetHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("category_id")
	itemID := r.PathValue("id")
	h.store.DeleteBudgetItem(r.Context(), categoryID, itemID)
	h.broadcast(websocket.NewMessage("budget_item", "deleted", itemID, map[string]any{"category_id": categoryID}))
	w.WriteHeader(http.StatusNoContent)
}
