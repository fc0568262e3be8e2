package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/asvarma/vivah/internal/backup"
	"github.com/asvarma/vivah/internal/export"
	"github.com/asvarma/vivah/internal/pdf"
	"github.com/asvarma/vivah/internal/store"
	"github.com/asvarma/vivah/internal/websocket"
)

// Import uploads are whole plan documents, not single images. Cap them
// well above the largest plausible export.
const maxImportBytes = 64 << 20

type PlanHandler struct {
	store   *store.PlanStore
	hub     *websocket.Hub
	backups *backup.Manager
	logger  *slog.Logger
}

func NewPlanHandler(s *store.PlanStore, hub *websocket.Hub, backups *backup.Manager, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{store: s, hub: hub, backups: backups, logger: logger}
}

func (h *PlanHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// Get returns the full plan snapshot along with the store's load state.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"state": h.store.State(),
		"plan":  h.store.Snapshot(),
	})
}

type totalBudgetRequest struct {
	TotalBudget float64 `json:"totalBudget"`
}

func (h *PlanHandler) UpdateTotalBudget(w http.ResponseWriter, r *http.Request) {
	var req totalBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.TotalBudget < 0 {
		writeError(w, http.StatusBadRequest, "total budget must not be negative")
		return
	}

	h.store.UpdateTotalBudget(r.Context(), req.TotalBudget)
	h.broadcast(websocket.NewMessage("plan", "updated", "total_budget", nil))
	w.WriteHeader(http.StatusNoContent)
}

// Export streams the plan as a pretty-printed JSON download.
func (h *PlanHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Export()
	if err != nil {
		h.logger.Error("export plan", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export plan")
		return
	}

	name := export.Filename(time.Now().UTC())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import replaces the entire plan with an uploaded export document.
func (h *PlanHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := h.store.Import(r.Context(), data); err != nil {
		if errors.Is(err, export.ErrInvalidDocument) {
			writeError(w, http.StatusBadRequest, "not a valid plan document")
			return
		}
		h.logger.Error("import plan", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to import plan")
		return
	}

	h.broadcast(websocket.NewMessage("plan", "imported", "", nil))
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// Reset discards every collection and restores the default total budget.
func (h *PlanHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset(r.Context())
	h.broadcast(websocket.NewMessage("plan", "reset", "", nil))
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// PDF renders one section of the plan, or the complete overview, as a
// PDF download. The section comes from the path.
func (h *PlanHandler) PDF(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	plan := h.store.Snapshot()
	now := time.Now()

	var render func(io.Writer) error
	switch section {
	case "budget":
		render = func(w io.Writer) error { return pdf.Budget(w, plan.TotalBudget, plan.BudgetCategories, now) }
	case "events":
		render = func(w io.Writer) error { return pdf.Events(w, plan.Events, now) }
	case "guests":
		render = func(w io.Writer) error { return pdf.Guests(w, plan.Guests, plan.GuestGroups, now) }
	case "vendors":
		render = func(w io.Writer) error { return pdf.Vendors(w, plan.Vendors, now) }
	case "todos":
		render = func(w io.Writer) error { return pdf.Todos(w, plan.Todos, now) }
	case "notes":
		render = func(w io.Writer) error { return pdf.Notes(w, plan.Notes, now) }
	case "complete":
		render = func(w io.Writer) error { return pdf.Complete(w, plan, now) }
	default:
		writeError(w, http.StatusNotFound, "unknown report section")
		return
	}

	name := fmt.Sprintf("wedding-%s-%s.pdf", section, now.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if err := render(w); err != nil {
		h.logger.Error("render pdf", "section", section, "error", err)
	}
}

type backupRequest struct {
	Passphrase string `json:"passphrase"`
	Path       string `json:"path"`
}

func (h *PlanHandler) BackupStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.backups.Status())
}

// RunBackup triggers an immediate encrypted backup.
func (h *PlanHandler) RunBackup(w http.ResponseWriter, r *http.Request) {
	var req backupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Passphrase == "" {
		writeError(w, http.StatusBadRequest, "passphrase is required")
		return
	}

	path, err := h.backups.Run(r.Context(), req.Passphrase)
	if err != nil {
		h.logger.Error("run backup", "error", err)
		writeError(w, http.StatusInternalServerError, "backup failed")
		return
	}

	h.backups.CachePassphrase(req.Passphrase)
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

// RestoreBackup decrypts a backup file and replaces the current plan
// with its contents.
func (h *PlanHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req backupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Passphrase == "" || req.Path == "" {
		writeError(w, http.StatusBadRequest, "path and passphrase are required")
		return
	}

	if err := h.backups.Restore(r.Context(), req.Path, req.Passphrase); err != nil {
		h.logger.Error("restore backup", "path", req.Path, "error", err)
		writeError(w, http.StatusBadRequest, "restore failed")
		return
	}

	h.broadcast(websocket.NewMessage("plan", "imported", "", nil))
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}
