package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asvarma/vivah/internal/backup"
	"github.com/asvarma/vivah/internal/handler"
	"github.com/asvarma/vivah/internal/middleware"
	"github.com/asvarma/vivah/internal/store"
	ws "github.com/asvarma/vivah/internal/websocket"
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	planStore     *store.PlanStore
	planH         *handler.PlanHandler
	budgetH       *handler.BudgetHandler
	eventH        *handler.EventHandler
	guestH        *handler.GuestHandler
	vendorH       *handler.VendorHandler
	todoH         *handler.TodoHandler
	noteH         *handler.NoteHandler
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, backupCfg backup.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	planStore := store.NewPlanStore(store.NewDocumentStore(db), logger.With("component", "store"))

	backupMgr := backup.NewManager(backupCfg, planStore, func(st backup.Status) {
		hub.Broadcast(ws.Message{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(st.State),
			Extra: map[string]any{
				"in_progress": st.InProgress,
				"error":       st.Error,
			},
		})
	}, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		planStore:     planStore,
		planH:         handler.NewPlanHandler(planStore, hub, backupMgr, logger.With("component", "plan")),
		budgetH:       handler.NewBudgetHandler(planStore, hub),
		eventH:        handler.NewEventHandler(planStore, hub),
		guestH:        handler.NewGuestHandler(planStore, hub),
		vendorH:       handler.NewVendorHandler(planStore, hub),
		todoH:         handler.NewTodoHandler(planStore, hub),
		noteH:         handler.NewNoteHandler(planStore, hub),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// PlanStore returns the plan store so the caller can load it on startup.
func (s *Server) PlanStore() *store.PlanStore {
	return s.planStore
}

// BackupManager returns the backup manager.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Plan document
	mux.HandleFunc("GET /api/plan", s.planH.Get)
	mux.HandleFunc("PUT /api/plan/budget", s.planH.UpdateTotalBudget)
	mux.HandleFunc("GET /api/plan/export", s.planH.Export)
	mux.HandleFunc("POST /api/plan/import", s.planH.Import)
	mux.HandleFunc("POST /api/plan/reset", s.planH.Reset)
	mux.HandleFunc("GET /api/plan/pdf/{section}", s.planH.PDF)

	// Budget categories and items
	mux.HandleFunc("POST /api/budget/categories", s.budgetH.CreateCategory)
	mux.HandleFunc("PUT /api/budget/categories/{id}", s.budgetH.UpdateCategory)
	mux.HandleFunc("DELETE /api/budget/categories/{id}", s.budgetH.DeleteCategory)
	mux.HandleFunc("POST /api/budget/categories/{category_id}/items", s.budgetH.CreateItem)
	mux.HandleFunc("PUT /api/budget/categories/{category_id}/items/{id}", s.budgetH.UpdateItem)
	mux.HandleFunc("DELETE /api/budget/categories/{category_id}/items/{id}", s.budgetH.DeleteItem)

	// Events
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("PUT /api/events/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.eventH.Delete)

	// Guests and groups
	mux.HandleFunc("POST /api/guests", s.guestH.Create)
	mux.HandleFunc("PUT /api/guests/{id}", s.guestH.Update)
	mux.HandleFunc("DELETE /api/guests/{id}", s.guestH.Delete)
	mux.HandleFunc("POST /api/guest-groups", s.guestH.CreateGroup)
	mux.HandleFunc("PUT /api/guest-groups/{id}", s.guestH.UpdateGroup)
	mux.HandleFunc("DELETE /api/guest-groups/{id}", s.guestH.DeleteGroup)

	// Vendors
	mux.HandleFunc("POST /api/vendors", s.vendorH.Create)
	mux.HandleFunc("PUT /api/vendors/{id}", s.vendorH.Update)
	mux.HandleFunc("DELETE /api/vendors/{id}", s.vendorH.Delete)

	// Todos
	mux.HandleFunc("POST /api/todos", s.todoH.Create)
	mux.HandleFunc("PUT /api/todos/{id}", s.todoH.Update)
	mux.HandleFunc("DELETE /api/todos/{id}", s.todoH.Delete)

	// Notes
	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("PUT /api/notes/{id}", s.noteH.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)

	// Backups
	mux.HandleFunc("GET /api/backup/status", s.planH.BackupStatus)
	mux.HandleFunc("POST /api/backup/run", s.planH.RunBackup)
	mux.HandleFunc("POST /api/backup/restore", s.planH.RestoreBackup)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
