package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asvarma/vivah/internal/model"
	"github.com/asvarma/vivah/internal/store"
	"github.com/asvarma/vivah/internal/websocket"
)

// maxImageBytes is the per-image ceiling for embedded note images. The
// store itself places no ceiling; this layer does, before bytes ever
// reach the document.
const maxImageBytes = 5 << 20

type NoteHandler struct {
	store *store.PlanStore
	hub   *websocket.Hub
}

func NewNoteHandler(s *store.PlanStore, hub *websocket.Hub) *NoteHandler {
	return &NoteHandler{store: s, hub: hub}
}

func (h *NoteHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type noteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// imageDecodedSize estimates the decoded byte size of a base64 data URI.
func imageDecodedSize(uri string) int {
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return len(uri)
	}
	return len(payload) / 4 * 3
}

func (r *noteRequest) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return "title is required"
	}
	for _, img := range r.Images {
		if imageDecodedSize(img) > maxImageBytes {
			return "image exceeds the 5 MB limit"
		}
	}
	return ""
}

func (r noteRequest) note() model.Note {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return model.Note{
		Title:   r.Title,
		Content: r.Content,
		Images:  images,
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	note := h.store.AddNote(r.Context(), req.note())
	h.broadcast(websocket.NewMessage("note", "created", note.ID, nil))
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	note := req.note()
	note.ID = id
	// Preserve the original creation timestamp.
	for _, n := range h.store.Snapshot().Notes {
		if n.ID == id {
			note.CreatedAt = n.CreatedAt
			break
		}
	}
	h.store.UpdateNote(r.Context(), note)
	h.broadcast(websocket.NewMessage("note", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.store.DeleteNote(r.Context(), id)
	h.broadcast(websocket.NewMessage("note", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
