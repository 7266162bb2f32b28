package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/session"
)

type ItemHandler struct {
	registry *session.Registry
	logger   *slog.Logger
}

func NewItemHandler(reg *session.Registry, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{registry: reg, logger: logger}
}

// View returns the derived list view for the owner the session is
// currently looking at. The optional "search" query parameter filters
// items by name.
func (h *ItemHandler) View(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, sess.View(r.Context(), r.URL.Query().Get("search")))
}

type viewingRequest struct {
	UserID string `json:"user_id"`
}

// SetViewing switches which owner's list the session displays.
func (h *ItemHandler) SetViewing(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req viewingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := sess.SetViewing(r.Context(), req.UserID); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"viewing": req.UserID})
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in session.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, err := sess.AddItem(r.Context(), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in session.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, err := sess.UpdateItem(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	item, err := sess.ToggleItem(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := sess.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
