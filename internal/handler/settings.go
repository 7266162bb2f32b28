package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/session"
)

type SettingsHandler struct {
	registry *session.Registry
	logger   *slog.Logger
}

func NewSettingsHandler(reg *session.Registry, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{registry: reg, logger: logger}
}

type settingsResponse struct {
	GroupByCategory bool `json:"group_by_category"`
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{GroupByCategory: sess.GroupByCategory(r.Context())})
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req settingsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := sess.SetGroupByCategory(r.Context(), req.GroupByCategory); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
