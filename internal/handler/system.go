package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/session"
	"github.com/mbeaulieu/courses/internal/store"
)

// SystemHandler exposes the storage-mode status and the explicit
// retry that re-probes the schema.
type SystemHandler struct {
	registry *session.Registry
	logger   *slog.Logger
}

func NewSystemHandler(reg *session.Registry, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{registry: reg, logger: logger}
}

func (h *SystemHandler) Mode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"mode": string(h.registry.Mode())})
}

// Retry is the only way to leave ephemeral mode: it re-runs the
// schema probe and reports the resulting mode.
func (h *SystemHandler) Retry(w http.ResponseWriter, r *http.Request) {
	mode, err := h.registry.Retry(r.Context())
	if err != nil {
		status := http.StatusServiceUnavailable
		msg := "store unavailable"
		if errors.Is(err, store.ErrSchemaAbsent) {
			msg = "schema still absent"
		}
		h.logger.Warn("retry probe failed", "error", err)
		writeJSON(w, status, map[string]string{"mode": string(mode), "error": msg})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mode": string(mode)})
}
