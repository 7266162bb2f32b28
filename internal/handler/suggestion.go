package handler

import (
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/model"
	"github.com/mbeaulieu/courses/internal/session"
)

type SuggestionHandler struct {
	registry *session.Registry
	logger   *slog.Logger
}

func NewSuggestionHandler(reg *session.Registry, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{registry: reg, logger: logger}
}

// List ranks the acting user's product history against the "q" query
// parameter. Fewer than two typed characters yields an empty list, as
// does ephemeral mode.
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	suggestions, err := sess.Suggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if suggestions == nil {
		suggestions = []model.ProductHistory{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}
