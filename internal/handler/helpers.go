package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/access"
	"github.com/mbeaulieu/courses/internal/auth"
	"github.com/mbeaulieu/courses/internal/session"
	"github.com/mbeaulieu/courses/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses.
// Validation problems carry their message through; everything else
// gets a generic body and a log line.
func writeDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *session.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, access.ErrForbidden):
		writeError(w, http.StatusForbidden, "Modification non autorisée")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// sessionFrom resolves the caller's session from the request context.
func sessionFrom(r *http.Request, reg *session.Registry) (*session.Session, bool) {
	return reg.Get(auth.Token(r.Context()))
}
