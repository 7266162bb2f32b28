package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/access"
	"github.com/mbeaulieu/courses/internal/auth"
	"github.com/mbeaulieu/courses/internal/model"
	"github.com/mbeaulieu/courses/internal/session"
)

type AuthHandler struct {
	registry *session.Registry
	logger   *slog.Logger
}

func NewAuthHandler(reg *session.Registry, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{registry: reg, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Nom d'utilisateur et mot de passe requis")
		return
	}

	sess, err := h.registry.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusUnauthorized, verr.Msg)
			return
		}
		writeDomainError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "courses_session",
		Value:    sess.Token(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{Token: sess.Token(), User: sess.User()})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.registry.Logout(auth.Token(r.Context()))

	http.SetCookie(w, &http.Cookie{
		Name:     "courses_session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, sess.User())
}

// ListUsers returns the roster. The viewing selector only offers
// non-admin users, so owners come flagged.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.registry.Gateway().Users(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	type userEntry struct {
		model.User
		Viewable bool `json:"viewable"`
	}
	entries := make([]userEntry, 0, len(users))
	owners := access.ViewableOwners(users)
	for _, u := range users {
		viewable := false
		for _, o := range owners {
			if o.ID == u.ID {
				viewable = true
				break
			}
		}
		entries = append(entries, userEntry{User: u, Viewable: viewable})
	}
	writeJSON(w, http.StatusOK, entries)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := sess.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type resetPasswordRequest struct {
	UserID      string `json:"user_id"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := sess.ResetPassword(r.Context(), req.UserID, req.NewPassword); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
