package handler

import (
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/model"
	"github.com/mbeaulieu/courses/internal/session"
)

type NotificationHandler struct {
	registry *session.Registry
	logger   *slog.Logger
}

func NewNotificationHandler(reg *session.Registry, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{registry: reg, logger: logger}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifications := sess.Notifications()
	if notifications == nil {
		notifications = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sess.ClearNotifications()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
