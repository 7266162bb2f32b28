package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/handler"
	"github.com/mbeaulieu/courses/internal/middleware"
	"github.com/mbeaulieu/courses/internal/session"
	ws "github.com/mbeaulieu/courses/internal/websocket"
)

type Server struct {
	registry      *session.Registry
	hub           *ws.Hub
	authH         *handler.AuthHandler
	itemH         *handler.ItemHandler
	categoryH     *handler.CategoryHandler
	settingsH     *handler.SettingsHandler
	suggestionH   *handler.SuggestionHandler
	notificationH *handler.NotificationHandler
	systemH       *handler.SystemHandler
	logger        *slog.Logger
}

func New(registry *session.Registry, hub *ws.Hub, logger *slog.Logger) *Server {
	return &Server{
		registry:      registry,
		hub:           hub,
		authH:         handler.NewAuthHandler(registry, logger.With("component", "auth")),
		itemH:         handler.NewItemHandler(registry, logger.With("component", "item")),
		categoryH:     handler.NewCategoryHandler(registry, logger.With("component", "category")),
		settingsH:     handler.NewSettingsHandler(registry, logger.With("component", "settings")),
		suggestionH:   handler.NewSuggestionHandler(registry, logger.With("component", "suggestion")),
		notificationH: handler.NewNotificationHandler(registry, logger.With("component", "notification")),
		systemH:       handler.NewSystemHandler(registry, logger.With("component", "system")),
		logger:        logger,
	}
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no session required)
	outerMux.HandleFunc("POST /api/login", s.authH.Login)
	outerMux.HandleFunc("GET /api/mode", s.systemH.Mode)
	outerMux.HandleFunc("POST /api/retry", s.systemH.Retry)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireSession middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	sessionMiddleware := middleware.RequireSession(s.registry)
	outerMux.Handle("/", sessionMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)
	mux.HandleFunc("GET /api/users", s.authH.ListUsers)
	mux.HandleFunc("POST /api/password/change", s.authH.ChangePassword)
	mux.HandleFunc("POST /api/password/reset", s.authH.ResetPassword)

	// List view + item mutations
	mux.HandleFunc("GET /api/view", s.itemH.View)
	mux.HandleFunc("PUT /api/view/owner", s.itemH.SetViewing)
	mux.HandleFunc("POST /api/items", s.itemH.Create)
	mux.HandleFunc("PUT /api/items/{id}", s.itemH.Update)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)
	mux.HandleFunc("POST /api/items/{id}/toggle", s.itemH.Toggle)

	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)

	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PUT /api/settings", s.settingsH.Update)

	mux.HandleFunc("GET /api/suggestions", s.suggestionH.List)

	mux.HandleFunc("GET /api/notifications", s.notificationH.List)
	mux.HandleFunc("DELETE /api/notifications", s.notificationH.Clear)

	// Live mutation events for other sessions viewing shared lists
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "mode": string(s.registry.Mode())})
}
