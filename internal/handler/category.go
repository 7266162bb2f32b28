package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mbeaulieu/courses/internal/model"
	"github.com/mbeaulieu/courses/internal/session"
)

type CategoryHandler struct {
	registry *session.Registry
	logger   *slog.Logger
}

func NewCategoryHandler(reg *session.Registry, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{registry: reg, logger: logger}
}

type categoryListResponse struct {
	Builtin []string               `json:"builtin"`
	Custom  []model.CustomCategory `json:"custom"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	custom, err := h.registry.Gateway().Categories(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if custom == nil {
		custom = []model.CustomCategory{}
	}
	writeJSON(w, http.StatusOK, categoryListResponse{
		Builtin: model.BuiltinCategories,
		Custom:  custom,
	})
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r, h.registry)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	c, err := sess.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
