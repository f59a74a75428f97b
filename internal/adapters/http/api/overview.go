// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/laureates/internal/app"
	"github.com/okian/laureates/pkg/logger"
)

// OverviewDependencies defines the interface for dataset summaries.
type OverviewDependencies interface {
	Overview(ctx context.Context) (service.Overview, error)
	Categories(ctx context.Context) []string
}

// OverviewHandler handles overview requests.
type OverviewHandler struct {
	deps   OverviewDependencies
	logger logger.Logger
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(deps OverviewDependencies, log logger.Logger) *OverviewHandler {
	return &OverviewHandler{deps: deps, logger: log}
}

// HandleOverview handles GET /api/overview requests.
func (h *OverviewHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_overview"
	if !requireGet(w, r) {
		return
	}
	res, err := h.deps.Overview(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CategoriesHandler serves the options of the category dropdown.
type CategoriesHandler struct {
	deps OverviewDependencies
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(deps OverviewDependencies) *CategoriesHandler {
	return &CategoriesHandler{deps: deps}
}

type categoriesResponse struct {
	Options []string `json:"options"`
}

// HandleCategories handles GET /api/categories requests.
func (h *CategoriesHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Options: h.deps.Categories(r.Context())})
}
