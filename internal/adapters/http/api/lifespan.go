// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/laureates/internal/app"
	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/pkg/logger"
)

// LifespanDependencies defines the interface for lifespan boxplots.
type LifespanDependencies interface {
	Lifespans(ctx context.Context, selection string) (service.Lifespans, error)
}

// LifespanHandler handles lifespan requests.
type LifespanHandler struct {
	deps   LifespanDependencies
	logger logger.Logger
}

// NewLifespanHandler creates a new lifespan handler.
func NewLifespanHandler(deps LifespanDependencies, log logger.Logger) *LifespanHandler {
	return &LifespanHandler{deps: deps, logger: log}
}

// HandleLifespan handles GET /api/lifespan?category=C requests. A missing
// category means every category.
func (h *LifespanHandler) HandleLifespan(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_lifespan"
	if !requireGet(w, r) {
		return
	}
	selection := r.URL.Query().Get("category")
	if selection == "" {
		selection = category.AllLabel
	}
	res, err := h.deps.Lifespans(r.Context(), selection)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
