// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/laureates/internal/adapters/dataset"
	service "github.com/okian/laureates/internal/app"
	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/ranking"
	"github.com/okian/laureates/internal/domain/selector"
	"github.com/okian/laureates/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CountriesDependencies
	LifespanDependencies
	SelectDependencies
	OverviewDependencies
	HealthDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	countriesHandler  *CountriesHandler
	lifespanHandler   *LifespanHandler
	selectHandler     *SelectHandler
	overviewHandler   *OverviewHandler
	categoriesHandler *CategoriesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		healthHandler:     NewHealthHandler(deps),
		statsHandler:      NewStatsHandler(statsProvider),
		countriesHandler:  NewCountriesHandler(deps, log),
		lifespanHandler:   NewLifespanHandler(deps, log),
		selectHandler:     NewSelectHandler(deps, log),
		overviewHandler:   NewOverviewHandler(deps, log),
		categoriesHandler: NewCategoriesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	handle := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.Handle(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}
	handle("/healthz", "healthz", s.healthHandler.HandleHealth)
	handle("/stats", "stats", s.statsHandler.HandleStats)
	handle("/api/countries", "countries", s.countriesHandler.HandleCountries)
	handle("/api/counts", "counts", s.countriesHandler.HandleCounts)
	handle("/api/lifespan", "lifespan", s.lifespanHandler.HandleLifespan)
	handle("/api/select", "select", s.selectHandler.HandleSelect)
	handle("/api/overview", "overview", s.overviewHandler.HandleOverview)
	handle("/api/categories", "categories", s.categoriesHandler.HandleCategories)
	mux.Handle("/metrics", MetricsHandler())
}

// Ranking is the response of the count endpoints.
type Ranking = service.Ranking

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a service error onto a status and error code. Unknown
// errors are logged and reported as 500.
func writeFailure(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	status, code := classify(err)
	if status >= statusInternalError {
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, status, code, NewKind(op, ErrInternal))
		return
	}
	writeError(w, status, code, Wrap(op, err))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, selector.ErrNoData):
		return http.StatusNotFound, "no_data"
	case errors.Is(err, ranking.ErrInvalidN):
		return http.StatusBadRequest, "invalid_top"
	case errors.Is(err, dataset.ErrUnknownColumn):
		return http.StatusBadRequest, "unknown_column"
	case errors.Is(err, category.ErrUnknown):
		return http.StatusBadRequest, "unknown_category"
	case errors.Is(err, category.ErrUnknownGroup):
		return http.StatusBadRequest, "unknown_group"
	case errors.Is(err, selector.ErrInvalidStatistic), errors.Is(err, selector.ErrInvalidRank):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// parseTop reads the optional top parameter; absent means zero, which the
// service replaces with its default.
func parseTop(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("top"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ranking.ErrInvalidN
	}
	return n, nil
}

// requireGet answers anything but GET with 405.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	return false
}
