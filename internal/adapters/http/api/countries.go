// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/laureates/pkg/logger"
)

// CountriesDependencies defines the interface for frequency rankings.
type CountriesDependencies interface {
	TopCountries(ctx context.Context, n int) (Ranking, error)
	TopValues(ctx context.Context, column string, n int) (Ranking, error)
}

// CountriesHandler handles the count chart requests.
type CountriesHandler struct {
	deps   CountriesDependencies
	logger logger.Logger
}

// NewCountriesHandler creates a new countries handler.
func NewCountriesHandler(deps CountriesDependencies, log logger.Logger) *CountriesHandler {
	return &CountriesHandler{deps: deps, logger: log}
}

// HandleCountries handles GET /api/countries?top=N requests.
func (h *CountriesHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_countries"
	if !requireGet(w, r) {
		return
	}
	n, err := parseTop(r)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, err)
		return
	}
	res, err := h.deps.TopCountries(r.Context(), n)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleCounts handles GET /api/counts?column=C&top=N requests.
func (h *CountriesHandler) HandleCounts(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_counts"
	if !requireGet(w, r) {
		return
	}
	column := r.URL.Query().Get("column")
	if column == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errMissing("column")))
		return
	}
	n, err := parseTop(r)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, err)
		return
	}
	res, err := h.deps.TopValues(r.Context(), column, n)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
