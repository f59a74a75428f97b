// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/selector"
	"github.com/okian/laureates/pkg/logger"
)

// SelectDependencies defines the interface for the category selector.
type SelectDependencies interface {
	SelectCategory(ctx context.Context, group, statistic, rank string) (selector.Result, error)
}

// SelectHandler handles category selection requests.
type SelectHandler struct {
	deps   SelectDependencies
	logger logger.Logger
}

// NewSelectHandler creates a new select handler.
func NewSelectHandler(deps SelectDependencies, log logger.Logger) *SelectHandler {
	return &SelectHandler{deps: deps, logger: log}
}

// HandleSelect handles GET /api/select?group=G&statistic=S&rank=R requests.
// The group defaults to every category; statistic and rank are required.
// A group without any ages answers 404 with code no_data.
func (h *SelectHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_select"
	if !requireGet(w, r) {
		return
	}
	q := r.URL.Query()
	group := q.Get("group")
	if group == "" {
		group = category.GroupAll
	}
	for _, name := range []string{"statistic", "rank"} {
		if q.Get(name) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errMissing(name)))
			return
		}
	}
	res, err := h.deps.SelectCategory(r.Context(), group, q.Get("statistic"), q.Get("rank"))
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
