// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/laureates/pkg/metrics"
)

// HealthDependencies exposes what the health check reports.
type HealthDependencies interface {
	DatasetID() string
	Records() int
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status    string `json:"status"`
	Records   int    `json:"records"`
	DatasetID string `json:"dataset_id"`
}

// HandleHealth handles GET /healthz requests. The process only serves once
// the dataset has loaded, so a response always reports ok.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Records:   h.deps.Records(),
		DatasetID: h.deps.DatasetID(),
	})
}

// MetricsHandler serves the custom Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
