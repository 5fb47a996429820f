package api

import (
	"net/http"

	"github.com/grupo-nexus/planner/internal/api/respond"
	"github.com/grupo-nexus/planner/internal/services"
)

// AnalyticsHandler serves the placeholder analytics rollup.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(a *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: a}
}

// GetSummary handles GET /api/analytics/summary
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.analytics.Summarize(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, sum)
}
