package controller

import (
	"context"
	"net/http"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
)

type AnalyticsService interface {
	DepositsByType(ctx context.Context) (commons.Response[[]models.DepositTypeAggregateResponse], error)
	DepositsTimeline(ctx context.Context) (commons.Response[[]models.TimelinePointResponse], error)
	ActiveAmounts(ctx context.Context) (commons.Response[[]string], error)
	Dashboard(ctx context.Context) (commons.Response[models.DashboardResponse], error)
}

type AnalyticsController struct {
	service AnalyticsService
}

func NewAnalyticsController(service AnalyticsService) *AnalyticsController {
	return &AnalyticsController{service: service}
}

func (c *AnalyticsController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("GET /analytics/by-type", wrap(c.byType, authMiddleware))
	mux.Handle("GET /analytics/timeline", wrap(c.timeline, authMiddleware))
	mux.Handle("GET /analytics/active-amounts", wrap(c.activeAmounts, authMiddleware))
	mux.Handle("GET /analytics/dashboard", wrap(c.dashboard, authMiddleware))
}

func (c *AnalyticsController) byType(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.DepositsByType(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AnalyticsController) timeline(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.DepositsTimeline(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AnalyticsController) activeAmounts(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.ActiveAmounts(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AnalyticsController) dashboard(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Dashboard(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
