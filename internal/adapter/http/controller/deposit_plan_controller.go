package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
)

type DepositPlanService interface {
	CreatePlan(ctx context.Context, req models.SaveDepositPlanRequest) (commons.Response[models.DepositPlanResponse], error)
	UpdatePlan(ctx context.Context, id int64, req models.SaveDepositPlanRequest) (commons.Response[models.DepositPlanResponse], error)
	DeletePlan(ctx context.Context, id int64) (commons.Response[struct{}], error)
	ListPlans(ctx context.Context) (commons.Response[[]models.DepositPlanResponse], error)
	ListActivePlans(ctx context.Context) (commons.Response[[]models.DepositPlanResponse], error)
	PlanStats(ctx context.Context, id int64) (commons.Response[models.DepositPlanStatsResponse], error)
}

type DepositPlanController struct {
	service DepositPlanService
}

func NewDepositPlanController(service DepositPlanService) *DepositPlanController {
	return &DepositPlanController{service: service}
}

func (c *DepositPlanController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /plans", wrap(c.createPlan, authMiddleware))
	mux.Handle("GET /plans", wrap(c.listPlans, authMiddleware))
	mux.Handle("PUT /plans/{id}", wrap(c.updatePlan, authMiddleware))
	mux.Handle("DELETE /plans/{id}", wrap(c.deletePlan, authMiddleware))
	mux.Handle("GET /plans/{id}/stats", wrap(c.planStats, authMiddleware))
}

func (c *DepositPlanController) createPlan(w http.ResponseWriter, r *http.Request) {
	var req models.SaveDepositPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositPlanResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CreatePlan(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *DepositPlanController) listPlans(w http.ResponseWriter, r *http.Request) {
	var response commons.Response[[]models.DepositPlanResponse]
	var err error

	if r.URL.Query().Get("active") == "true" {
		response, err = c.service.ListActivePlans(r.Context())
	} else {
		response, err = c.service.ListPlans(r.Context())
	}
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositPlanController) updatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositPlanResponse]("invalid plan id"))
		return
	}

	var req models.SaveDepositPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositPlanResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.UpdatePlan(r.Context(), id, req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositPlanController) deletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("invalid plan id"))
		return
	}

	response, err := c.service.DeletePlan(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositPlanController) planStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositPlanStatsResponse]("invalid plan id"))
		return
	}

	response, err := c.service.PlanStats(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
