package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
)

type PortalService interface {
	Register(ctx context.Context, req models.RegisterClientRequest) (commons.Response[models.ClientResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
}

type PortalDepositService interface {
	GetClientDepositsWithAccrual(ctx context.Context, clientID int64) (commons.Response[[]models.DepositResponse], error)
	RequestDeposit(ctx context.Context, clientID int64, req models.RequestDepositRequest) (commons.Response[models.DepositResponse], error)
}

type PortalPlanService interface {
	ListActivePlans(ctx context.Context) (commons.Response[[]models.DepositPlanResponse], error)
}

// PortalController is the client self-service surface. Register and login
// are public; everything else requires a session token, and the client id
// always comes from the token, never from the request.
type PortalController struct {
	portal   PortalService
	deposits PortalDepositService
	plans    PortalPlanService
}

func NewPortalController(portal PortalService, deposits PortalDepositService, plans PortalPlanService) *PortalController {
	return &PortalController{portal: portal, deposits: deposits, plans: plans}
}

func (c *PortalController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /portal/register", http.HandlerFunc(c.register))
	mux.Handle("POST /portal/login", http.HandlerFunc(c.login))
	mux.Handle("GET /portal/deposits", wrap(c.myDeposits, authMiddleware))
	mux.Handle("GET /portal/plans", wrap(c.activePlans, authMiddleware))
	mux.Handle("POST /portal/deposit-requests", wrap(c.requestDeposit, authMiddleware))
}

func (c *PortalController) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ClientResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.portal.Register(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *PortalController) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoginResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.portal.Login(r.Context(), req)
	if err != nil {
		// Credential failures surface as 401 regardless of kind.
		writeJSON(w, http.StatusUnauthorized, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *PortalController) myDeposits(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.ClientIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[[]models.DepositResponse]("unauthorized"))
		return
	}

	response, err := c.deposits.GetClientDepositsWithAccrual(r.Context(), clientID)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *PortalController) activePlans(w http.ResponseWriter, r *http.Request) {
	response, err := c.plans.ListActivePlans(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *PortalController) requestDeposit(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.ClientIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.DepositResponse]("unauthorized"))
		return
	}

	var req models.RequestDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.deposits.RequestDeposit(r.Context(), clientID, req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}
