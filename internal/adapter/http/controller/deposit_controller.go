package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
)

type DepositService interface {
	OpenDeposit(ctx context.Context, req models.OpenDepositRequest) (commons.Response[models.DepositResponse], error)
	CloseDeposit(ctx context.Context, depositID int64, req models.CloseDepositRequest) (commons.Response[models.CloseDepositResponse], error)
	CalculateInterest(ctx context.Context, depositID int64, asOfDate string) (commons.Response[models.InterestResponse], error)
	GetClientDeposits(ctx context.Context, clientID int64) (commons.Response[[]models.DepositResponse], error)
	GetDepositTransactions(ctx context.Context, depositID int64) (commons.Response[[]models.TransactionResponse], error)
	ListPendingDeposits(ctx context.Context) (commons.Response[[]models.DepositResponse], error)
	ApproveDeposit(ctx context.Context, depositID int64) (commons.Response[struct{}], error)
	RejectDeposit(ctx context.Context, depositID int64) (commons.Response[struct{}], error)
}

type DepositController struct {
	service DepositService
}

func NewDepositController(service DepositService) *DepositController {
	return &DepositController{service: service}
}

func (c *DepositController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /deposits", wrap(c.openDeposit, authMiddleware))
	mux.Handle("POST /deposits/{id}/close", wrap(c.closeDeposit, authMiddleware))
	mux.Handle("GET /deposits/{id}/interest", wrap(c.calculateInterest, authMiddleware))
	mux.Handle("GET /deposits/{id}/transactions", wrap(c.depositTransactions, authMiddleware))
	mux.Handle("GET /clients/{id}/deposits", wrap(c.clientDeposits, authMiddleware))
	mux.Handle("GET /deposits/pending", wrap(c.pendingDeposits, authMiddleware))
	mux.Handle("POST /deposits/{id}/approve", wrap(c.approveDeposit, authMiddleware))
	mux.Handle("POST /deposits/{id}/reject", wrap(c.rejectDeposit, authMiddleware))
}

func (c *DepositController) openDeposit(w http.ResponseWriter, r *http.Request) {
	var req models.OpenDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.OpenDeposit(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *DepositController) closeDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CloseDepositResponse]("invalid deposit id"))
		return
	}

	// The close body is optional; an empty body means "as of today".
	var req models.CloseDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CloseDepositResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CloseDeposit(r.Context(), id, req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositController) calculateInterest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.InterestResponse]("invalid deposit id"))
		return
	}

	response, err := c.service.CalculateInterest(r.Context(), id, r.URL.Query().Get("asOf"))
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositController) depositTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.TransactionResponse]("invalid deposit id"))
		return
	}

	response, err := c.service.GetDepositTransactions(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositController) clientDeposits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.DepositResponse]("invalid client id"))
		return
	}

	response, err := c.service.GetClientDeposits(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositController) pendingDeposits(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.ListPendingDeposits(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositController) approveDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("invalid deposit id"))
		return
	}

	response, err := c.service.ApproveDeposit(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositController) rejectDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("invalid deposit id"))
		return
	}

	response, err := c.service.RejectDeposit(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
