package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
)

type ClientService interface {
	CreateClient(ctx context.Context, req models.CreateClientRequest) (commons.Response[models.ClientResponse], error)
	ListClients(ctx context.Context) (commons.Response[[]models.ClientResponse], error)
	SearchClients(ctx context.Context, term string) (commons.Response[[]models.ClientResponse], error)
}

type ClientController struct {
	service ClientService
}

func NewClientController(service ClientService) *ClientController {
	return &ClientController{service: service}
}

func (c *ClientController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /clients", wrap(c.createClient, authMiddleware))
	mux.Handle("GET /clients", wrap(c.listClients, authMiddleware))
}

func (c *ClientController) createClient(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ClientResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CreateClient(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// listClients serves both the full listing and substring search via the
// optional ?search= query parameter.
func (c *ClientController) listClients(w http.ResponseWriter, r *http.Request) {
	if term := r.URL.Query().Get("search"); term != "" {
		response, err := c.service.SearchClients(r.Context(), term)
		if err != nil {
			writeJSON(w, statusForError(err), response)
			return
		}
		writeJSON(w, http.StatusOK, response)
		return
	}

	response, err := c.service.ListClients(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
