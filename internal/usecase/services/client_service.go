package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/logger"
)

type ClientService struct {
	clientRepo domain.ClientRepository
}

func NewClientService(clientRepo domain.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

func (s *ClientService) CreateClient(ctx context.Context, req models.CreateClientRequest) (commons.Response[models.ClientResponse], error) {
	logger.Info("client service create client request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("client service create client validation failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	client := domain.Client{
		FullName:     strings.TrimSpace(req.FullName),
		PassportData: strings.TrimSpace(req.PassportData),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		client.Email = &email
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		client.Address = &address
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntity) {
			return commons.ErrorResponse[models.ClientResponse]("duplicate entity", "a client with this passport already exists"), err
		}
		logger.Error("client service create client repository failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("failed to create client", "Unable to create client right now"), err
	}

	logger.Info("client service create client success", logger.Fields{
		"clientId": created.ID,
	})

	return commons.SuccessResponse("client created successfully", mapClientToResponse(created)), nil
}

func (s *ClientService) ListClients(ctx context.Context) (commons.Response[[]models.ClientResponse], error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		logger.Error("client service list clients failed", err, nil)
		return commons.ErrorResponse[[]models.ClientResponse]("failed to list clients", "Unable to list clients right now"), err
	}

	return commons.SuccessResponse("clients retrieved", mapClientsToResponses(clients)), nil
}

func (s *ClientService) SearchClients(ctx context.Context, term string) (commons.Response[[]models.ClientResponse], error) {
	logger.Info("client service search clients", logger.Fields{
		"termLength": len(term),
	})

	clients, err := s.clientRepo.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		logger.Error("client service search clients failed", err, nil)
		return commons.ErrorResponse[[]models.ClientResponse]("failed to search clients", "Unable to search clients right now"), err
	}

	return commons.SuccessResponse("clients retrieved", mapClientsToResponses(clients)), nil
}
