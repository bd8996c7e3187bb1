package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/logger"
	"github.com/api-sage/deposit-ledger/internal/security/auth"
)

// PortalService handles self-service registration and login for clients.
// The ledger core never sees credentials; it only ever receives the client
// id resolved from a validated session token.
type PortalService struct {
	clientRepo domain.ClientRepository
	tokens     *auth.TokenManager
}

func NewPortalService(clientRepo domain.ClientRepository, tokens *auth.TokenManager) *PortalService {
	return &PortalService{clientRepo: clientRepo, tokens: tokens}
}

func (s *PortalService) Register(ctx context.Context, req models.RegisterClientRequest) (commons.Response[models.ClientResponse], error) {
	logger.Info("portal service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("portal service register validation failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.Password)), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("portal service register hash failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("failed to register", "failed to secure password"), err
	}

	email := strings.TrimSpace(req.Email)
	passwordHash := string(hash)
	client := domain.Client{
		FullName:     strings.TrimSpace(req.FullName),
		PassportData: strings.TrimSpace(req.PassportData),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Email:        &email,
		PasswordHash: &passwordHash,
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		client.Address = &address
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntity) {
			return commons.ErrorResponse[models.ClientResponse]("duplicate entity", "a client with this passport already exists"), err
		}
		logger.Error("portal service register repository failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("failed to register", "Unable to register right now"), err
	}

	logger.Info("portal service register success", logger.Fields{
		"clientId": created.ID,
	})

	return commons.SuccessResponse("registration successful", mapClientToResponse(created)), nil
}

func (s *PortalService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("portal service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	client, err := s.clientRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoginResponse]("invalid credentials", "email or password is incorrect"),
				fmt.Errorf("login: %w", domain.ErrRecordNotFound)
		}
		logger.Error("portal service login lookup failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	if client.PasswordHash == nil {
		return commons.ErrorResponse[models.LoginResponse]("invalid credentials", "email or password is incorrect"),
			fmt.Errorf("login: client has no portal access: %w", domain.ErrRecordNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*client.PasswordHash), []byte(req.Password)); err != nil {
		logger.Info("portal service login rejected", logger.Fields{
			"clientId": client.ID,
		})
		return commons.ErrorResponse[models.LoginResponse]("invalid credentials", "email or password is incorrect"),
			fmt.Errorf("login: password mismatch: %w", domain.ErrRecordNotFound)
	}

	token, err := s.tokens.GenerateToken(client.ID, client.FullName)
	if err != nil {
		logger.Error("portal service login token failed", err, logger.Fields{
			"clientId": client.ID,
		})
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	logger.Info("portal service login success", logger.Fields{
		"clientId": client.ID,
	})

	response := models.LoginResponse{
		Token:    token,
		ClientID: client.ID,
		FullName: client.FullName,
	}

	return commons.SuccessResponse("login successful", response), nil
}
