package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/usecase/services"
)

func TestClientServiceCreateClientValidationError(t *testing.T) {
	svc := services.NewClientService(nil)

	_, err := svc.CreateClient(context.Background(), models.CreateClientRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty create client request")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation sentinel, got %v", err)
	}
}

func TestClientServiceCreateClientDuplicatePassport(t *testing.T) {
	repo := newFakeClientRepo()
	repo.createErr = domain.ErrDuplicateEntity
	svc := services.NewClientService(repo)

	resp, err := svc.CreateClient(context.Background(), models.CreateClientRequest{
		FullName:     "Petrov Petr Petrovich",
		PassportData: "4510 123456",
		PhoneNumber:  "+7-900-000-00-00",
	})
	if !errors.Is(err, domain.ErrDuplicateEntity) {
		t.Fatalf("expected duplicate sentinel, got %v", err)
	}
	if resp.Success {
		t.Fatal("expected error response for duplicate passport")
	}
}

func TestClientServiceCreateClientTrimsAndAssignsID(t *testing.T) {
	repo := newFakeClientRepo()
	svc := services.NewClientService(repo)

	resp, err := svc.CreateClient(context.Background(), models.CreateClientRequest{
		FullName:     "  Petrov Petr Petrovich ",
		PassportData: " 4510 123456 ",
		PhoneNumber:  " +7-900-000-00-00 ",
		Email:        " petrov@example.com ",
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if resp.Data == nil {
		t.Fatal("expected response data")
	}
	if resp.Data.ID != 1 {
		t.Fatalf("expected assigned id 1, got %d", resp.Data.ID)
	}
	if resp.Data.FullName != "Petrov Petr Petrovich" {
		t.Fatalf("expected trimmed full name, got %q", resp.Data.FullName)
	}
	if resp.Data.Email != "petrov@example.com" {
		t.Fatalf("expected trimmed email, got %q", resp.Data.Email)
	}
}

func TestClientServiceSearchClientsTrimsTerm(t *testing.T) {
	repo := newFakeClientRepo()
	svc := services.NewClientService(repo)

	if _, err := svc.SearchClients(context.Background(), "  Petrov  "); err != nil {
		t.Fatalf("expected search to succeed, got %v", err)
	}
	if repo.searched != "Petrov" {
		t.Fatalf("expected trimmed search term, got %q", repo.searched)
	}
}
