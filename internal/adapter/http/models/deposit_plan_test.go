package models_test

import (
	"strings"
	"testing"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
)

func TestSaveDepositPlanRequestRequiredFields(t *testing.T) {
	err := (models.SaveDepositPlanRequest{}).Validate()
	if err == nil {
		t.Fatal("expected validation error for empty request")
	}
	for _, want := range []string{"name is required", "interestRate is required", "minAmount is required", "durationMonths must be greater than zero"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got %q", want, err.Error())
		}
	}
}

func TestSaveDepositPlanRequestMaxBelowMin(t *testing.T) {
	req := models.SaveDepositPlanRequest{
		Name:           "Накопительный",
		InterestRate:   "5.5",
		MinAmount:      "1000",
		MaxAmount:      "500",
		DurationMonths: 12,
	}

	err := req.Validate()
	if err == nil {
		t.Fatal("expected validation error for max below min")
	}
	if !strings.Contains(err.Error(), "maxAmount cannot be less than minAmount") {
		t.Fatalf("expected bounds error, got %q", err.Error())
	}
}

func TestSaveDepositPlanRequestNegativeRate(t *testing.T) {
	req := models.SaveDepositPlanRequest{
		Name:           "Накопительный",
		InterestRate:   "-1",
		MinAmount:      "1000",
		DurationMonths: 12,
	}

	if err := req.Validate(); err == nil {
		t.Fatal("expected validation error for negative rate")
	}
}

func TestSaveDepositPlanRequestValid(t *testing.T) {
	req := models.SaveDepositPlanRequest{
		Name:                   "Накопительный",
		Description:            "Базовый накопительный вклад",
		InterestRate:           "5.5",
		MinAmount:              "1000",
		MaxAmount:              "1000000",
		DurationMonths:         12,
		EarlyWithdrawalPenalty: "0.5",
	}

	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
