package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type SaveDepositPlanRequest struct {
	Name                   string `json:"name"`
	Description            string `json:"description,omitempty"`
	InterestRate           string `json:"interestRate"`
	MinAmount              string `json:"minAmount"`
	MaxAmount              string `json:"maxAmount,omitempty"`
	DurationMonths         int    `json:"durationMonths"`
	EarlyWithdrawalPenalty string `json:"earlyWithdrawalPenalty,omitempty"`
	IsActive               *bool  `json:"isActive,omitempty"`
}

func (r SaveDepositPlanRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}

	if rate := strings.TrimSpace(r.InterestRate); rate == "" {
		errs = append(errs, "interestRate is required")
	} else if parsed, err := decimal.NewFromString(rate); err != nil {
		errs = append(errs, "interestRate must be numeric")
	} else if parsed.IsNegative() {
		errs = append(errs, "interestRate cannot be negative")
	}

	minAmount := decimal.Zero
	if raw := strings.TrimSpace(r.MinAmount); raw == "" {
		errs = append(errs, "minAmount is required")
	} else if parsed, err := decimal.NewFromString(raw); err != nil {
		errs = append(errs, "minAmount must be numeric")
	} else if parsed.IsNegative() {
		errs = append(errs, "minAmount cannot be negative")
	} else {
		minAmount = parsed
	}

	if raw := strings.TrimSpace(r.MaxAmount); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err != nil {
			errs = append(errs, "maxAmount must be numeric")
		} else if parsed.LessThan(minAmount) {
			errs = append(errs, "maxAmount cannot be less than minAmount")
		}
	}

	if r.DurationMonths <= 0 {
		errs = append(errs, "durationMonths must be greater than zero")
	}

	if raw := strings.TrimSpace(r.EarlyWithdrawalPenalty); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err != nil {
			errs = append(errs, "earlyWithdrawalPenalty must be numeric")
		} else if parsed.IsNegative() {
			errs = append(errs, "earlyWithdrawalPenalty cannot be negative")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type DepositPlanResponse struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"name"`
	Description            string `json:"description,omitempty"`
	InterestRate           string `json:"interestRate"`
	MinAmount              string `json:"minAmount"`
	MaxAmount              string `json:"maxAmount,omitempty"`
	DurationMonths         int    `json:"durationMonths"`
	EarlyWithdrawalPenalty string `json:"earlyWithdrawalPenalty"`
	IsActive               bool   `json:"isActive"`
	CreatedAt              string `json:"createdAt"`
}

type DepositPlanStatsResponse struct {
	PlanID            int64  `json:"planId"`
	TotalDeposits     int64  `json:"totalDeposits"`
	ActiveDeposits    int64  `json:"activeDeposits"`
	ClosedDeposits    int64  `json:"closedDeposits"`
	TotalActiveAmount string `json:"totalActiveAmount"`
	TotalAmount       string `json:"totalAmount"`
}
