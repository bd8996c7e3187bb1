package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type OpenDepositRequest struct {
	ClientID     int64  `json:"clientId"`
	PlanID       *int64 `json:"planId,omitempty"`
	DepositType  string `json:"depositType,omitempty"`
	Amount       string `json:"amount"`
	InterestRate string `json:"interestRate,omitempty"`
	OpenDate     string `json:"openDate,omitempty"`
}

func (r OpenDepositRequest) Validate() error {
	var errs []string

	if r.ClientID <= 0 {
		errs = append(errs, "clientId is required")
	}

	if amount := strings.TrimSpace(r.Amount); amount == "" {
		errs = append(errs, "amount is required")
	} else if parsed, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	} else if parsed.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if r.PlanID == nil {
		// Manual deposits carry their own label and rate.
		if strings.TrimSpace(r.DepositType) == "" {
			errs = append(errs, "depositType is required when planId is not set")
		}
		if rate := strings.TrimSpace(r.InterestRate); rate == "" {
			errs = append(errs, "interestRate is required when planId is not set")
		} else if parsed, err := decimal.NewFromString(rate); err != nil {
			errs = append(errs, "interestRate must be numeric")
		} else if parsed.IsNegative() {
			errs = append(errs, "interestRate cannot be negative")
		}
	} else if rate := strings.TrimSpace(r.InterestRate); rate != "" {
		errs = append(errs, "interestRate is copied from the plan and cannot be overridden")
	}

	if raw := strings.TrimSpace(r.OpenDate); raw != "" {
		if _, err := time.Parse(dateLayout, raw); err != nil {
			errs = append(errs, "openDate must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type DepositResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	PlanID          *int64 `json:"planId,omitempty"`
	DepositType     string `json:"depositType"`
	Amount          string `json:"amount"`
	InterestRate    string `json:"interestRate"`
	OpenDate        string `json:"openDate"`
	CloseDate       string `json:"closeDate,omitempty"`
	Status          string `json:"status"`
	AccruedInterest string `json:"accruedInterest,omitempty"`
}

type CloseDepositRequest struct {
	AsOfDate string `json:"asOfDate,omitempty"`
}

func (r CloseDepositRequest) Validate() error {
	if raw := strings.TrimSpace(r.AsOfDate); raw != "" {
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return errors.New("asOfDate must be in YYYY-MM-DD format")
		}
	}
	return nil
}

type CloseDepositResponse struct {
	DepositID int64  `json:"depositId"`
	Principal string `json:"principal"`
	Interest  string `json:"interest"`
	Payout    string `json:"payout"`
	CloseDate string `json:"closeDate"`
}

type InterestResponse struct {
	DepositID       int64  `json:"depositId"`
	AccruedInterest string `json:"accruedInterest"`
	AsOfDate        string `json:"asOfDate"`
}

type TransactionResponse struct {
	ID              int64  `json:"id"`
	DepositID       int64  `json:"depositId"`
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	Description     string `json:"description,omitempty"`
	TransactionDate string `json:"transactionDate"`
}

type RequestDepositRequest struct {
	PlanID int64  `json:"planId"`
	Amount string `json:"amount"`
}

func (r RequestDepositRequest) Validate() error {
	var errs []string

	if r.PlanID <= 0 {
		errs = append(errs, "planId is required")
	}

	if amount := strings.TrimSpace(r.Amount); amount == "" {
		errs = append(errs, "amount is required")
	} else if parsed, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	} else if parsed.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}
