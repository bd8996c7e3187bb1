package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositPlan struct {
	ID                     int64
	Name                   string
	Description            string
	InterestRate           decimal.Decimal
	MinAmount              decimal.Decimal
	MaxAmount              *decimal.Decimal
	DurationMonths         int
	EarlyWithdrawalPenalty decimal.Decimal
	IsActive               bool
	CreatedAt              time.Time
}

type DepositPlanStats struct {
	PlanID            int64
	TotalDeposits     int64
	ActiveDeposits    int64
	ClosedDeposits    int64
	TotalActiveAmount decimal.Decimal
	TotalAmount       decimal.Decimal
}
