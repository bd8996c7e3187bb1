package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositStatus string

const (
	DepositStatusPending  DepositStatus = "pending"
	DepositStatusActive   DepositStatus = "active"
	DepositStatusClosed   DepositStatus = "closed"
	DepositStatusRejected DepositStatus = "rejected"
)

type Deposit struct {
	ID            int64
	ClientID      int64
	DepositPlanID *int64
	DepositType   string
	Amount        decimal.Decimal
	InterestRate  decimal.Decimal
	OpenDate      time.Time
	CloseDate     *time.Time
	Status        DepositStatus
}
