package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeOpen  TransactionType = "open"
	TransactionTypeClose TransactionType = "close"
)

type Transaction struct {
	ID              int64
	DepositID       int64
	Type            TransactionType
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
}
