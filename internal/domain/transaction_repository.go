package domain

import "context"

type TransactionRepository interface {
	ListForDeposit(ctx context.Context, depositID int64) ([]Transaction, error)
}
