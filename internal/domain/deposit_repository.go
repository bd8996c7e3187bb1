package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DepositRepository owns every deposit state change. The write methods that
// move a deposit between states also write the paired journal entry inside
// the same database transaction; callers never append journal entries
// themselves.
type DepositRepository interface {
	Open(ctx context.Context, deposit Deposit) (Deposit, error)
	Request(ctx context.Context, deposit Deposit) (Deposit, error)
	GetByID(ctx context.Context, id int64) (Deposit, error)
	Close(ctx context.Context, id int64, closeDate time.Time, payout decimal.Decimal) error
	Approve(ctx context.Context, id int64, openDate time.Time) error
	Reject(ctx context.Context, id int64) error
	ListByClient(ctx context.Context, clientID int64) ([]Deposit, error)
	ListPending(ctx context.Context) ([]Deposit, error)

	ActiveSumsByType(ctx context.Context) ([]DepositTypeAggregate, error)
	OpenTimeline(ctx context.Context) ([]TimelinePoint, error)
	ActiveAmounts(ctx context.Context) ([]decimal.Decimal, error)
}
