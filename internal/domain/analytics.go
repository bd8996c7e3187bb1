package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositTypeAggregate is one slice of the active-deposit distribution,
// grouped by the free-text deposit type label.
type DepositTypeAggregate struct {
	DepositType  string
	DepositCount int64
	TotalAmount  decimal.Decimal
}

// TimelinePoint is the total amount opened on a single date, across all
// deposit statuses.
type TimelinePoint struct {
	OpenDate    time.Time
	TotalAmount decimal.Decimal
}
