// Package interest computes simple daily-prorated deposit interest.
// The model is deliberately non-compounding: a fixed 365-day year, whole
// elapsed days, result rounded to two decimal places.
package interest

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)
var daysPerYear = decimal.NewFromInt(365)

// Accrued returns the interest earned by principal at annualRatePercent
// between openDate and asOf: principal * rate/100 * days/365, rounded
// half-up to 2 decimal places.
func Accrued(principal, annualRatePercent decimal.Decimal, openDate, asOf time.Time) decimal.Decimal {
	days := ElapsedDays(openDate, asOf)
	return ForDays(principal, annualRatePercent, days)
}

// ForDays is the day-count form of Accrued.
func ForDays(principal, annualRatePercent decimal.Decimal, days int64) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero.Round(2)
	}

	return principal.
		Mul(annualRatePercent).
		Mul(decimal.NewFromInt(days)).
		Div(hundred).
		Div(daysPerYear).
		Round(2)
}

// ElapsedDays returns the whole-day difference between openDate and asOf,
// floored and never negative. Both arguments are truncated to calendar
// dates before differencing, so intra-day times never count as a day.
func ElapsedDays(openDate, asOf time.Time) int64 {
	open := midnightUTC(openDate)
	eval := midnightUTC(asOf)
	if eval.Before(open) {
		return 0
	}

	return int64(eval.Sub(open).Hours() / 24)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
