package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/logger"
)

// SeedDefaultPlans installs the default tariff plans with insert-if-absent
// semantics keyed by plan name. Re-running never duplicates rows and never
// touches plans an operator has since edited.
func SeedDefaultPlans(ctx context.Context, db *sql.DB, plans []domain.DepositPlan) error {
	logger.Info("store seed default plans", logger.Fields{
		"planCount": len(plans),
	})

	const query = `
INSERT INTO deposit_plans (
	name,
	description,
	interest_rate,
	min_amount,
	max_amount,
	duration_months,
	early_withdrawal_penalty,
	is_active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (name) DO NOTHING`

	for _, plan := range plans {
		var maxAmount any
		if plan.MaxAmount != nil {
			maxAmount = plan.MaxAmount.String()
		}

		if _, err := db.ExecContext(
			ctx,
			query,
			plan.Name,
			plan.Description,
			plan.InterestRate,
			plan.MinAmount,
			maxAmount,
			plan.DurationMonths,
			plan.EarlyWithdrawalPenalty,
			plan.IsActive,
		); err != nil {
			logger.Error("store seed default plans failed", err, logger.Fields{
				"plan": plan.Name,
			})
			return fmt.Errorf("seed default plan %q: %w", plan.Name, err)
		}
	}

	logger.Info("store seed default plans success", nil)
	return nil
}
