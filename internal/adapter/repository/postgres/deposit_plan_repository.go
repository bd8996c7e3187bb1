package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/logger"
)

type DepositPlanRepository struct {
	db *sql.DB
}

func NewDepositPlanRepository(db *sql.DB) *DepositPlanRepository {
	return &DepositPlanRepository{db: db}
}

func (r *DepositPlanRepository) Create(ctx context.Context, plan domain.DepositPlan) (domain.DepositPlan, error) {
	logger.Info("plan repository create", logger.Fields{
		"name": plan.Name,
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
RETURNING id, created_at`

	var id int64
	var createdAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		plan.Name,
		plan.Description,
		plan.InterestRate,
		plan.MinAmount,
		nullableDecimal(plan.MaxAmount),
		plan.DurationMonths,
		plan.EarlyWithdrawalPenalty,
		plan.IsActive,
	).Scan(&id, &createdAt); err != nil {
		if isUniqueViolation(err) {
			logger.Info("plan repository duplicate name", logger.Fields{
				"name": plan.Name,
			})
			return domain.DepositPlan{}, fmt.Errorf("plan with this name already exists: %w", domain.ErrDuplicateEntity)
		}
		logger.Error("plan repository create failed", err, logger.Fields{
			"name": plan.Name,
		})
		return domain.DepositPlan{}, fmt.Errorf("create deposit plan: %w", err)
	}

	plan.ID = id
	plan.CreatedAt = createdAt

	logger.Info("plan repository create success", logger.Fields{
		"planId": plan.ID,
	})

	return plan, nil
}

func (r *DepositPlanRepository) Update(ctx context.Context, plan domain.DepositPlan) (domain.DepositPlan, error) {
	logger.Info("plan repository update", logger.Fields{
		"planId": plan.ID,
		"name":   plan.Name,
	})

	const query = `
UPDATE deposit_plans
SET name = $2,
    description = $3,
    interest_rate = $4,
    min_amount = $5,
    max_amount = $6,
    duration_months = $7,
    early_withdrawal_penalty = $8,
    is_active = $9
WHERE id = $1
RETURNING created_at`

	var createdAt time.Time
	if err := r.db.QueryRowContext(
		ctx,
		query,
		plan.ID,
		plan.Name,
		plan.Description,
		plan.InterestRate,
		plan.MinAmount,
		nullableDecimal(plan.MaxAmount),
		plan.DurationMonths,
		plan.EarlyWithdrawalPenalty,
		plan.IsActive,
	).Scan(&createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DepositPlan{}, fmt.Errorf("plan %d: %w", plan.ID, domain.ErrRecordNotFound)
		}
		if isUniqueViolation(err) {
			logger.Info("plan repository duplicate name", logger.Fields{
				"name": plan.Name,
			})
			return domain.DepositPlan{}, fmt.Errorf("plan with this name already exists: %w", domain.ErrDuplicateEntity)
		}
		logger.Error("plan repository update failed", err, logger.Fields{
			"planId": plan.ID,
		})
		return domain.DepositPlan{}, fmt.Errorf("update deposit plan: %w", err)
	}

	plan.CreatedAt = createdAt

	logger.Info("plan repository update success", logger.Fields{
		"planId": plan.ID,
	})

	return plan, nil
}

const planColumns = `id, name, description, interest_rate, min_amount, max_amount, duration_months, early_withdrawal_penalty, is_active, created_at`

func (r *DepositPlanRepository) GetByID(ctx context.Context, id int64) (domain.DepositPlan, error) {
	const query = `
SELECT ` + planColumns + `
FROM deposit_plans
WHERE id = $1`

	plan, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DepositPlan{}, fmt.Errorf("plan %d: %w", id, domain.ErrRecordNotFound)
		}
		logger.Error("plan repository get by id failed", err, logger.Fields{
			"planId": id,
		})
		return domain.DepositPlan{}, fmt.Errorf("get deposit plan: %w", err)
	}

	return plan, nil
}

func (r *DepositPlanRepository) List(ctx context.Context) ([]domain.DepositPlan, error) {
	const query = `
SELECT ` + planColumns + `
FROM deposit_plans
ORDER BY name`

	return r.queryPlans(ctx, query)
}

func (r *DepositPlanRepository) ListActive(ctx context.Context) ([]domain.DepositPlan, error) {
	const query = `
SELECT ` + planColumns + `
FROM deposit_plans
WHERE is_active = TRUE
ORDER BY name`

	return r.queryPlans(ctx, query)
}

// Delete removes a plan unless a pending or active deposit still references
// it. The reference check, the nullification of finished deposits' plan
// links, and the delete all run inside one transaction with the plan row
// locked, so a concurrently opened deposit cannot slip between the check
// and the delete.
func (r *DepositPlanRepository) Delete(ctx context.Context, id int64) error {
	logger.Info("plan repository delete", logger.Fields{
		"planId": id,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete plan tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var lockedID int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM deposit_plans WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("plan %d: %w", id, domain.ErrRecordNotFound)
		}
		return fmt.Errorf("lock deposit plan: %w", err)
	}

	var referencing int64
	const countQuery = `
SELECT COUNT(*)
FROM deposits
WHERE deposit_plan_id = $1
  AND status IN ('pending', 'active')`

	if err := tx.QueryRowContext(ctx, countQuery, id).Scan(&referencing); err != nil {
		return fmt.Errorf("count referencing deposits: %w", err)
	}

	if referencing > 0 {
		logger.Info("plan repository delete blocked", logger.Fields{
			"planId":              id,
			"referencingDeposits": referencing,
		})
		return fmt.Errorf("plan is referenced by %d open deposits: %w", referencing, domain.ErrInvalidStateTransition)
	}

	// Finished deposits keep their copied contract terms; drop the
	// back-reference so the plan row can go away cleanly.
	if _, err := tx.ExecContext(ctx, `UPDATE deposits SET deposit_plan_id = NULL WHERE deposit_plan_id = $1`, id); err != nil {
		return fmt.Errorf("detach finished deposits: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deposit_plans WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete deposit plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete plan tx: %w", err)
	}

	logger.Info("plan repository delete success", logger.Fields{
		"planId": id,
	})

	return nil
}

func (r *DepositPlanRepository) Stats(ctx context.Context, id int64) (domain.DepositPlanStats, error) {
	const query = `
SELECT
	COUNT(*) AS total_deposits,
	COUNT(CASE WHEN status = 'active' THEN 1 END) AS active_deposits,
	COUNT(CASE WHEN status = 'closed' THEN 1 END) AS closed_deposits,
	COALESCE(SUM(CASE WHEN status = 'active' THEN amount END), 0) AS total_active_amount,
	COALESCE(SUM(amount), 0) AS total_amount
FROM deposits
WHERE deposit_plan_id = $1`

	stats := domain.DepositPlanStats{PlanID: id}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&stats.TotalDeposits,
		&stats.ActiveDeposits,
		&stats.ClosedDeposits,
		&stats.TotalActiveAmount,
		&stats.TotalAmount,
	); err != nil {
		logger.Error("plan repository stats failed", err, logger.Fields{
			"planId": id,
		})
		return domain.DepositPlanStats{}, fmt.Errorf("deposit plan stats: %w", err)
	}

	return stats, nil
}

func (r *DepositPlanRepository) queryPlans(ctx context.Context, query string) ([]domain.DepositPlan, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("plan repository query failed", err, nil)
		return nil, fmt.Errorf("query deposit plans: %w", err)
	}
	defer rows.Close()

	plans := make([]domain.DepositPlan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deposit plan rows: %w", err)
	}

	return plans, nil
}

func scanPlan(row rowScanner) (domain.DepositPlan, error) {
	var plan domain.DepositPlan
	var description sql.NullString
	var maxAmount decimal.NullDecimal

	if err := row.Scan(
		&plan.ID,
		&plan.Name,
		&description,
		&plan.InterestRate,
		&plan.MinAmount,
		&maxAmount,
		&plan.DurationMonths,
		&plan.EarlyWithdrawalPenalty,
		&plan.IsActive,
		&plan.CreatedAt,
	); err != nil {
		return domain.DepositPlan{}, err
	}

	if description.Valid {
		plan.Description = description.String
	}
	if maxAmount.Valid {
		value := maxAmount.Decimal
		plan.MaxAmount = &value
	}

	return plan, nil
}

func nullableDecimal(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *value, Valid: true}
}
