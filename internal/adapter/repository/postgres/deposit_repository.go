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

const openDescription = "deposit opened"
const closeDescription = "deposit closed with payout"

type DepositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

// Open inserts an active deposit and its opening journal entry as one
// transaction. Nothing is persisted if either write fails.
func (r *DepositRepository) Open(ctx context.Context, deposit domain.Deposit) (domain.Deposit, error) {
	logger.Info("deposit repository open", logger.Fields{
		"clientId":    deposit.ClientID,
		"depositType": deposit.DepositType,
		"amount":      deposit.Amount.String(),
	})

	deposit.Status = domain.DepositStatusActive
	created, err := r.insertWithJournal(ctx, deposit, true)
	if err != nil {
		logger.Error("deposit repository open failed", err, logger.Fields{
			"clientId": deposit.ClientID,
		})
		return domain.Deposit{}, err
	}

	logger.Info("deposit repository open success", logger.Fields{
		"depositId": created.ID,
	})

	return created, nil
}

// Request inserts a pending deposit. No journal entry is written until the
// request is approved.
func (r *DepositRepository) Request(ctx context.Context, deposit domain.Deposit) (domain.Deposit, error) {
	logger.Info("deposit repository request", logger.Fields{
		"clientId":    deposit.ClientID,
		"depositType": deposit.DepositType,
		"amount":      deposit.Amount.String(),
	})

	deposit.Status = domain.DepositStatusPending
	created, err := r.insertWithJournal(ctx, deposit, false)
	if err != nil {
		logger.Error("deposit repository request failed", err, logger.Fields{
			"clientId": deposit.ClientID,
		})
		return domain.Deposit{}, err
	}

	logger.Info("deposit repository request success", logger.Fields{
		"depositId": created.ID,
	})

	return created, nil
}

func (r *DepositRepository) insertWithJournal(ctx context.Context, deposit domain.Deposit, withOpenEntry bool) (domain.Deposit, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Deposit{}, fmt.Errorf("begin open deposit tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertQuery = `
INSERT INTO deposits (
	client_id,
	deposit_plan_id,
	deposit_type,
	amount,
	interest_rate,
	open_date,
	status
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	var planID sql.NullInt64
	if deposit.DepositPlanID != nil {
		planID = sql.NullInt64{Int64: *deposit.DepositPlanID, Valid: true}
	}

	var id int64
	if err := tx.QueryRowContext(
		ctx,
		insertQuery,
		deposit.ClientID,
		planID,
		deposit.DepositType,
		deposit.Amount,
		deposit.InterestRate,
		deposit.OpenDate,
		deposit.Status,
	).Scan(&id); err != nil {
		return domain.Deposit{}, fmt.Errorf("insert deposit: %w", err)
	}

	if withOpenEntry {
		if err := appendJournalEntry(ctx, tx, id, domain.TransactionTypeOpen, deposit.Amount, openDescription); err != nil {
			return domain.Deposit{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Deposit{}, fmt.Errorf("commit open deposit tx: %w", err)
	}

	deposit.ID = id
	return deposit, nil
}

const depositColumns = `id, client_id, deposit_plan_id, deposit_type, amount, interest_rate, open_date, close_date, status`

func (r *DepositRepository) GetByID(ctx context.Context, id int64) (domain.Deposit, error) {
	const query = `
SELECT ` + depositColumns + `
FROM deposits
WHERE id = $1`

	deposit, err := scanDeposit(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Deposit{}, fmt.Errorf("deposit %d: %w", id, domain.ErrRecordNotFound)
		}
		logger.Error("deposit repository get by id failed", err, logger.Fields{
			"depositId": id,
		})
		return domain.Deposit{}, fmt.Errorf("get deposit: %w", err)
	}

	return deposit, nil
}

// Close moves an active deposit to closed and writes the payout journal
// entry in the same transaction. The status update is conditional on the
// deposit still being active; of two racing closes exactly one sees an
// affected row, the other gets ErrInvalidStateTransition and writes
// nothing.
func (r *DepositRepository) Close(ctx context.Context, id int64, closeDate time.Time, payout decimal.Decimal) error {
	logger.Info("deposit repository close", logger.Fields{
		"depositId": id,
		"payout":    payout.String(),
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin close deposit tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
UPDATE deposits
SET status = 'closed',
    close_date = $2
WHERE id = $1
  AND status = 'active'`

	result, err := tx.ExecContext(ctx, updateQuery, id, closeDate)
	if err != nil {
		logger.Error("deposit repository close update failed", err, logger.Fields{
			"depositId": id,
		})
		return fmt.Errorf("close deposit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("close deposit rows affected: %w", err)
	}
	if rows == 0 {
		return r.transitionConflict(ctx, id, "close")
	}

	if err := appendJournalEntry(ctx, tx, id, domain.TransactionTypeClose, payout, closeDescription); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit close deposit tx: %w", err)
	}

	logger.Info("deposit repository close success", logger.Fields{
		"depositId": id,
	})

	return nil
}

// Approve promotes a pending deposit request to an active contract. The
// open date is stamped at approval time and the opening journal entry is
// written in the same transaction.
func (r *DepositRepository) Approve(ctx context.Context, id int64, openDate time.Time) error {
	logger.Info("deposit repository approve", logger.Fields{
		"depositId": id,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin approve deposit tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
UPDATE deposits
SET status = 'active',
    open_date = $2
WHERE id = $1
  AND status = 'pending'
RETURNING amount`

	var amount decimal.Decimal
	if err := tx.QueryRowContext(ctx, updateQuery, id, openDate).Scan(&amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.transitionConflict(ctx, id, "approve")
		}
		logger.Error("deposit repository approve update failed", err, logger.Fields{
			"depositId": id,
		})
		return fmt.Errorf("approve deposit: %w", err)
	}

	if err := appendJournalEntry(ctx, tx, id, domain.TransactionTypeOpen, amount, openDescription); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit approve deposit tx: %w", err)
	}

	logger.Info("deposit repository approve success", logger.Fields{
		"depositId": id,
	})

	return nil
}

// Reject marks a pending deposit request as rejected. Rejected requests
// never reach the journal.
func (r *DepositRepository) Reject(ctx context.Context, id int64) error {
	logger.Info("deposit repository reject", logger.Fields{
		"depositId": id,
	})

	const query = `
UPDATE deposits
SET status = 'rejected'
WHERE id = $1
  AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("deposit repository reject failed", err, logger.Fields{
			"depositId": id,
		})
		return fmt.Errorf("reject deposit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reject deposit rows affected: %w", err)
	}
	if rows == 0 {
		return r.transitionConflict(ctx, id, "reject")
	}

	logger.Info("deposit repository reject success", logger.Fields{
		"depositId": id,
	})

	return nil
}

// transitionConflict reports why a conditional status update matched no
// rows: either the deposit does not exist or it is in the wrong state.
func (r *DepositRepository) transitionConflict(ctx context.Context, id int64, operation string) error {
	var status domain.DepositStatus
	err := r.db.QueryRowContext(ctx, `SELECT status FROM deposits WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("deposit %d: %w", id, domain.ErrRecordNotFound)
	}
	if err != nil {
		return fmt.Errorf("inspect deposit status: %w", err)
	}

	logger.Info("deposit repository transition conflict", logger.Fields{
		"depositId": id,
		"operation": operation,
		"status":    status,
	})

	return fmt.Errorf("cannot %s deposit in status %q: %w", operation, status, domain.ErrInvalidStateTransition)
}

func (r *DepositRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Deposit, error) {
	const query = `
SELECT ` + depositColumns + `
FROM deposits
WHERE client_id = $1
ORDER BY open_date DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		logger.Error("deposit repository list by client failed", err, logger.Fields{
			"clientId": clientID,
		})
		return nil, fmt.Errorf("list client deposits: %w", err)
	}
	defer rows.Close()

	return collectDeposits(rows)
}

func (r *DepositRepository) ListPending(ctx context.Context) ([]domain.Deposit, error) {
	const query = `
SELECT ` + depositColumns + `
FROM deposits
WHERE status = 'pending'
ORDER BY open_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("deposit repository list pending failed", err, nil)
		return nil, fmt.Errorf("list pending deposits: %w", err)
	}
	defer rows.Close()

	return collectDeposits(rows)
}

func (r *DepositRepository) ActiveSumsByType(ctx context.Context) ([]domain.DepositTypeAggregate, error) {
	const query = `
SELECT deposit_type, COUNT(*), SUM(amount)
FROM deposits
WHERE status = 'active'
GROUP BY deposit_type`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("deposit repository active sums by type failed", err, nil)
		return nil, fmt.Errorf("active sums by type: %w", err)
	}
	defer rows.Close()

	aggregates := make([]domain.DepositTypeAggregate, 0)
	for rows.Next() {
		var agg domain.DepositTypeAggregate
		if err := rows.Scan(&agg.DepositType, &agg.DepositCount, &agg.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan type aggregate row: %w", err)
		}
		aggregates = append(aggregates, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate type aggregate rows: %w", err)
	}

	return aggregates, nil
}

func (r *DepositRepository) OpenTimeline(ctx context.Context) ([]domain.TimelinePoint, error) {
	const query = `
SELECT open_date, SUM(amount)
FROM deposits
GROUP BY open_date
ORDER BY open_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("deposit repository open timeline failed", err, nil)
		return nil, fmt.Errorf("open timeline: %w", err)
	}
	defer rows.Close()

	points := make([]domain.TimelinePoint, 0)
	for rows.Next() {
		var point domain.TimelinePoint
		if err := rows.Scan(&point.OpenDate, &point.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan timeline row: %w", err)
		}
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timeline rows: %w", err)
	}

	return points, nil
}

func (r *DepositRepository) ActiveAmounts(ctx context.Context) ([]decimal.Decimal, error) {
	const query = `
SELECT amount
FROM deposits
WHERE status = 'active'`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("deposit repository active amounts failed", err, nil)
		return nil, fmt.Errorf("active amounts: %w", err)
	}
	defer rows.Close()

	amounts := make([]decimal.Decimal, 0)
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return nil, fmt.Errorf("scan amount row: %w", err)
		}
		amounts = append(amounts, amount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate amount rows: %w", err)
	}

	return amounts, nil
}

func appendJournalEntry(ctx context.Context, tx *sql.Tx, depositID int64, entryType domain.TransactionType, amount decimal.Decimal, description string) error {
	const query = `
INSERT INTO transactions (deposit_id, type, amount, description)
VALUES ($1, $2, $3, $4)`

	if _, err := tx.ExecContext(ctx, query, depositID, entryType, amount, description); err != nil {
		return fmt.Errorf("append %s journal entry: %w", entryType, err)
	}

	return nil
}

func scanDeposit(row rowScanner) (domain.Deposit, error) {
	var deposit domain.Deposit
	var planID sql.NullInt64
	var closeDate sql.NullTime

	if err := row.Scan(
		&deposit.ID,
		&deposit.ClientID,
		&planID,
		&deposit.DepositType,
		&deposit.Amount,
		&deposit.InterestRate,
		&deposit.OpenDate,
		&closeDate,
		&deposit.Status,
	); err != nil {
		return domain.Deposit{}, err
	}

	if planID.Valid {
		deposit.DepositPlanID = &planID.Int64
	}
	if closeDate.Valid {
		value := closeDate.Time
		deposit.CloseDate = &value
	}

	return deposit, nil
}

func collectDeposits(rows *sql.Rows) ([]domain.Deposit, error) {
	deposits := make([]domain.Deposit, 0)
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit row: %w", err)
		}
		deposits = append(deposits, deposit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deposit rows: %w", err)
	}

	return deposits, nil
}
