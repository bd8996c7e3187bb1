package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/logger"
)

// TransactionRepository reads the append-only journal. Entries are only
// ever written by DepositRepository inside its state-change transactions.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListForDeposit(ctx context.Context, depositID int64) ([]domain.Transaction, error) {
	const query = `
SELECT id, deposit_id, type, amount, description, transaction_date
FROM transactions
WHERE deposit_id = $1
ORDER BY transaction_date DESC`

	rows, err := r.db.QueryContext(ctx, query, depositID)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{
			"depositId": depositID,
		})
		return nil, fmt.Errorf("list deposit transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var txn domain.Transaction
		var description sql.NullString
		if err := rows.Scan(
			&txn.ID,
			&txn.DepositID,
			&txn.Type,
			&txn.Amount,
			&description,
			&txn.TransactionDate,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		if description.Valid {
			txn.Description = description.String
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}

	return transactions, nil
}
