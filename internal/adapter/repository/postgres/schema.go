package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/deposit-ledger/internal/logger"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
	id BIGSERIAL PRIMARY KEY,
	full_name VARCHAR(100) NOT NULL,
	passport_data VARCHAR(20) UNIQUE NOT NULL,
	phone_number VARCHAR(15),
	email VARCHAR(100),
	address TEXT,
	password_hash VARCHAR(255),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS deposit_plans (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL UNIQUE,
	description TEXT,
	interest_rate DECIMAL(5,2) NOT NULL,
	min_amount DECIMAL(15,2) NOT NULL DEFAULT 0,
	max_amount DECIMAL(15,2),
	duration_months INTEGER NOT NULL,
	early_withdrawal_penalty DECIMAL(5,2) NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT valid_interest_rate CHECK (interest_rate >= 0),
	CONSTRAINT valid_min_amount CHECK (min_amount >= 0),
	CONSTRAINT valid_duration CHECK (duration_months > 0),
	CONSTRAINT valid_penalty CHECK (early_withdrawal_penalty >= 0)
)`,
	`CREATE TABLE IF NOT EXISTS deposits (
	id BIGSERIAL PRIMARY KEY,
	client_id BIGINT NOT NULL REFERENCES clients(id),
	deposit_plan_id BIGINT REFERENCES deposit_plans(id),
	deposit_type VARCHAR(50) NOT NULL,
	amount DECIMAL(15,2) NOT NULL,
	interest_rate DECIMAL(5,2) NOT NULL,
	open_date DATE NOT NULL,
	close_date DATE,
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	CONSTRAINT valid_amount CHECK (amount >= 0),
	CONSTRAINT valid_deposit_interest_rate CHECK (interest_rate >= 0),
	CONSTRAINT valid_status CHECK (status IN ('pending', 'active', 'closed', 'rejected')),
	CONSTRAINT valid_close_date CHECK (
		(status = 'closed' AND close_date IS NOT NULL AND close_date >= open_date)
		OR (status <> 'closed' AND close_date IS NULL)
	)
)`,
	`CREATE TABLE IF NOT EXISTS transactions (
	id BIGSERIAL PRIMARY KEY,
	deposit_id BIGINT NOT NULL REFERENCES deposits(id),
	type VARCHAR(20) NOT NULL,
	amount DECIMAL(15,2) NOT NULL,
	description TEXT,
	transaction_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_deposits_client_id ON deposits(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deposits_status ON deposits(status)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_deposit_id ON transactions(deposit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_deposit_plans_active ON deposit_plans(is_active)`,
}

// EnsureSchema creates the ledger tables and supporting indexes if they do
// not exist yet. Safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	logger.Info("store ensure schema", nil)

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("store ensure schema failed", err, nil)
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	logger.Info("store ensure schema success", nil)
	return nil
}
