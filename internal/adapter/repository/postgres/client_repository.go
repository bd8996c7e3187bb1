package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/logger"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	logger.Info("client repository create", logger.Fields{
		"fullName": client.FullName,
	})

	const query = `
INSERT INTO clients (
	full_name,
	passport_data,
	phone_number,
	email,
	address,
	password_hash
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	var id int64
	var createdAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		client.FullName,
		client.PassportData,
		client.PhoneNumber,
		client.Email,
		client.Address,
		client.PasswordHash,
	).Scan(&id, &createdAt); err != nil {
		if isUniqueViolation(err) {
			logger.Info("client repository duplicate passport", logger.Fields{
				"fullName": client.FullName,
			})
			return domain.Client{}, fmt.Errorf("client with this passport already exists: %w", domain.ErrDuplicateEntity)
		}
		logger.Error("client repository create failed", err, logger.Fields{
			"fullName": client.FullName,
		})
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	client.ID = id
	client.CreatedAt = createdAt

	logger.Info("client repository create success", logger.Fields{
		"clientId": client.ID,
	})

	return client, nil
}

const clientColumns = `id, full_name, passport_data, phone_number, email, address, password_hash, created_at`

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	const query = `
SELECT ` + clientColumns + `
FROM clients
WHERE id = $1`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, fmt.Errorf("client %d: %w", id, domain.ErrRecordNotFound)
		}
		logger.Error("client repository get by id failed", err, logger.Fields{
			"clientId": id,
		})
		return domain.Client{}, fmt.Errorf("get client by id: %w", err)
	}

	return client, nil
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (domain.Client, error) {
	const query = `
SELECT ` + clientColumns + `
FROM clients
WHERE email = $1`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, fmt.Errorf("client by email: %w", domain.ErrRecordNotFound)
		}
		logger.Error("client repository get by email failed", err, nil)
		return domain.Client{}, fmt.Errorf("get client by email: %w", err)
	}

	return client, nil
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	const query = `
SELECT ` + clientColumns + `
FROM clients
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("client repository list failed", err, nil)
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func (r *ClientRepository) Search(ctx context.Context, term string) ([]domain.Client, error) {
	const query = `
SELECT ` + clientColumns + `
FROM clients
WHERE full_name ILIKE $1 OR passport_data ILIKE $1 OR phone_number ILIKE $1
ORDER BY full_name`

	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, query, pattern)
	if err != nil {
		logger.Error("client repository search failed", err, nil)
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var client domain.Client
	var email sql.NullString
	var address sql.NullString
	var passwordHash sql.NullString

	if err := row.Scan(
		&client.ID,
		&client.FullName,
		&client.PassportData,
		&client.PhoneNumber,
		&email,
		&address,
		&passwordHash,
		&client.CreatedAt,
	); err != nil {
		return domain.Client{}, err
	}

	if email.Valid {
		client.Email = &email.String
	}
	if address.Valid {
		client.Address = &address.String
	}
	if passwordHash.Valid {
		client.PasswordHash = &passwordHash.String
	}

	return client, nil
}

func collectClients(rows *sql.Rows) ([]domain.Client, error) {
	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client rows: %w", err)
	}

	return clients, nil
}
