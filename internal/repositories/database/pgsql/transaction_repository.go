package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	"github.com/spendlens/spendlens_backend/internal/middleware"
	"github.com/spendlens/spendlens_backend/internal/models"
)

// PgxTransactionRepository implements the transaction repository facade
// against PostgreSQL using pgx.
type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// NewPgxTransactionRepository creates a new transaction repository.
func NewPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

func toTransactionModel(txn domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: txn.TransactionID,
		OwnerID:       txn.OwnerID,
		Kind:          string(txn.Kind),
		Amount:        txn.Amount,
		Category:      txn.Category,
		Description:   txn.Description,
		Date:          txn.Date,
		PaymentMethod: txn.PaymentMethod,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

func toTransactionDomain(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OwnerID:       m.OwnerID,
		Kind:          domain.TransactionKind(m.Kind),
		Amount:        m.Amount,
		Category:      m.Category,
		Description:   m.Description,
		Date:          m.Date,
		PaymentMethod: m.PaymentMethod,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// CreateTransaction inserts a new transaction row and returns the
// store-assigned ID.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	m := toTransactionModel(txn)
	m.TransactionID = uuid.NewString()
	now := time.Now()
	m.CreatedAt = now
	m.LastUpdatedAt = now

	query := `
		INSERT INTO transactions (transaction_id, owner_id, kind, amount, category, description, txn_date, payment_method, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		m.TransactionID, m.OwnerID, m.Kind, m.Amount, m.Category,
		m.Description, m.Date, m.PaymentMethod, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		logger.Error("Failed to insert transaction", slog.String("ownerID", m.OwnerID), slog.String("error", err.Error()))
		return "", translateWriteError(err, "failed to create transaction")
	}
	return m.TransactionID, nil
}

// FindTransactionsByOwner retrieves every transaction owned by ownerID,
// newest date first.
func (r *PgxTransactionRepository) FindTransactionsByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	query := `
		SELECT transaction_id, owner_id, kind, amount, category, description, txn_date, payment_method, created_at, last_updated_at
		FROM transactions
		WHERE owner_id = $1
		ORDER BY txn_date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		logger.Error("Failed to query transactions", slog.String("ownerID", ownerID), slog.String("error", err.Error()))
		return nil, translateError(err, "failed to list transactions")
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID, &m.OwnerID, &m.Kind, &m.Amount, &m.Category,
			&m.Description, &m.Date, &m.PaymentMethod, &m.CreatedAt, &m.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toTransactionDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to read transaction rows")
	}
	return txns, nil
}

// FindTransactionByID retrieves a single transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, owner_id, kind, amount, category, description, txn_date, payment_method, created_at, last_updated_at
		FROM transactions
		WHERE transaction_id = $1`

	var m models.Transaction
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID, &m.OwnerID, &m.Kind, &m.Amount, &m.Category,
		&m.Description, &m.Date, &m.PaymentMethod, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return nil, translateError(err, "failed to find transaction")
	}
	txn := toTransactionDomain(m)
	return &txn, nil
}

// UpdateTransaction replaces the stored record for txn.TransactionID.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	m := toTransactionModel(txn)
	query := `
		UPDATE transactions
		SET kind = $2, amount = $3, category = $4, description = $5, txn_date = $6, payment_method = $7, last_updated_at = $8
		WHERE transaction_id = $1 AND owner_id = $9`

	tag, err := r.pool.Exec(ctx, query,
		m.TransactionID, m.Kind, m.Amount, m.Category, m.Description,
		m.Date, m.PaymentMethod, time.Now(), m.OwnerID,
	)
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("transactionID", m.TransactionID), slog.String("error", err.Error()))
		return translateWriteError(err, "failed to update transaction")
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "failed to update transaction")
	}
	return nil
}

// DeleteTransaction removes a record by ID.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		logger.Error("Failed to delete transaction", slog.String("transactionID", transactionID), slog.String("error", err.Error()))
		return translateWriteError(err, "failed to delete transaction")
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "failed to delete transaction")
	}
	return nil
}
