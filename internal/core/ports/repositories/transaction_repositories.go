package repositories

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// TransactionReader defines read operations against the transaction store.
type TransactionReader interface {
	// FindTransactionsByOwner retrieves every transaction owned by ownerID.
	FindTransactionsByOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error)

	// FindTransactionByID retrieves a single transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations against the transaction store.
type TransactionWriter interface {
	// CreateTransaction persists a new record and returns the store-assigned ID.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (string, error)

	// UpdateTransaction persists a full-record update by ID. No partial patches.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a record by ID.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
