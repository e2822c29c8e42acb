package services

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// CacheSnapshot is the externally visible condition of one owner's transaction
// cache. Exactly one of {Loading, Err, plain data} holds at a time.
type CacheSnapshot struct {
	Transactions []domain.Transaction
	Loaded       bool // At least one refresh completed; distinguishes a cold owner from an empty account
	Loading      bool
	Initializing bool // Store index not ready yet; informational, not a hard error
	Err          error
}

// TransactionCacheReaderSvc exposes the in-memory authoritative list.
type TransactionCacheReaderSvc interface {
	// Snapshot returns the current cache state for an owner without touching
	// the store. Owners that were never refreshed report an empty idle state.
	Snapshot(ctx context.Context, ownerID string) CacheSnapshot
}

// TransactionCacheMutatorSvc groups the four asynchronous cache operations.
// Every successful mutation re-synchronizes from the store before returning.
type TransactionCacheMutatorSvc interface {
	// Refresh replaces the in-memory list with the store's view of the owner.
	Refresh(ctx context.Context, ownerID string) error

	// Create persists a draft (assigning owner and normalizing the amount
	// sign), then refreshes. On failure the in-memory list is unchanged.
	Create(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// Update persists a full-record replacement by ID, then refreshes.
	Update(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// Delete removes a record by ID, then refreshes.
	Delete(ctx context.Context, ownerID string, transactionID string) error
}

// TransactionCacheSvcFacade combines the cache interfaces.
type TransactionCacheSvcFacade interface {
	TransactionCacheReaderSvc
	TransactionCacheMutatorSvc
}
