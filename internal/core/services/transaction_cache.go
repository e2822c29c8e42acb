package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// defaultRetryDelay is the pause before the single retry after the store
// reports itself unavailable.
const defaultRetryDelay = 2 * time.Second

// cacheState is one owner's cache condition. It is only ever replaced
// wholesale through reduce, never mutated in place.
type cacheState struct {
	transactions []domain.Transaction
	loaded       bool
	loading      bool
	initializing bool
	err          error
}

// cacheAction is a state transition request for reduce.
type cacheAction interface{ isCacheAction() }

type setLoadingAction struct{}

type setTransactionsAction struct{ transactions []domain.Transaction }

type addTransactionAction struct{ transaction domain.Transaction }

type updateTransactionAction struct{ transaction domain.Transaction }

type deleteTransactionAction struct{ transactionID string }

type setErrorAction struct {
	err          error
	initializing bool
}

func (setLoadingAction) isCacheAction()        {}
func (setTransactionsAction) isCacheAction()   {}
func (addTransactionAction) isCacheAction()    {}
func (updateTransactionAction) isCacheAction() {}
func (deleteTransactionAction) isCacheAction() {}
func (setErrorAction) isCacheAction()          {}

// reduce computes the next cache state from the current one and an action.
// It is pure: the input state and its slice are never modified.
func reduce(state cacheState, action cacheAction) cacheState {
	switch a := action.(type) {
	case setLoadingAction:
		state.loading = true
		state.err = nil
		return state
	case setTransactionsAction:
		return cacheState{transactions: a.transactions, loaded: true}
	case addTransactionAction:
		next := make([]domain.Transaction, 0, len(state.transactions)+1)
		next = append(next, a.transaction)
		next = append(next, state.transactions...)
		state.transactions = next
		return state
	case updateTransactionAction:
		next := make([]domain.Transaction, len(state.transactions))
		copy(next, state.transactions)
		for i := range next {
			if next[i].TransactionID == a.transaction.TransactionID {
				next[i] = a.transaction
			}
		}
		state.transactions = next
		return state
	case deleteTransactionAction:
		next := make([]domain.Transaction, 0, len(state.transactions))
		for _, t := range state.transactions {
			if t.TransactionID != a.transactionID {
				next = append(next, t)
			}
		}
		state.transactions = next
		return state
	case setErrorAction:
		state.loading = false
		state.err = a.err
		state.initializing = a.initializing
		return state
	}
	return state
}

// TransactionCacheService keeps a per-owner in-memory copy of the transaction
// list and re-synchronizes it from the store after every mutation.
type TransactionCacheService struct {
	BaseService
	repo       portsrepo.TransactionRepositoryFacade
	retryDelay time.Duration

	mu     sync.Mutex
	states map[string]cacheState
}

var _ portssvc.TransactionCacheSvcFacade = (*TransactionCacheService)(nil)

// TransactionCacheOption customizes cache construction.
type TransactionCacheOption func(*TransactionCacheService)

// WithRetryDelay overrides the pause before the unavailable-store retry.
func WithRetryDelay(d time.Duration) TransactionCacheOption {
	return func(s *TransactionCacheService) { s.retryDelay = d }
}

// NewTransactionCacheService creates a transaction cache backed by repo.
func NewTransactionCacheService(repo portsrepo.TransactionRepositoryFacade, opts ...TransactionCacheOption) *TransactionCacheService {
	s := &TransactionCacheService{
		repo:       repo,
		retryDelay: defaultRetryDelay,
		states:     make(map[string]cacheState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TransactionCacheService) dispatch(ownerID string, action cacheAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[ownerID] = reduce(s.states[ownerID], action)
}

// Snapshot returns the current cache condition for an owner. The returned
// slice is a copy so callers can hold it without racing later refreshes.
func (s *TransactionCacheService) Snapshot(ctx context.Context, ownerID string) portssvc.CacheSnapshot {
	s.mu.Lock()
	state := s.states[ownerID]
	s.mu.Unlock()

	txns := make([]domain.Transaction, len(state.transactions))
	copy(txns, state.transactions)
	return portssvc.CacheSnapshot{
		Transactions: txns,
		Loaded:       state.loaded,
		Loading:      state.loading,
		Initializing: state.initializing,
		Err:          state.err,
	}
}

// Refresh replaces the owner's in-memory list with the store's view. When the
// store reports itself unavailable the fetch is retried once after a short
// pause; cancelling ctx cancels the pending retry.
func (s *TransactionCacheService) Refresh(ctx context.Context, ownerID string) error {
	s.dispatch(ownerID, setLoadingAction{})

	txns, err := s.repo.FindTransactionsByOwner(ctx, ownerID)
	if err != nil && errors.Is(err, apperrors.ErrStoreUnavailable) {
		s.LogWarn(ctx, "Transaction store unavailable, retrying once",
			slog.String("ownerID", ownerID), slog.Duration("delay", s.retryDelay))

		timer := time.NewTimer(s.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.dispatch(ownerID, setErrorAction{err: ctx.Err()})
			return ctx.Err()
		case <-timer.C:
		}
		txns, err = s.repo.FindTransactionsByOwner(ctx, ownerID)
	}
	if err != nil {
		initializing := errors.Is(err, apperrors.ErrStoreUnavailable)
		s.LogError(ctx, "Failed to refresh transaction cache",
			slog.String("ownerID", ownerID), slog.String("error", err.Error()))
		s.dispatch(ownerID, setErrorAction{err: err, initializing: initializing})
		return err
	}

	s.dispatch(ownerID, setTransactionsAction{transactions: txns})
	return nil
}

// buildTransaction turns request fields into a validated domain transaction.
func buildTransaction(ownerID, kind string, amount decimal.Decimal, category, description, dateStr, paymentMethod string) (*domain.Transaction, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", dateStr, apperrors.ErrValidation)
	}
	if paymentMethod == "" {
		paymentMethod = domain.DefaultPaymentMethod
	}
	txn := &domain.Transaction{
		OwnerID:       ownerID,
		Kind:          domain.TransactionKind(kind),
		Amount:        amount,
		Category:      category,
		Description:   description,
		Date:          date,
		PaymentMethod: paymentMethod,
	}
	txn.NormalizeAmountSign()
	txn.NormalizeDate()
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	return txn, nil
}

// Create persists a draft and refreshes. On persistence failure the in-memory
// list is left exactly as it was.
func (s *TransactionCacheService) Create(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txn, err := buildTransaction(ownerID, req.Kind, req.Amount, req.Category, req.Description, req.Date, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.CreateTransaction(ctx, *txn)
	if err != nil {
		s.LogError(ctx, "Failed to create transaction",
			slog.String("ownerID", ownerID), slog.String("error", err.Error()))
		return nil, err
	}
	txn.TransactionID = id

	s.dispatch(ownerID, addTransactionAction{transaction: *txn})
	if err := s.Refresh(ctx, ownerID); err != nil {
		s.LogWarn(ctx, "Post-create refresh failed, keeping optimistic entry",
			slog.String("ownerID", ownerID), slog.String("error", err.Error()))
	}
	return txn, nil
}

// Update persists a full-record replacement by ID and refreshes.
func (s *TransactionCacheService) Update(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("transaction ID is required: %w", apperrors.ErrValidation)
	}

	txn, err := buildTransaction(ownerID, req.Kind, req.Amount, req.Category, req.Description, req.Date, req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	txn.TransactionID = transactionID

	if err := s.repo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, "Failed to update transaction",
			slog.String("transactionID", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	s.dispatch(ownerID, updateTransactionAction{transaction: *txn})
	if err := s.Refresh(ctx, ownerID); err != nil {
		s.LogWarn(ctx, "Post-update refresh failed, keeping optimistic entry",
			slog.String("ownerID", ownerID), slog.String("error", err.Error()))
	}
	return txn, nil
}

// Delete removes a record by ID and refreshes. Records owned by someone else
// are reported as not found.
func (s *TransactionCacheService) Delete(ctx context.Context, ownerID string, transactionID string) error {
	if transactionID == "" {
		return fmt.Errorf("transaction ID is required: %w", apperrors.ErrValidation)
	}

	existing, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}

	if err := s.repo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, "Failed to delete transaction",
			slog.String("transactionID", transactionID), slog.String("error", err.Error()))
		return err
	}

	s.dispatch(ownerID, deleteTransactionAction{transactionID: transactionID})
	if err := s.Refresh(ctx, ownerID); err != nil {
		s.LogWarn(ctx, "Post-delete refresh failed",
			slog.String("ownerID", ownerID), slog.String("error", err.Error()))
	}
	return nil
}
