package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// stubCache serves a fixed snapshot and records refreshes.
type stubCache struct {
	snapshot     portssvc.CacheSnapshot
	refreshCalls int
	refreshErr   error
	created      []dto.CreateTransactionRequest
}

func (s *stubCache) Snapshot(ctx context.Context, ownerID string) portssvc.CacheSnapshot {
	return s.snapshot
}

func (s *stubCache) Refresh(ctx context.Context, ownerID string) error {
	s.refreshCalls++
	return s.refreshErr
}

func (s *stubCache) Create(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	s.created = append(s.created, req)
	return &domain.Transaction{TransactionID: "txn-created", OwnerID: ownerID}, nil
}

func (s *stubCache) Update(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	return nil, nil
}

func (s *stubCache) Delete(ctx context.Context, ownerID string, transactionID string) error {
	return nil
}

func cachedTxn(id string, kind domain.TransactionKind, amount float64, category string, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		OwnerID:       "owner-1",
		Kind:          kind,
		Amount:        decimal.NewFromFloat(amount),
		Category:      category,
		Description:   id,
		Date:          domain.NormalizeDay(date),
	}
}

func TestReportingService_ListViewFiltersAndSorts(t *testing.T) {
	mar10 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	cache := &stubCache{snapshot: portssvc.CacheSnapshot{Loaded: true, Transactions: []domain.Transaction{
		cachedTxn("rent", domain.Expense, -1500, "Housing", mar10),
		cachedTxn("salary", domain.Income, 4500, "Salary", mar10.AddDate(0, 0, 1)),
		cachedTxn("groceries", domain.Expense, -156.78, "Food", mar10.AddDate(0, 0, 2)),
	}}}
	svc := NewReportingService(cache)

	txns, snap, err := svc.ListView(context.Background(), "owner-1", domain.ViewOptions{
		TypeFilter: domain.FilterExpense,
		SortField:  domain.SortByAmount,
		SortOrder:  domain.SortDesc,
	})
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "rent", txns[0].TransactionID)
	assert.Equal(t, "groceries", txns[1].TransactionID)
	assert.False(t, snap.Initializing)
	assert.Zero(t, cache.refreshCalls, "warm cache must not hit the store")
}

func TestReportingService_ColdCacheTriggersRefresh(t *testing.T) {
	cache := &stubCache{}
	svc := NewReportingService(cache)

	_, _, err := svc.ListView(context.Background(), "owner-1", domain.ViewOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.refreshCalls)
}

func TestReportingService_EmptyAccountIsServedFromMemory(t *testing.T) {
	cache := &stubCache{snapshot: portssvc.CacheSnapshot{Loaded: true}}
	svc := NewReportingService(cache)

	txns, _, err := svc.ListView(context.Background(), "owner-1", domain.ViewOptions{})
	require.NoError(t, err)
	assert.Empty(t, txns)
	assert.Zero(t, cache.refreshCalls, "a loaded empty account must not re-hit the store")
}

func TestReportingService_EmptyAccountLoadsOnce(t *testing.T) {
	repo := new(MockTransactionRepository)
	repo.On("FindTransactionsByOwner", mock.Anything, "owner-1").
		Return([]domain.Transaction{}, nil).Once()
	svc := NewReportingService(NewTransactionCacheService(repo))

	for i := 0; i < 3; i++ {
		summary, err := svc.Summary(context.Background(), "owner-1", time.Time{})
		require.NoError(t, err)
		assert.True(t, summary.Balance.IsZero())
	}
	repo.AssertNumberOfCalls(t, "FindTransactionsByOwner", 1)
}

func TestReportingService_SpendingBucketsWindow(t *testing.T) {
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	cache := &stubCache{snapshot: portssvc.CacheSnapshot{Loaded: true, Transactions: []domain.Transaction{
		cachedTxn("inside", domain.Expense, -120, "Food", end.AddDate(0, 0, -6)),
		cachedTxn("outside", domain.Expense, -999, "Food", end.AddDate(0, 0, -7)),
	}}}
	svc := NewReportingService(cache)

	overview, err := svc.Spending(context.Background(), "owner-1", 7, end)
	require.NoError(t, err)
	require.Len(t, overview.Buckets, 7)
	assert.True(t, overview.Buckets[0].Total.Equal(decimal.NewFromInt(120)), "boundary day is included")
	assert.True(t, overview.MaxAmount.Equal(decimal.NewFromInt(120)), "day before the window is excluded")
}

func TestReportingService_BudgetsUseDefaultTable(t *testing.T) {
	mar1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cache := &stubCache{snapshot: portssvc.CacheSnapshot{Loaded: true, Transactions: []domain.Transaction{
		cachedTxn("dinner", domain.Expense, -500, "Entertainment", mar1),
	}}}
	svc := NewReportingService(cache)

	statuses, err := svc.Budgets(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, statuses, len(domain.DefaultCategoryBudgets))

	var entertainment domain.CategoryBudgetStatus
	for _, st := range statuses {
		if st.Name == "Entertainment" {
			entertainment = st
		}
	}
	assert.True(t, entertainment.Spent.Equal(decimal.NewFromInt(500)), "raw spent is not clamped")
	assert.Equal(t, 100.0, entertainment.Percentage, "percentage is clamped")
}

func TestReportingService_SummaryAppliesCutoff(t *testing.T) {
	mar1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cache := &stubCache{snapshot: portssvc.CacheSnapshot{Loaded: true, Transactions: []domain.Transaction{
		cachedTxn("old-income", domain.Income, 1000, "Salary", mar1.AddDate(0, -2, 0)),
		cachedTxn("salary", domain.Income, 3000, "Salary", mar1),
		cachedTxn("rent", domain.Expense, -1200, "Housing", mar1.AddDate(0, 0, 1)),
	}}}
	svc := NewReportingService(cache)

	summary, err := svc.Summary(context.Background(), "owner-1", mar1)
	require.NoError(t, err)
	assert.True(t, summary.Income.Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.Expenses.Equal(decimal.NewFromInt(1200)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromInt(1800)))

	all, err := svc.Summary(context.Background(), "owner-1", time.Time{})
	require.NoError(t, err)
	assert.True(t, all.Income.Equal(decimal.NewFromInt(4000)), "zero cutoff keeps everything")
}
