package services

import (
	"context"
	"time"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
)

// ReportingService derives list views, spending charts, budget status and
// period summaries from the transaction cache. All derivations are pure; the
// cache is the only data source.
type ReportingService struct {
	BaseService
	cache portssvc.TransactionCacheSvcFacade
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// NewReportingService creates a reporting service over the given cache.
func NewReportingService(cache portssvc.TransactionCacheSvcFacade) *ReportingService {
	return &ReportingService{cache: cache}
}

// snapshotFor returns the owner's cache state, lazily loading owners that
// were never refreshed in this process. An owner with a completed refresh is
// served from memory even when their account is empty.
func (s *ReportingService) snapshotFor(ctx context.Context, ownerID string) (portssvc.CacheSnapshot, error) {
	snap := s.cache.Snapshot(ctx, ownerID)
	if !snap.Loaded && snap.Err == nil && !snap.Loading {
		if err := s.cache.Refresh(ctx, ownerID); err != nil {
			return s.cache.Snapshot(ctx, ownerID), err
		}
		snap = s.cache.Snapshot(ctx, ownerID)
	}
	return snap, nil
}

// ListView returns the owner's transactions filtered and sorted for display,
// together with the cache condition.
func (s *ReportingService) ListView(ctx context.Context, ownerID string, opts domain.ViewOptions) ([]domain.Transaction, portssvc.CacheSnapshot, error) {
	snap, err := s.snapshotFor(ctx, ownerID)
	if err != nil && !snap.Initializing {
		return nil, snap, err
	}
	return domain.ApplyView(snap.Transactions, opts), snap, nil
}

// Spending returns day-bucketed expense totals for the chart.
func (s *ReportingService) Spending(ctx context.Context, ownerID string, windowDays int, endDate time.Time) (domain.SpendingOverview, error) {
	snap, err := s.snapshotFor(ctx, ownerID)
	if err != nil && !snap.Initializing {
		return domain.SpendingOverview{}, err
	}
	if endDate.IsZero() {
		endDate = time.Now()
	}
	return domain.SpendByDay(snap.Transactions, windowDays, endDate), nil
}

// Budgets returns spend-vs-budget status for every configured category.
func (s *ReportingService) Budgets(ctx context.Context, ownerID string) ([]domain.CategoryBudgetStatus, error) {
	snap, err := s.snapshotFor(ctx, ownerID)
	if err != nil && !snap.Initializing {
		return nil, err
	}
	return domain.BudgetStatus(snap.Transactions, domain.DefaultCategoryBudgets), nil
}

// Summary returns income/expense/balance totals since cutoff. A zero cutoff
// means all time.
func (s *ReportingService) Summary(ctx context.Context, ownerID string, cutoff time.Time) (domain.PeriodSummary, error) {
	snap, err := s.snapshotFor(ctx, ownerID)
	if err != nil && !snap.Initializing {
		return domain.PeriodSummary{}, err
	}
	return domain.Summarize(domain.FilterSince(snap.Transactions, cutoff)), nil
}
