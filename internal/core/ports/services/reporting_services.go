package services

import (
	"context"
	"time"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// ReportingSvcFacade derives every screen's view from the transaction cache.
type ReportingSvcFacade interface {
	// ListView returns the owner's transactions filtered and sorted for list
	// display, together with the cache condition.
	ListView(ctx context.Context, ownerID string, opts domain.ViewOptions) ([]domain.Transaction, CacheSnapshot, error)

	// Spending returns day-bucketed expense totals for the chart.
	Spending(ctx context.Context, ownerID string, windowDays int, endDate time.Time) (domain.SpendingOverview, error)

	// Budgets returns spend-vs-budget status for every configured category.
	Budgets(ctx context.Context, ownerID string) ([]domain.CategoryBudgetStatus, error)

	// Summary returns income/expense/balance totals since cutoff (zero cutoff
	// means all time).
	Summary(ctx context.Context, ownerID string, cutoff time.Time) (domain.PeriodSummary, error)
}
