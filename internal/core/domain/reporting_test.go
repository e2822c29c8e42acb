package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func txn(id string, kind domain.TransactionKind, amount float64, category, description string, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		OwnerID:       "owner_1",
		Kind:          kind,
		Amount:        decimal.NewFromFloat(amount),
		Category:      category,
		Description:   description,
		Date:          date,
	}
}

func TestApplyView_FilterAndSort(t *testing.T) {
	d := day(2024, 3, 15)
	input := []domain.Transaction{
		txn("t1", domain.Expense, -156.78, "Food", "Groceries", d),
		txn("t2", domain.Income, 4500, "Salary", "March pay", d.AddDate(0, 0, -1)),
	}

	t.Run("type filter keeps only expenses", func(t *testing.T) {
		got := domain.ApplyView(input, domain.ViewOptions{TypeFilter: domain.FilterExpense})
		require.Len(t, got, 1)
		assert.Equal(t, "t1", got[0].TransactionID)
	})

	t.Run("amount sort compares magnitudes", func(t *testing.T) {
		got := domain.ApplyView(input, domain.ViewOptions{
			TypeFilter: domain.FilterAll,
			SortField:  domain.SortByAmount,
			SortOrder:  domain.SortAsc,
		})
		require.Len(t, got, 2)
		// |−156.78| < |4500|, so the expense sorts first ascending.
		assert.Equal(t, "t1", got[0].TransactionID)
		assert.Equal(t, "t2", got[1].TransactionID)
	})

	t.Run("search matches description and category case-insensitively", func(t *testing.T) {
		got := domain.ApplyView(input, domain.ViewOptions{Search: "groc"})
		require.Len(t, got, 1)
		assert.Equal(t, "t1", got[0].TransactionID)

		got = domain.ApplyView(input, domain.ViewOptions{Search: "SALARY"})
		require.Len(t, got, 1)
		assert.Equal(t, "t2", got[0].TransactionID)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		got := domain.ApplyView(nil, domain.ViewOptions{SortField: domain.SortByDate})
		assert.Empty(t, got)
	})

	t.Run("all filtered out yields empty output", func(t *testing.T) {
		got := domain.ApplyView(input, domain.ViewOptions{Search: "no such text"})
		assert.Empty(t, got)
	})
}

func TestApplyView_StableForEqualKeys(t *testing.T) {
	d := day(2024, 3, 15)
	input := []domain.Transaction{
		txn("a", domain.Expense, -10, "Food", "first", d),
		txn("b", domain.Expense, -10, "Food", "second", d),
		txn("c", domain.Expense, -10, "Food", "third", d),
	}

	asc := domain.ApplyView(input, domain.ViewOptions{SortField: domain.SortByAmount, SortOrder: domain.SortAsc})
	desc := domain.ApplyView(input, domain.ViewOptions{SortField: domain.SortByAmount, SortOrder: domain.SortDesc})

	// All keys are equal: order flips must not reorder the tied group.
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, asc[i].TransactionID)
		assert.Equal(t, want, desc[i].TransactionID)
	}
}

func TestApplyView_IsPure(t *testing.T) {
	d := day(2024, 3, 15)
	input := []domain.Transaction{
		txn("t2", domain.Income, 4500, "Salary", "pay", d.AddDate(0, 0, -1)),
		txn("t1", domain.Expense, -156.78, "Food", "groceries", d),
	}
	opts := domain.ViewOptions{SortField: domain.SortByDate, SortOrder: domain.SortAsc}

	first := domain.ApplyView(input, opts)
	second := domain.ApplyView(input, opts)

	assert.Equal(t, first, second)
	// Input order untouched.
	assert.Equal(t, "t2", input[0].TransactionID)
	assert.Equal(t, "t1", input[1].TransactionID)
}

func TestSpendByDay_WindowBoundary(t *testing.T) {
	end := day(2024, 3, 15)
	input := []domain.Transaction{
		txn("in", domain.Expense, -120, "Food", "inside", end),
		txn("out", domain.Expense, -50, "Food", "outside", day(2024, 3, 8)), // 8 days back, excluded
		txn("edge", domain.Expense, -30, "Food", "oldest day", day(2024, 3, 9)),
	}

	got := domain.SpendByDay(input, 7, end)

	require.Len(t, got.Buckets, 7)
	assert.True(t, decimal.NewFromInt(120).Equal(got.MaxAmount), "max=%s", got.MaxAmount)
	assert.True(t, decimal.NewFromInt(120).Equal(got.Buckets[6].Total))
	assert.True(t, decimal.NewFromInt(30).Equal(got.Buckets[0].Total))
	assert.Equal(t, day(2024, 3, 9), got.Buckets[0].Date)
	assert.Equal(t, end, got.Buckets[6].Date)
	assert.InDelta(t, 100.0, got.Buckets[6].Percentage, 1e-9)
	assert.InDelta(t, 25.0, got.Buckets[0].Percentage, 1e-9)
}

func TestSpendByDay_EmptyWindowUsesFloor(t *testing.T) {
	got := domain.SpendByDay(nil, 14, day(2024, 3, 15))

	require.Len(t, got.Buckets, 14)
	assert.True(t, decimal.NewFromFloat(0.01).Equal(got.MaxAmount))
	for _, b := range got.Buckets {
		assert.True(t, b.Total.IsZero())
		assert.Zero(t, b.Percentage)
	}
}

func TestSpendByDay_IgnoresIncome(t *testing.T) {
	end := day(2024, 3, 15)
	input := []domain.Transaction{
		txn("i", domain.Income, 4500, "Salary", "pay", end),
		txn("e", domain.Expense, -25, "Food", "lunch", end),
	}

	got := domain.SpendByDay(input, 7, end)
	assert.True(t, decimal.NewFromInt(25).Equal(got.Buckets[6].Total))
}

func TestSpendByDay_Idempotent(t *testing.T) {
	end := day(2024, 3, 15)
	input := []domain.Transaction{
		txn("a", domain.Expense, -120, "Food", "a", end),
		txn("b", domain.Expense, -33.33, "Transportation", "b", end.AddDate(0, 0, -3)),
	}

	first := domain.SpendByDay(input, 7, end)
	second := domain.SpendByDay(input, 7, end)
	assert.Equal(t, first, second)
}

func TestSpendByDay_Labels(t *testing.T) {
	end := day(2024, 3, 15) // a Friday

	week := domain.SpendByDay(nil, 7, end)
	assert.Equal(t, "Fri 15", week.Buckets[6].Label)

	month := domain.SpendByDay(nil, 30, end)
	assert.Equal(t, "Mar 15", month.Buckets[29].Label)
}

func TestBudgetStatus_ClampsPercentage(t *testing.T) {
	end := day(2024, 3, 15)
	budgets := []domain.CategoryBudget{
		{Name: "Food", Limit: decimal.NewFromInt(200)},
		{Name: "Utilities", Limit: decimal.NewFromInt(300)},
	}
	input := []domain.Transaction{
		txn("a", domain.Expense, -500, "Food", "overspent", end),
		txn("b", domain.Expense, -30, "Utilities", "power", end),
		txn("c", domain.Expense, -99, "Gifts", "not budgeted", end),
		txn("d", domain.Income, 4500, "Salary", "ignored", end),
	}

	got := domain.BudgetStatus(input, budgets)

	require.Len(t, got, 2)
	assert.Equal(t, "Food", got[0].Name)
	assert.True(t, decimal.NewFromInt(500).Equal(got[0].Spent), "raw spent survives the clamp")
	assert.InDelta(t, 100.0, got[0].Percentage, 1e-9)
	assert.Equal(t, "Utilities", got[1].Name)
	assert.InDelta(t, 10.0, got[1].Percentage, 1e-9)
}

func TestSummarize(t *testing.T) {
	end := day(2024, 3, 15)
	input := []domain.Transaction{
		txn("a", domain.Income, 4500, "Salary", "pay", end),
		txn("b", domain.Expense, -156.78, "Food", "groceries", end),
	}

	got := domain.Summarize(input)
	assert.True(t, decimal.NewFromInt(4500).Equal(got.Income))
	assert.True(t, decimal.NewFromFloat(156.78).Equal(got.Expenses))
	assert.True(t, decimal.NewFromFloat(4343.22).Equal(got.Balance))
}

func TestFilterSince(t *testing.T) {
	input := []domain.Transaction{
		txn("old", domain.Expense, -10, "Food", "old", day(2024, 2, 1)),
		txn("new", domain.Expense, -10, "Food", "new", day(2024, 3, 14)),
	}

	got := domain.FilterSince(input, day(2024, 3, 8))
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].TransactionID)

	assert.Len(t, domain.FilterSince(input, time.Time{}), 2)
}
