package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SortField selects the comparison key for transaction list views.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
	SortByAmount      SortField = "amount"
)

// SortOrder flips the comparator sign, never the tie-break.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TypeFilter narrows a list view to a single transaction kind.
type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterExpense TypeFilter = "expense"
	FilterIncome  TypeFilter = "income"
)

// ViewOptions is the full view-state of a transaction list screen.
type ViewOptions struct {
	Search     string
	TypeFilter TypeFilter
	SortField  SortField
	SortOrder  SortOrder
}

// ApplyView filters and sorts transactions for list display. It is a pure
// function: the input slice is never mutated and equal-key entries keep their
// input relative order regardless of sort order.
func ApplyView(transactions []Transaction, opts ViewOptions) []Transaction {
	search := strings.ToLower(opts.Search)

	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		if opts.TypeFilter != "" && opts.TypeFilter != FilterAll && TransactionKind(opts.TypeFilter) != t.Kind {
			continue
		}
		out = append(out, t)
	}

	cmp := comparatorFor(opts.SortField)
	if cmp == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(&out[i], &out[j])
		if opts.SortOrder == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// comparatorFor returns a three-way comparator for the given field, or nil when
// the field is unknown (input order is kept).
func comparatorFor(field SortField) func(a, b *Transaction) int {
	switch field {
	case SortByDate:
		return func(a, b *Transaction) int {
			da, db := NormalizeDay(a.Date), NormalizeDay(b.Date)
			switch {
			case da.Before(db):
				return -1
			case da.After(db):
				return 1
			}
			return 0
		}
	case SortByAmount:
		// Amounts compare by magnitude, so a -200 expense outranks a +100 income.
		return func(a, b *Transaction) int {
			return a.Amount.Abs().Cmp(b.Amount.Abs())
		}
	case SortByDescription:
		return func(a, b *Transaction) int {
			return strings.Compare(a.Description, b.Description)
		}
	case SortByCategory:
		return func(a, b *Transaction) int {
			return strings.Compare(a.Category, b.Category)
		}
	}
	return nil
}

// spendFloor keeps bar-height math away from a division by zero when every
// bucket in the window is empty.
var spendFloor = decimal.NewFromFloat(0.01)

// DayBucket is one calendar day's aggregated expense total within a window.
type DayBucket struct {
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"` // Of the window maximum; display only, never persisted
	Label      string          `json:"label"`
}

// SpendingOverview is the chart-ready result of SpendByDay.
type SpendingOverview struct {
	Buckets   []DayBucket     `json:"buckets"`
	MaxAmount decimal.Decimal `json:"maxAmount"`
}

// SpendByDay buckets expense magnitudes into windowDays consecutive calendar
// days ending at endDate inclusive, oldest first. A transaction dated exactly
// at the window boundary is included; one dated a day outside is excluded.
func SpendByDay(transactions []Transaction, windowDays int, endDate time.Time) SpendingOverview {
	if windowDays <= 0 {
		return SpendingOverview{Buckets: []DayBucket{}, MaxAmount: spendFloor}
	}

	end := NormalizeDay(endDate)
	totals := make([]decimal.Decimal, windowDays)
	for i := range totals {
		totals[i] = decimal.Zero
	}

	for _, t := range transactions {
		if t.Kind != Expense {
			continue
		}
		day := NormalizeDay(t.Date)
		offset := int(end.Sub(day).Hours() / 24)
		if offset < 0 || offset >= windowDays {
			continue
		}
		idx := windowDays - 1 - offset
		totals[idx] = totals[idx].Add(t.Magnitude())
	}

	maxAmount := spendFloor
	for _, total := range totals {
		if total.GreaterThan(maxAmount) {
			maxAmount = total
		}
	}

	buckets := make([]DayBucket, windowDays)
	for i, total := range totals {
		date := end.AddDate(0, 0, -(windowDays - 1 - i))
		buckets[i] = DayBucket{
			Date:       date,
			Total:      total,
			Percentage: total.Div(maxAmount).Mul(decimal.NewFromInt(100)).InexactFloat64(),
			Label:      bucketLabel(date, windowDays),
		}
	}

	return SpendingOverview{Buckets: buckets, MaxAmount: maxAmount}
}

func bucketLabel(date time.Time, windowDays int) string {
	if windowDays <= 7 {
		return date.Format("Mon 2")
	}
	return date.Format("Jan 2")
}

// CategoryBudget maps a category name to its monthly limit.
type CategoryBudget struct {
	Name  string          `json:"name"`
	Limit decimal.Decimal `json:"limit"`
}

// CategoryBudgetStatus reports spend against a configured budget. Percentage is
// clamped to [0,100]; overspend detection must use the raw Spent/Limit figures.
type CategoryBudgetStatus struct {
	Name       string          `json:"name"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Percentage float64         `json:"percentage"`
}

// DefaultCategoryBudgets is the static budget table used when no per-user
// configuration exists.
var DefaultCategoryBudgets = []CategoryBudget{
	{Name: "Housing", Limit: decimal.NewFromInt(2000)},
	{Name: "Transportation", Limit: decimal.NewFromInt(400)},
	{Name: "Food", Limit: decimal.NewFromInt(600)},
	{Name: "Utilities", Limit: decimal.NewFromInt(300)},
	{Name: "Entertainment", Limit: decimal.NewFromInt(200)},
}

// BudgetStatus sums expense magnitudes per category and compares them with the
// configured limits. Categories absent from the budget table do not appear.
func BudgetStatus(transactions []Transaction, budgets []CategoryBudget) []CategoryBudgetStatus {
	spending := make(map[string]decimal.Decimal, len(budgets))
	for _, t := range transactions {
		if t.Kind != Expense {
			continue
		}
		spending[t.Category] = spending[t.Category].Add(t.Magnitude())
	}

	out := make([]CategoryBudgetStatus, len(budgets))
	for i, b := range budgets {
		spent := spending[b.Name]
		pct := 0.0
		if b.Limit.IsPositive() {
			pct = spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).InexactFloat64()
			if pct > 100 {
				pct = 100
			}
		}
		out[i] = CategoryBudgetStatus{
			Name:       b.Name,
			Limit:      b.Limit,
			Spent:      spent,
			Percentage: pct,
		}
	}
	return out
}

// PeriodSummary holds aggregate magnitudes for a dashboard time range.
type PeriodSummary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// Summarize totals income and expense magnitudes; Balance is income minus expenses.
func Summarize(transactions []Transaction) PeriodSummary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range transactions {
		switch t.Kind {
		case Income:
			income = income.Add(t.Magnitude())
		case Expense:
			expenses = expenses.Add(t.Magnitude())
		}
	}
	return PeriodSummary{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// FilterSince keeps transactions dated on or after cutoff (calendar-day
// comparison). A zero cutoff keeps everything.
func FilterSince(transactions []Transaction, cutoff time.Time) []Transaction {
	if cutoff.IsZero() {
		return transactions
	}
	day := NormalizeDay(cutoff)
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !NormalizeDay(t.Date).Before(day) {
			out = append(out, t)
		}
	}
	return out
}
