package dto

import (
	"github.com/shopspring/decimal"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// SpendingParams selects the rolling window for the spending chart.
type SpendingParams struct {
	Days int    `form:"days,default=7" binding:"omitempty,min=1,max=365"`
	End  string `form:"end" binding:"omitempty,datetime=2006-01-02"`
}

// DayBucketResponse is one bar of the spending chart.
type DayBucketResponse struct {
	Date       string          `json:"date"`
	Label      string          `json:"label"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"`
}

// SpendingResponse is the chart-ready spending overview.
type SpendingResponse struct {
	Buckets   []DayBucketResponse `json:"buckets"`
	MaxAmount decimal.Decimal     `json:"maxAmount"`
}

// ToSpendingResponse converts a domain spending overview to its response DTO.
func ToSpendingResponse(overview domain.SpendingOverview) SpendingResponse {
	resp := SpendingResponse{
		Buckets:   make([]DayBucketResponse, len(overview.Buckets)),
		MaxAmount: overview.MaxAmount,
	}
	for i, b := range overview.Buckets {
		resp.Buckets[i] = DayBucketResponse{
			Date:       b.Date.Format("2006-01-02"),
			Label:      b.Label,
			Total:      b.Total,
			Percentage: b.Percentage,
		}
	}
	return resp
}

// BudgetStatusResponse reports one category's spend against its limit.
type BudgetStatusResponse struct {
	Name       string          `json:"name"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Percentage float64         `json:"percentage"`
}

// ToBudgetStatusResponse converts domain budget statuses to response DTOs.
func ToBudgetStatusResponse(statuses []domain.CategoryBudgetStatus) []BudgetStatusResponse {
	out := make([]BudgetStatusResponse, len(statuses))
	for i, s := range statuses {
		out[i] = BudgetStatusResponse{
			Name:       s.Name,
			Limit:      s.Limit,
			Spent:      s.Spent,
			Percentage: s.Percentage,
		}
	}
	return out
}

// SummaryParams selects the dashboard time range.
type SummaryParams struct {
	Range string `form:"range,default=month" binding:"omitempty,oneof=week month year all"`
}

// SummaryResponse holds the dashboard totals for a time range.
type SummaryResponse struct {
	Range    string          `json:"range"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// ToSummaryResponse converts a domain period summary to its response DTO.
func ToSummaryResponse(rng string, summary domain.PeriodSummary) SummaryResponse {
	return SummaryResponse{
		Range:    rng,
		Income:   summary.Income,
		Expenses: summary.Expenses,
		Balance:  summary.Balance,
	}
}
