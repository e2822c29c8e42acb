package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// ReportingHandler serves the chart, budget and dashboard views.
type ReportingHandler struct {
	reporting portssvc.ReportingSvcFacade
}

// NewReportingHandler creates a new reporting handler.
func NewReportingHandler(services *portssvc.ServiceContainer) *ReportingHandler {
	return &ReportingHandler{reporting: services.Reporting}
}

// GetSpending godoc
// @Summary Day-bucketed spending chart data
// @Description Returns expense totals bucketed per calendar day over a rolling window ending today (or at the given end date).
// @Tags reports
// @Produce json
// @Param days query int false "Window size in days" default(7)
// @Param end query string false "Window end date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.SpendingResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reports/spending [get]
func (h *ReportingHandler) GetSpending(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.SpendingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var end time.Time
	if params.End != "" {
		end, _ = time.Parse("2006-01-02", params.End)
	}

	overview, err := h.reporting.Spending(c.Request.Context(), userID, params.Days, end)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSpendingResponse(overview))
}

// GetBudgets godoc
// @Summary Spend-vs-budget status per category
// @Description Returns the spend against each configured category budget. Percentage is clamped to 100; the raw spent figure is not.
// @Tags reports
// @Produce json
// @Success 200 {array} dto.BudgetStatusResponse
// @Security BearerAuth
// @Router /reports/budgets [get]
func (h *ReportingHandler) GetBudgets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	statuses, err := h.reporting.Budgets(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetStatusResponse(statuses))
}

// GetSummary godoc
// @Summary Income/expense/balance totals for a time range
// @Tags reports
// @Produce json
// @Param range query string false "week | month | year | all" default(month)
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *ReportingHandler) GetSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.reporting.Summary(c.Request.Context(), userID, cutoffFor(params.Range, time.Now()))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(params.Range, summary))
}

// cutoffFor maps a named range onto a cutoff date. "all" maps to the zero
// time, which the domain treats as no cutoff.
func cutoffFor(rng string, now time.Time) time.Time {
	switch rng {
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}
