package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// csvTransactionRow mirrors the expected CSV header. Every field is read as a
// string so one malformed cell fails its row, not the whole file.
type csvTransactionRow struct {
	Date     string `csv:"Date"`
	Payee    string `csv:"Payee"`
	Notes    string `csv:"Notes"`
	Amount   string `csv:"Amount"`
	Category string `csv:"Category"`
}

// ImportService turns an uploaded CSV into cache create operations.
type ImportService struct {
	BaseService
	cache portssvc.TransactionCacheSvcFacade
}

var _ portssvc.ImportSvcFacade = (*ImportService)(nil)

// NewImportService creates a CSV import service writing through cache.
func NewImportService(cache portssvc.TransactionCacheSvcFacade) *ImportService {
	return &ImportService{cache: cache}
}

// ImportCSV parses the file and creates one transaction per valid row. Row
// failures are collected and reported; only an unreadable file is fatal.
func (s *ImportService) ImportCSV(ctx context.Context, ownerID string, file io.Reader) (dto.ImportSummary, error) {
	var rows []csvTransactionRow
	if err := gocsv.Unmarshal(file, &rows); err != nil {
		return dto.ImportSummary{}, fmt.Errorf("failed to parse CSV: %s: %w", err.Error(), apperrors.ErrValidation)
	}

	summary := dto.ImportSummary{Failed: []dto.ImportRowError{}}
	for i, row := range rows {
		// Header is line 1, so data rows start at line 2.
		line := i + 2
		req, err := rowToCreateRequest(row)
		if err != nil {
			summary.Failed = append(summary.Failed, dto.ImportRowError{Line: line, Error: err.Error()})
			continue
		}
		if _, err := s.cache.Create(ctx, ownerID, *req); err != nil {
			summary.Failed = append(summary.Failed, dto.ImportRowError{Line: line, Error: err.Error()})
			continue
		}
		summary.Imported++
	}

	s.LogInfo(ctx, "CSV import finished",
		slog.String("ownerID", ownerID),
		slog.Int("imported", summary.Imported),
		slog.Int("failed", len(summary.Failed)))
	return summary, nil
}

// rowToCreateRequest converts a raw CSV row into a create request. Kind is
// derived from the amount's sign; description joins payee and notes.
func rowToCreateRequest(row csvTransactionRow) (*dto.CreateTransactionRequest, error) {
	if strings.TrimSpace(row.Date) == "" {
		return nil, fmt.Errorf("date is required")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", row.Amount)
	}

	kind := domain.Income
	if amount.IsNegative() {
		kind = domain.Expense
	}

	description := strings.TrimSpace(row.Payee)
	if notes := strings.TrimSpace(row.Notes); notes != "" {
		description = description + " - " + notes
	}
	if description == "" {
		return nil, fmt.Errorf("payee or notes is required")
	}

	category := strings.TrimSpace(row.Category)
	if category == "" {
		category = "Other"
	}

	return &dto.CreateTransactionRequest{
		Kind:        string(kind),
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        strings.TrimSpace(row.Date),
	}, nil
}
