package services

import (
	"context"
	"io"

	"github.com/spendlens/spendlens_backend/internal/dto"
)

// ImportSvcFacade turns an uploaded CSV file into cache create operations.
type ImportSvcFacade interface {
	// ImportCSV parses rows of at least Date,Payee,Notes,Amount,Category and
	// creates one transaction per valid row. Row failures are collected, not
	// fatal.
	ImportCSV(ctx context.Context, ownerID string, file io.Reader) (dto.ImportSummary, error)
}
