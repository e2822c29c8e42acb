package pgsql

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
)

// translateError maps low-level pgx errors onto the application error
// taxonomy so callers can use errors.Is without importing pgx.
func translateError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, apperrors.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", operation, apperrors.ErrDuplicate)
		case "42P01", // undefined_table, schema not migrated yet
			"53300", // too_many_connections
			"57P03", // cannot_connect_now
			"58000": // system_error
			return fmt.Errorf("%s: %s: %w", operation, pgErr.Code, apperrors.ErrStoreUnavailable)
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// translateWriteError is translateError for create/update/delete paths. Errors
// without a more specific classification surface as ErrWriteFailed.
func translateWriteError(err error, operation string) error {
	translated := translateError(err, operation)
	if translated == nil {
		return nil
	}
	if errors.Is(translated, apperrors.ErrNotFound) ||
		errors.Is(translated, apperrors.ErrDuplicate) ||
		errors.Is(translated, apperrors.ErrStoreUnavailable) {
		return translated
	}
	return fmt.Errorf("%s: %s: %w", operation, err.Error(), apperrors.ErrWriteFailed)
}
