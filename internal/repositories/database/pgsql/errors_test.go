package pgsql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil passes through", in: nil, want: nil},
		{name: "no rows", in: pgx.ErrNoRows, want: apperrors.ErrNotFound},
		{name: "unique violation", in: &pgconn.PgError{Code: "23505"}, want: apperrors.ErrDuplicate},
		{name: "undefined table", in: &pgconn.PgError{Code: "42P01"}, want: apperrors.ErrStoreUnavailable},
		{name: "cannot connect now", in: &pgconn.PgError{Code: "57P03"}, want: apperrors.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in, "op")
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateError_UnknownErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	got := translateError(cause, "op")
	require.Error(t, got)
	assert.ErrorIs(t, got, cause)
}

func TestTranslateWriteError(t *testing.T) {
	t.Run("unclassified write errors become write failures", func(t *testing.T) {
		got := translateWriteError(errors.New("constraint botched"), "op")
		assert.ErrorIs(t, got, apperrors.ErrWriteFailed)
	})

	t.Run("specific classifications survive", func(t *testing.T) {
		got := translateWriteError(&pgconn.PgError{Code: "23505"}, "op")
		assert.ErrorIs(t, got, apperrors.ErrDuplicate)
		assert.NotErrorIs(t, got, apperrors.ErrWriteFailed)

		got = translateWriteError(&pgconn.PgError{Code: "42P01"}, "op")
		assert.ErrorIs(t, got, apperrors.ErrStoreUnavailable)
	})

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, translateWriteError(nil, "op"))
	})
}
