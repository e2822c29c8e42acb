package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository into a single
// provider for the service layer.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TransactionRepo: NewPgxTransactionRepository(pool),
		UserRepo:        NewPgxUserRepository(pool),
	}
}
