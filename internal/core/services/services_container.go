package services

import (
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/platform/config"
)

// NewServiceContainer wires every service implementation into the container
// consumed by the handlers.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	cache := NewTransactionCacheService(repos.TransactionRepo)
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		TransactionCache: cache,
		Reporting:        NewReportingService(cache),
		Importer:         NewImportService(cache),
		User:             userSvc,
		Token:            NewTokenService(cfg, userSvc),
		GoogleAuth:       NewGoogleAuthService(cfg),
	}
}
