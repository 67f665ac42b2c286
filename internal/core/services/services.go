package services

import (
	portsrepo "github.com/contasapp/banco_backend/internal/core/ports/repositories"
	portssvc "github.com/contasapp/banco_backend/internal/core/ports/services"
	"github.com/contasapp/banco_backend/internal/platform/config"
)

// NewServiceContainer wires all application services over the repository
// provider and runtime configuration.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	authSvc := NewAuthService(repos.ClientRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	return &portssvc.ServiceContainer{
		Registration: NewRegistrationService(repos.ClientRepo, repos.AccountRepo, authSvc),
		Auth:         authSvc,
		Account:      NewAccountService(repos.AccountRepo),
		Ledger:       NewLedgerService(repos.AccountRepo, repos.TransactionRepo),
	}
}
