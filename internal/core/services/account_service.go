package services

import (
	"context"

	"github.com/contasapp/banco_backend/internal/apperrors"
	"github.com/contasapp/banco_backend/internal/core/domain"
	portsrepo "github.com/contasapp/banco_backend/internal/core/ports/repositories"
	portssvc "github.com/contasapp/banco_backend/internal/core/ports/services"
)

// accountService provides read operations over a client's accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ListAccountsForClient retrieves all accounts owned by the caller.
func (s *accountService) ListAccountsForClient(ctx context.Context, clientID string) ([]domain.Account, error) {
	return s.accountRepo.FindAccountsByClientID(ctx, clientID)
}

// GetAccountByNumber retrieves one account. Accounts owned by other clients
// are not disclosed beyond their existence.
func (s *accountService) GetAccountByNumber(ctx context.Context, callerClientID string, number string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if account.ClientID != callerClientID {
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}
