package services

import (
	"context"

	"github.com/contasapp/banco_backend/internal/core/domain"
)

// AccountSvcFacade defines read operations over a client's accounts.
type AccountSvcFacade interface {
	// ListAccountsForClient retrieves all accounts owned by the caller.
	ListAccountsForClient(ctx context.Context, clientID string) ([]domain.Account, error)

	// GetAccountByNumber retrieves one account, enforcing that the caller
	// owns it (apperrors.ErrForbidden otherwise).
	GetAccountByNumber(ctx context.Context, callerClientID string, number string) (*domain.Account, error)
}
