package services

import (
	"context"
	"time"

	"github.com/contasapp/banco_backend/internal/core/domain"
)

// AuthSvcFacade defines credential issuance and verification operations.
type AuthSvcFacade interface {
	// Login verifies a CPF/password pair and returns the client together
	// with a signed credential. Fails with apperrors.ErrUnauthorized when
	// the pair does not match a registered client.
	Login(ctx context.Context, cpf string, password string) (*domain.Client, string, time.Time, error)

	// IssueCredential creates a signed credential bound to the client.
	IssueCredential(ctx context.Context, client *domain.Client) (string, time.Time, error)

	// GetClientByID retrieves the client profile for an authenticated caller.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
}
