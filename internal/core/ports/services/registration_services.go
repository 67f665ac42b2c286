package services

import (
	"context"

	"github.com/contasapp/banco_backend/internal/dto"
)

// RegistrationSvcFacade defines account provisioning operations.
type RegistrationSvcFacade interface {
	// Register creates a client identity, its first account with balance
	// 0.00 and a freshly generated unique account number, and issues a
	// credential bound to the client.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegistrationResult, error)
}
