package repositories

import (
	"context"

	"github.com/contasapp/banco_backend/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClientByCPF retrieves a client by its CPF, the login identifier.
	FindClientByCPF(ctx context.Context, cpf string) (*domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client. Returns apperrors.ErrDuplicate when
	// the CPF or email is already registered.
	SaveClient(ctx context.Context, client domain.Client) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
