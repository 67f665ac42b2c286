package pgsql

import (
	portsrepo "github.com/contasapp/banco_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories over one connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		ClientRepo:      NewClientRepository(pool),
		AccountRepo:     NewAccountRepository(pool),
		TransactionRepo: NewTransactionRepository(pool),
	}
}
