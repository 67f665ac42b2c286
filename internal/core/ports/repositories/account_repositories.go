package repositories

import (
	"context"

	"github.com/contasapp/banco_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its account number.
	FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error)

	// FindAccountsByClientID retrieves all accounts owned by a client.
	FindAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate when
	// the account number collides with an existing one.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that participate in a
// ledger transaction. All methods must be called with an open pgx.Tx.
type AccountTransactionSupport interface {
	// FindAccountByNumberForUpdate selects an account row and locks it
	// (SELECT ... FOR UPDATE) within the given transaction.
	FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, number string) (*domain.Account, error)

	// AdjustAccountBalanceInTx applies `balance = balance + delta` atomically
	// within the given transaction and returns the resulting balance.
	AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
