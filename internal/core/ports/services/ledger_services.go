package services

import (
	"context"

	"github.com/contasapp/banco_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade defines the money-movement engine. Every mutating
// operation executes inside a single database transaction and either fully
// succeeds or leaves the ledger untouched. The caller identity is passed
// explicitly; operations on accounts not owned by the caller fail with
// apperrors.ErrForbidden.
type LedgerSvcFacade interface {
	// Deposit atomically increments the account's balance and appends a
	// DEPOSIT transaction. Returns the post-operation account snapshot.
	Deposit(ctx context.Context, callerClientID string, accountNumber string, amount decimal.Decimal) (*domain.Account, error)

	// Withdraw atomically decrements the account's balance and appends a
	// WITHDRAWAL transaction. The balance check runs against the
	// lock-protected row.
	Withdraw(ctx context.Context, callerClientID string, accountNumber string, amount decimal.Decimal) (*domain.Account, error)

	// Transfer atomically moves amount from source to destination and
	// appends a TRANSFER_OUT and a TRANSFER_IN record. The source row is
	// locked before the destination is read or written.
	Transfer(ctx context.Context, callerClientID string, sourceNumber string, destNumber string, amount decimal.Decimal) (*domain.Account, *domain.Account, error)

	// Balance returns the current balance of the account.
	Balance(ctx context.Context, callerClientID string, accountNumber string) (decimal.Decimal, error)

	// Statement returns all transactions for the account, most recent first.
	Statement(ctx context.Context, callerClientID string, accountNumber string) ([]domain.Transaction, error)
}
