package repositories

import (
	"context"

	"github.com/contasapp/banco_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for the transaction log
type TransactionReader interface {
	// ListTransactionsByAccountID retrieves all transactions for an account,
	// most recent first.
	ListTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter defines append operations for the transaction log.
// The log is append-only; there is no update or delete.
type TransactionWriter interface {
	// SaveTransactionInTx appends a transaction record within the given
	// database transaction so that it commits or rolls back together with
	// the balance mutation it describes.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-log repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
