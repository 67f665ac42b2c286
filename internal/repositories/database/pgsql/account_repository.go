package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/contasapp/banco_backend/internal/apperrors"
	"github.com/contasapp/banco_backend/internal/core/domain"
	portsrepo "github.com/contasapp/banco_backend/internal/core/ports/repositories"
	"github.com/contasapp/banco_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID: d.AccountID,
		ClientID:  d.ClientID,
		Number:    d.Number,
		Balance:   d.Balance,
		CreatedAt: d.CreatedAt,
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		ClientID:  m.ClientID,
		Number:    m.Number,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
	}
}

// SaveAccount inserts a new account. The account number is guarded by a
// UNIQUE constraint; a collision surfaces as apperrors.ErrDuplicate so the
// provisioning service can regenerate the number and retry.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := toModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, client_id, number, balance, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.ClientID,
		modelAcc.Number,
		modelAcc.Balance,
		modelAcc.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, modelAcc.Number)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	query := `
		SELECT account_id, client_id, number, balance, created_at
		FROM accounts
		WHERE number = $1;
	`
	var modelAcc models.Account

	err := r.Pool.QueryRow(ctx, query, number).Scan(
		&modelAcc.AccountID,
		&modelAcc.ClientID,
		&modelAcc.Number,
		&modelAcc.Balance,
		&modelAcc.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", number, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountsByClientID retrieves all accounts owned by a client.
func (r *PgxAccountRepository) FindAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, client_id, number, balance, created_at
		FROM accounts
		WHERE client_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for client %s: %w", clientID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var modelAcc models.Account
		err := rows.Scan(
			&modelAcc.AccountID,
			&modelAcc.ClientID,
			&modelAcc.Number,
			&modelAcc.Balance,
			&modelAcc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for client %s: %w", clientID, err)
		}
		accounts = append(accounts, toDomainAccount(modelAcc))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for client %s: %w", clientID, err)
	}

	return accounts, nil
}

// FindAccountByNumberForUpdate retrieves an account by number and locks the
// row for update. Must be called within a transaction; the lock is held
// until the transaction commits or rolls back.
func (r *PgxAccountRepository) FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, number string) (*domain.Account, error) {
	query := `
		SELECT account_id, client_id, number, balance, created_at
		FROM accounts
		WHERE number = $1
		FOR UPDATE;
	`
	var modelAcc models.Account

	err := tx.QueryRow(ctx, query, number).Scan(
		&modelAcc.AccountID,
		&modelAcc.ClientID,
		&modelAcc.Number,
		&modelAcc.Balance,
		&modelAcc.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", number, err)
	}

	domainAcc := toDomainAccount(modelAcc)
	return &domainAcc, nil
}

// AdjustAccountBalanceInTx applies a signed delta to the account balance as
// a single atomic UPDATE within the given transaction and returns the
// resulting balance. The CHECK (balance >= 0) constraint is the storage
// backstop against negative balances.
func (r *PgxAccountRepository) AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2
		WHERE account_id = $1
		RETURNING balance;
	`
	var newBalance decimal.Decimal

	err := tx.QueryRow(ctx, query, accountID, delta).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" { // Check violation
			return decimal.Zero, fmt.Errorf("%w: balance of account %s would become negative", apperrors.ErrValidation, accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}

	return newBalance, nil
}
