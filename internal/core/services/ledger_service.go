package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contasapp/banco_backend/internal/apperrors"
	"github.com/contasapp/banco_backend/internal/core/domain"
	portsrepo "github.com/contasapp/banco_backend/internal/core/ports/repositories"
	portssvc "github.com/contasapp/banco_backend/internal/core/ports/services"
	"github.com/contasapp/banco_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount              = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	ErrInsufficientFunds          = fmt.Errorf("%w: insufficient funds", apperrors.ErrValidation)
	ErrSameAccount                = fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	ErrSourceAccountNotFound      = fmt.Errorf("%w: source account", apperrors.ErrNotFound)
	ErrDestinationAccountNotFound = fmt.Errorf("%w: destination account", apperrors.ErrNotFound)
)

// ledgerService implements the money-movement engine. All mutating
// operations run inside a single database transaction: lock the account
// rows, validate against the locked balances, apply the balance deltas and
// append the transaction log entries, then commit.
type ledgerService struct {
	accountRepo     portsrepo.AccountRepositoryWithTx
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryWithTx, transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Deposit increments the account balance and appends a DEPOSIT record.
func (s *ledgerService) Deposit(ctx context.Context, callerClientID string, accountNumber string, amount decimal.Decimal) (*domain.Account, error) {
	return s.adjustSingle(ctx, callerClientID, accountNumber, amount, domain.Deposit)
}

// Withdraw decrements the account balance and appends a WITHDRAWAL record.
// The funds check runs against the lock-protected row.
func (s *ledgerService) Withdraw(ctx context.Context, callerClientID string, accountNumber string, amount decimal.Decimal) (*domain.Account, error) {
	return s.adjustSingle(ctx, callerClientID, accountNumber, amount, domain.Withdrawal)
}

// adjustSingle runs the shared deposit/withdrawal flow. The kind decides
// the sign of the balance delta and the funds check.
func (s *ledgerService) adjustSingle(ctx context.Context, callerClientID string, accountNumber string, amount decimal.Decimal, kind domain.TransactionKind) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.accountRepo.FindAccountByNumberForUpdate(ctx, tx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account.ClientID != callerClientID {
		return nil, apperrors.ErrForbidden
	}

	delta := amount
	if kind == domain.Withdrawal {
		if account.Balance.LessThan(amount) {
			return nil, ErrInsufficientFunds
		}
		delta = amount.Neg()
	}

	newBalance, err := s.accountRepo.AdjustAccountBalanceInTx(ctx, tx, account.AccountID, delta)
	if err != nil {
		return nil, err
	}

	record := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Kind:          kind,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	logger.Info("ledger operation committed",
		"kind", string(kind),
		"accountID", account.AccountID,
		"transactionID", record.TransactionID,
	)

	account.Balance = newBalance
	return account, nil
}

// Transfer moves amount from the source account to the destination account
// in one database transaction. The source row is locked before the
// destination row, validations run against the locked balances, and a
// TRANSFER_OUT plus a TRANSFER_IN record are appended.
func (s *ledgerService) Transfer(ctx context.Context, callerClientID string, sourceNumber string, destNumber string, amount decimal.Decimal) (*domain.Account, *domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, ErrInvalidAmount
	}
	if sourceNumber == destNumber {
		return nil, nil, ErrSameAccount
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer s.accountRepo.Rollback(ctx, tx)

	source, err := s.accountRepo.FindAccountByNumberForUpdate(ctx, tx, sourceNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, ErrSourceAccountNotFound
		}
		return nil, nil, err
	}
	if source.ClientID != callerClientID {
		return nil, nil, apperrors.ErrForbidden
	}

	destination, err := s.accountRepo.FindAccountByNumberForUpdate(ctx, tx, destNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, ErrDestinationAccountNotFound
		}
		return nil, nil, err
	}

	if source.Balance.LessThan(amount) {
		return nil, nil, ErrInsufficientFunds
	}

	sourceBalance, err := s.accountRepo.AdjustAccountBalanceInTx(ctx, tx, source.AccountID, amount.Neg())
	if err != nil {
		return nil, nil, err
	}
	destBalance, err := s.accountRepo.AdjustAccountBalanceInTx(ctx, tx, destination.AccountID, amount)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	outRecord := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     source.AccountID,
		Kind:          domain.TransferOut,
		Amount:        amount,
		CreatedAt:     now,
	}
	inRecord := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     destination.AccountID,
		Kind:          domain.TransferIn,
		Amount:        amount,
		CreatedAt:     now,
	}
	if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, outRecord); err != nil {
		return nil, nil, err
	}
	if err := s.transactionRepo.SaveTransactionInTx(ctx, tx, inRecord); err != nil {
		return nil, nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	logger.Info("transfer committed",
		"sourceAccountID", source.AccountID,
		"destinationAccountID", destination.AccountID,
		"amount", amount.String(),
	)

	source.Balance = sourceBalance
	destination.Balance = destBalance
	return source, destination, nil
}

// Balance returns the current balance of the account.
func (s *ledgerService) Balance(ctx context.Context, callerClientID string, accountNumber string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	if account.ClientID != callerClientID {
		return decimal.Zero, apperrors.ErrForbidden
	}
	return account.Balance, nil
}

// Statement returns all transactions for the account, most recent first.
func (s *ledgerService) Statement(ctx context.Context, callerClientID string, accountNumber string) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account.ClientID != callerClientID {
		return nil, apperrors.ErrForbidden
	}
	return s.transactionRepo.ListTransactionsByAccountID(ctx, account.AccountID)
}
