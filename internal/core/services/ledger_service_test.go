package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/contasapp/banco_backend/internal/apperrors"
	"github.com/contasapp/banco_backend/internal/core/domain"
	portssvc "github.com/contasapp/banco_backend/internal/core/ports/services"
	"github.com/contasapp/banco_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.LedgerSvcFacade

	clientID string
	account  domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockTxnRepo)

	suite.clientID = uuid.NewString()
	suite.account = domain.Account{
		AccountID: uuid.NewString(),
		ClientID:  suite.clientID,
		Number:    "12345678",
		Balance:   decimal.NewFromFloat(100.00),
		CreatedAt: time.Now().UTC(),
	}
}

func (suite *LedgerServiceTestSuite) expectTx() {
	suite.mockAccountRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockAccountRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
}

// --- Deposit ---

func (suite *LedgerServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(50.00)
	newBalance := decimal.NewFromFloat(150.00)

	suite.expectTx()
	acc := suite.account
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, acc.Number).Return(&acc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", mock.Anything, mock.Anything, acc.AccountID, amount).Return(newBalance, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.Deposit && t.Amount.Equal(amount) && t.AccountID == acc.AccountID
	})).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.Deposit(ctx, suite.clientID, acc.Number, amount)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Balance.Equal(newBalance))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeposit_InvalidAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-5.00)} {
		result, err := suite.service.Deposit(ctx, suite.clientID, suite.account.Number, amount)

		suite.Require().ErrorIs(err, services.ErrInvalidAmount)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(result)
	}

	// Rejected before any storage interaction
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeposit_AccountNotFound() {
	ctx := context.Background()

	suite.expectTx()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, "00000000").Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.Deposit(ctx, suite.clientID, "00000000", decimal.NewFromFloat(10.00))

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(result)
	suite.mockAccountRepo.AssertCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeposit_Forbidden() {
	ctx := context.Background()
	otherClientID := uuid.NewString()

	suite.expectTx()
	acc := suite.account
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, acc.Number).Return(&acc, nil).Once()

	result, err := suite.service.Deposit(ctx, otherClientID, acc.Number, decimal.NewFromFloat(10.00))

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustAccountBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- Withdraw ---

func (suite *LedgerServiceTestSuite) TestWithdraw_Success() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(40.00)
	newBalance := decimal.NewFromFloat(60.00)

	suite.expectTx()
	acc := suite.account
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, acc.Number).Return(&acc, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", mock.Anything, mock.Anything, acc.AccountID, amount.Neg()).Return(newBalance, nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.Withdrawal && t.Amount.Equal(amount)
	})).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.Withdraw(ctx, suite.clientID, acc.Number, amount)

	suite.Require().NoError(err)
	suite.True(result.Balance.Equal(newBalance))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestWithdraw_InsufficientFunds() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(100.01)

	suite.expectTx()
	acc := suite.account
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, acc.Number).Return(&acc, nil).Once()

	result, err := suite.service.Withdraw(ctx, suite.clientID, acc.Number, amount)

	suite.Require().ErrorIs(err, services.ErrInsufficientFunds)
	suite.Nil(result)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustAccountBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(25.00)

	source := suite.account
	dest := domain.Account{
		AccountID: uuid.NewString(),
		ClientID:  uuid.NewString(),
		Number:    "87654321",
		Balance:   decimal.NewFromFloat(5.00),
		CreatedAt: time.Now().UTC(),
	}

	suite.expectTx()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, source.Number).Return(&source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, dest.Number).Return(&dest, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", mock.Anything, mock.Anything, source.AccountID, amount.Neg()).Return(decimal.NewFromFloat(75.00), nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", mock.Anything, mock.Anything, dest.AccountID, amount).Return(decimal.NewFromFloat(30.00), nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.TransferOut && t.AccountID == source.AccountID && t.Amount.Equal(amount)
	})).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.TransferIn && t.AccountID == dest.AccountID && t.Amount.Equal(amount)
	})).Return(nil).Once()
	suite.mockAccountRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	gotSource, gotDest, err := suite.service.Transfer(ctx, suite.clientID, source.Number, dest.Number, amount)

	suite.Require().NoError(err)
	suite.True(gotSource.Balance.Equal(decimal.NewFromFloat(75.00)))
	suite.True(gotDest.Balance.Equal(decimal.NewFromFloat(30.00)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameAccount() {
	ctx := context.Background()

	_, _, err := suite.service.Transfer(ctx, suite.clientID, "12345678", "12345678", decimal.NewFromFloat(10.00))

	suite.Require().ErrorIs(err, services.ErrSameAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SourceNotFound() {
	ctx := context.Background()

	suite.expectTx()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, "00000000").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Transfer(ctx, suite.clientID, "00000000", "87654321", decimal.NewFromFloat(10.00))

	suite.Require().ErrorIs(err, services.ErrSourceAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestTransfer_DestinationNotFound() {
	ctx := context.Background()

	suite.expectTx()
	source := suite.account
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, source.Number).Return(&source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, "00000000").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Transfer(ctx, suite.clientID, source.Number, "00000000", decimal.NewFromFloat(10.00))

	suite.Require().ErrorIs(err, services.ErrDestinationAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustAccountBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFunds() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(500.00)

	source := suite.account
	dest := domain.Account{AccountID: uuid.NewString(), ClientID: uuid.NewString(), Number: "87654321", Balance: decimal.Zero}

	suite.expectTx()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, source.Number).Return(&source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, dest.Number).Return(&dest, nil).Once()

	_, _, err := suite.service.Transfer(ctx, suite.clientID, source.Number, dest.Number, amount)

	suite.Require().ErrorIs(err, services.ErrInsufficientFunds)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "AdjustAccountBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_AppendFailureRollsBack() {
	ctx := context.Background()
	amount := decimal.NewFromFloat(25.00)

	source := suite.account
	dest := domain.Account{AccountID: uuid.NewString(), ClientID: uuid.NewString(), Number: "87654321", Balance: decimal.Zero}

	suite.expectTx()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, source.Number).Return(&source, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumberForUpdate", mock.Anything, mock.Anything, dest.Number).Return(&dest, nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", mock.Anything, mock.Anything, source.AccountID, amount.Neg()).Return(decimal.NewFromFloat(75.00), nil).Once()
	suite.mockAccountRepo.On("AdjustAccountBalanceInTx", mock.Anything, mock.Anything, dest.AccountID, amount).Return(decimal.NewFromFloat(25.00), nil).Once()
	suite.mockTxnRepo.On("SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()

	_, _, err := suite.service.Transfer(ctx, suite.clientID, source.Number, dest.Number, amount)

	suite.Require().Error(err)
	suite.mockAccountRepo.AssertCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *LedgerServiceTestSuite) TestBalance_Success() {
	ctx := context.Background()
	acc := suite.account
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, acc.Number).Return(&acc, nil).Once()

	balance, err := suite.service.Balance(ctx, suite.clientID, acc.Number)

	suite.Require().NoError(err)
	suite.True(balance.Equal(acc.Balance))
}

func (suite *LedgerServiceTestSuite) TestBalance_Forbidden() {
	ctx := context.Background()
	acc := suite.account
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, acc.Number).Return(&acc, nil).Once()

	_, err := suite.service.Balance(ctx, uuid.NewString(), acc.Number)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *LedgerServiceTestSuite) TestStatement_Success() {
	ctx := context.Background()
	acc := suite.account
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: acc.AccountID, Kind: domain.Withdrawal, Amount: decimal.NewFromFloat(20.00)},
		{TransactionID: uuid.NewString(), AccountID: acc.AccountID, Kind: domain.Deposit, Amount: decimal.NewFromFloat(120.00)},
	}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, acc.Number).Return(&acc, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByAccountID", ctx, acc.AccountID).Return(txns, nil).Once()

	result, err := suite.service.Statement(ctx, suite.clientID, acc.Number)

	suite.Require().NoError(err)
	suite.Len(result, 2)
	suite.Equal(domain.Withdrawal, result[0].Kind)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

// --- Concurrency: conservation of money ---

// fakeTx is a minimal pgx.Tx used by the in-memory store below.
type fakeTx struct {
	done bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (t *fakeTx) Commit(ctx context.Context) error          { return nil }
func (t *fakeTx) Rollback(ctx context.Context) error        { return nil }
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                              { return nil }

// fakeLedgerStore is an in-memory account and transaction store that
// serializes transactions with a mutex, mimicking row locks held until
// commit or rollback.
type fakeLedgerStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account // keyed by number
	txns     []domain.Transaction

	snapshot    map[string]decimal.Decimal
	txnCheckpnt int
}

func newFakeLedgerStore(accounts ...domain.Account) *fakeLedgerStore {
	s := &fakeLedgerStore{accounts: make(map[string]*domain.Account)}
	for i := range accounts {
		acc := accounts[i]
		s.accounts[acc.Number] = &acc
	}
	return s
}

func (s *fakeLedgerStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	s.snapshot = make(map[string]decimal.Decimal, len(s.accounts))
	for number, acc := range s.accounts {
		s.snapshot[number] = acc.Balance
	}
	s.txnCheckpnt = len(s.txns)
	return &fakeTx{}, nil
}

func (s *fakeLedgerStore) Commit(ctx context.Context, tx pgx.Tx) error {
	tx.(*fakeTx).done = true
	s.mu.Unlock()
	return nil
}

func (s *fakeLedgerStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	ft := tx.(*fakeTx)
	if ft.done {
		return nil
	}
	ft.done = true
	for number, balance := range s.snapshot {
		s.accounts[number].Balance = balance
	}
	s.txns = s.txns[:s.txnCheckpnt]
	s.mu.Unlock()
	return nil
}

func (s *fakeLedgerStore) SaveAccount(ctx context.Context, account domain.Account) error {
	return nil
}

func (s *fakeLedgerStore) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[number]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *acc
	return &copied, nil
}

func (s *fakeLedgerStore) FindAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error) {
	return nil, nil
}

func (s *fakeLedgerStore) FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, number string) (*domain.Account, error) {
	acc, ok := s.accounts[number]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *acc
	return &copied, nil
}

func (s *fakeLedgerStore) AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal) (decimal.Decimal, error) {
	for _, acc := range s.accounts {
		if acc.AccountID == accountID {
			acc.Balance = acc.Balance.Add(delta)
			if acc.Balance.IsNegative() {
				return decimal.Zero, fmt.Errorf("%w: negative balance", apperrors.ErrValidation)
			}
			return acc.Balance, nil
		}
	}
	return decimal.Zero, apperrors.ErrNotFound
}

func (s *fakeLedgerStore) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	s.txns = append(s.txns, txn)
	return nil
}

func (s *fakeLedgerStore) ListTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Transaction
	for i := len(s.txns) - 1; i >= 0; i-- {
		if s.txns[i].AccountID == accountID {
			result = append(result, s.txns[i])
		}
	}
	return result, nil
}

// TestTransfer_ConcurrentConservation runs crossed transfers between two
// accounts from many goroutines and verifies that no money is created or
// destroyed and that each balance matches its transaction log.
func TestTransfer_ConcurrentConservation(t *testing.T) {
	clientA := uuid.NewString()
	clientB := uuid.NewString()
	accA := domain.Account{AccountID: uuid.NewString(), ClientID: clientA, Number: "11111111", Balance: decimal.NewFromInt(1000)}
	accB := domain.Account{AccountID: uuid.NewString(), ClientID: clientB, Number: "22222222", Balance: decimal.NewFromInt(1000)}

	store := newFakeLedgerStore(accA, accB)
	svc := services.NewLedgerService(store, store)

	ctx := context.Background()
	amount := decimal.NewFromInt(10)

	const workers = 16
	const transfersPerWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < transfersPerWorker; i++ {
				if worker%2 == 0 {
					_, _, _ = svc.Transfer(ctx, clientA, accA.Number, accB.Number, amount)
				} else {
					_, _, _ = svc.Transfer(ctx, clientB, accB.Number, accA.Number, amount)
				}
			}
		}(w)
	}
	wg.Wait()

	finalA, err := store.FindAccountByNumber(ctx, accA.Number)
	require.NoError(t, err)
	finalB, err := store.FindAccountByNumber(ctx, accB.Number)
	require.NoError(t, err)

	total := finalA.Balance.Add(finalB.Balance)
	assert.True(t, total.Equal(decimal.NewFromInt(2000)), "total money changed: %s", total)
	assert.False(t, finalA.Balance.IsNegative())
	assert.False(t, finalB.Balance.IsNegative())

	for _, acc := range []*domain.Account{finalA, finalB} {
		txns, err := store.ListTransactionsByAccountID(ctx, acc.AccountID)
		require.NoError(t, err)
		sum := decimal.NewFromInt(1000)
		for _, txn := range txns {
			sum = sum.Add(txn.SignedAmount())
		}
		assert.True(t, acc.Balance.Equal(sum), "balance %s does not match transaction log sum %s", acc.Balance, sum)
	}
}
