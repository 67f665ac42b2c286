package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/contasapp/banco_backend/internal/apperrors"
	"github.com/contasapp/banco_backend/internal/core/domain"
	portssvc "github.com/contasapp/banco_backend/internal/core/ports/services"
	"github.com/contasapp/banco_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
}

func (suite *AccountServiceTestSuite) TestListAccountsForClient() {
	ctx := context.Background()
	clientID := uuid.NewString()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), ClientID: clientID, Number: "11111111", Balance: decimal.NewFromFloat(10.50), CreatedAt: time.Now().UTC()},
		{AccountID: uuid.NewString(), ClientID: clientID, Number: "22222222", Balance: decimal.Zero, CreatedAt: time.Now().UTC()},
	}
	suite.mockAccountRepo.On("FindAccountsByClientID", ctx, clientID).Return(accounts, nil).Once()

	got, err := suite.service.ListAccountsForClient(ctx, clientID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByNumber_Success() {
	ctx := context.Background()
	clientID := uuid.NewString()
	account := domain.Account{AccountID: uuid.NewString(), ClientID: clientID, Number: "11111111", Balance: decimal.NewFromFloat(10.50)}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, account.Number).Return(&account, nil).Once()

	got, err := suite.service.GetAccountByNumber(ctx, clientID, account.Number)

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, got.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccountByNumber_Forbidden() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), ClientID: uuid.NewString(), Number: "11111111"}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, account.Number).Return(&account, nil).Once()

	got, err := suite.service.GetAccountByNumber(ctx, uuid.NewString(), account.Number)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(got)
}

func (suite *AccountServiceTestSuite) TestGetAccountByNumber_NotFound() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "00000000").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetAccountByNumber(ctx, uuid.NewString(), "00000000")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
