package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contasapp/banco_backend/internal/apperrors"
	"github.com/contasapp/banco_backend/internal/core/domain"
	portsrepo "github.com/contasapp/banco_backend/internal/core/ports/repositories"
	portssvc "github.com/contasapp/banco_backend/internal/core/ports/services"
	"github.com/contasapp/banco_backend/internal/dto"
	"github.com/contasapp/banco_backend/internal/middleware"
	"github.com/contasapp/banco_backend/internal/utils"
)

var ErrMissingField = fmt.Errorf("%w: required field missing", apperrors.ErrValidation)

// maxNumberAttempts bounds the regeneration loop when a freshly generated
// account number collides with an existing one.
const maxNumberAttempts = 10

// registrationService provisions a client identity together with its first
// account and an initial credential.
type registrationService struct {
	clientRepo  portsrepo.ClientRepositoryFacade
	accountRepo portsrepo.AccountRepositoryWithTx
	authSvc     portssvc.AuthSvcFacade
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(clientRepo portsrepo.ClientRepositoryFacade, accountRepo portsrepo.AccountRepositoryWithTx, authSvc portssvc.AuthSvcFacade) portssvc.RegistrationSvcFacade {
	return &registrationService{
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
		authSvc:     authSvc,
	}
}

// Ensure registrationService implements the portssvc.RegistrationSvcFacade interface
var _ portssvc.RegistrationSvcFacade = (*registrationService)(nil)

// Register creates the client, provisions a zero-balance account with a
// unique generated number, and issues a credential bound to the client.
func (s *registrationService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegistrationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CPF == "" || req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingField
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:     uuid.NewString(),
		CPF:          req.CPF,
		Name:         req.Name,
		Email:        req.Email,
		BirthDate:    req.BirthDate,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, err
	}

	account, err := s.provisionAccount(ctx, client.ClientID)
	if err != nil {
		return nil, err
	}

	credential, expiresAt, err := s.authSvc.IssueCredential(ctx, &client)
	if err != nil {
		return nil, err
	}

	logger.Info("client registered",
		"clientID", client.ClientID,
		"accountID", account.AccountID,
	)

	return &dto.RegistrationResult{
		Client:        client,
		Account:       *account,
		Credential:    credential,
		CredentialExp: expiresAt,
	}, nil
}

// provisionAccount creates a zero-balance account, regenerating the account
// number on collision up to maxNumberAttempts times.
func (s *registrationService) provisionAccount(ctx context.Context, clientID string) (*domain.Account, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}

		account := domain.Account{
			AccountID: uuid.NewString(),
			ClientID:  clientID,
			Number:    number,
			Balance:   decimal.Zero,
			CreatedAt: time.Now().UTC(),
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			return &account, nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: could not allocate a unique account number", apperrors.ErrInternal)
}
