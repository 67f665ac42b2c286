package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contasapp/banco_backend/internal/apperrors"
	"github.com/contasapp/banco_backend/internal/core/domain"
	portsrepo "github.com/contasapp/banco_backend/internal/core/ports/repositories"
	portssvc "github.com/contasapp/banco_backend/internal/core/ports/services"
	"github.com/contasapp/banco_backend/internal/utils"
)

// authService verifies login credentials and issues signed tokens.
type authService struct {
	clientRepo portsrepo.ClientRepositoryFacade
	jwtSecret  string
	jwtExpiry  time.Duration
	jwtIssuer  string
}

// NewAuthService creates a new AuthService.
func NewAuthService(clientRepo portsrepo.ClientRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		clientRepo: clientRepo,
		jwtSecret:  jwtSecret,
		jwtExpiry:  jwtExpiry,
		jwtIssuer:  jwtIssuer,
	}
}

// Ensure authService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies a CPF/password pair. An unknown CPF and a wrong password
// both return apperrors.ErrUnauthorized so callers cannot probe which
// identifiers are registered.
func (s *authService) Login(ctx context.Context, cpf string, password string) (*domain.Client, string, time.Time, error) {
	client, err := s.clientRepo.FindClientByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.ErrUnauthorized
		}
		return nil, "", time.Time{}, err
	}

	if !utils.CheckPasswordHash(password, client.PasswordHash) {
		return nil, "", time.Time{}, apperrors.ErrUnauthorized
	}

	token, expiresAt, err := s.IssueCredential(ctx, client)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return client, token, expiresAt, nil
}

// IssueCredential creates a signed token whose subject is the client ID.
func (s *authService) IssueCredential(_ context.Context, client *domain.Client) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.jwtExpiry)
	token, err := utils.GenerateJWT(client.ClientID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign credential: %w", err)
	}
	return token, expiresAt, nil
}

// GetClientByID retrieves the client profile for an authenticated caller.
func (s *authService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}
