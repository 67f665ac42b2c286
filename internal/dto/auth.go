package dto

import (
	"time"

	"github.com/contasapp/banco_backend/internal/core/domain"
)

// RegisterRequest defines the data needed to register a client and
// provision its first account.
type RegisterRequest struct {
	CPF       string     `json:"cpf" binding:"required,cpf"`
	Name      string     `json:"name" binding:"required"`
	Email     string     `json:"email" binding:"required,email"`
	BirthDate *time.Time `json:"birthDate" time_format:"2006-01-02"` // Optional
	Password  string     `json:"password" binding:"required,min=6"`
}

// RegistrationResult carries everything produced by a successful registration.
type RegistrationResult struct {
	Client        domain.Client
	Account       domain.Account
	Credential    string
	CredentialExp time.Time
}

// LoginRequest defines the credentials for authenticating a client.
type LoginRequest struct {
	CPF      string `json:"cpf" binding:"required,cpf"`
	Password string `json:"password" binding:"required"`
}

// ClientResponse defines the client data returned to callers.
// The credential hash is never exposed.
type ClientResponse struct {
	ClientID  string     `json:"clientID"`
	CPF       string     `json:"cpf"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AuthResponse defines the payload returned after registration or login.
type AuthResponse struct {
	Client    ClientResponse   `json:"client"`
	Account   *AccountResponse `json:"account,omitempty"` // Set on registration only
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:  c.ClientID,
		CPF:       c.CPF,
		Name:      c.Name,
		Email:     c.Email,
		BirthDate: c.BirthDate,
		CreatedAt: c.CreatedAt,
	}
}
