package domain

import "time"

// Client represents a registered bank client in the core domain.
// The CPF is immutable after registration and identifies the client for login.
type Client struct {
	ClientID     string     `json:"clientID"` // Primary Key (UUID)
	CPF          string     `json:"cpf"`      // 11 numeric digits, unique
	Name         string     `json:"name"`
	Email        string     `json:"email"` // Unique
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	PasswordHash string     `json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time  `json:"createdAt"`
}
