package models

import "time"

// Client is the database representation of a bank client.
type Client struct {
	ClientID     string     `db:"client_id"`
	CPF          string     `db:"cpf"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	BirthDate    *time.Time `db:"birth_date"` // Nullable
	PasswordHash string     `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
}
