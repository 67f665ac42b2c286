package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account within the core domain.
// This is the primary representation used by services.
//
// Balance is only ever mutated by the ledger engine inside a database
// transaction; it is never negative.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	ClientID  string          `json:"clientID"`  // FK -> clients.client_id (NON-NULL)
	Number    string          `json:"number"`    // System-generated 8-digit string, unique
	Balance   decimal.Decimal `json:"balance"`   // Fixed-point, scale 2, >= 0.00
	CreatedAt time.Time       `json:"createdAt"`
}
