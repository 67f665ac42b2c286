package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database representation of a bank account.
// balance is DECIMAL(19,2) with a CHECK (balance >= 0) constraint.
type Account struct {
	AccountID string          `db:"account_id"`
	ClientID  string          `db:"client_id"`
	Number    string          `db:"number"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
}
