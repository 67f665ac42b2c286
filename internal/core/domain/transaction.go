package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a balance-affecting event. The sign of the
// movement is carried by the kind, not by the amount.
type TransactionKind string

const (
	Deposit     TransactionKind = "DEPOSIT"
	Withdrawal  TransactionKind = "WITHDRAWAL"
	TransferOut TransactionKind = "TRANSFER_OUT"
	TransferIn  TransactionKind = "TRANSFER_IN"
)

// SignedAmount returns the amount with the sign implied by the kind:
// deposits and incoming transfers are positive, withdrawals and outgoing
// transfers negative.
func (t Transaction) SignedAmount() decimal.Decimal {
	switch t.Kind {
	case Withdrawal, TransferOut:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}

// Transaction is an immutable record of one balance-affecting event on a
// single account. A transfer produces two records: TRANSFER_OUT on the
// source account and TRANSFER_IN on the destination.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	AccountID     string          `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"` // Always positive; precise decimal type
	CreatedAt     time.Time       `json:"createdAt"`
}
