package dto

import "github.com/shopspring/decimal"

// DepositRequest defines the data for a deposit operation.
// Amount positivity is re-validated by the ledger engine.
type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,len=8,numeric"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// WithdrawRequest defines the data for a withdrawal operation.
type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,len=8,numeric"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest defines the data for a transfer between two accounts.
type TransferRequest struct {
	SourceNumber      string          `json:"sourceNumber" binding:"required,len=8,numeric"`
	DestinationNumber string          `json:"destinationNumber" binding:"required,len=8,numeric"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
}

// TransferResponse returns both post-operation account snapshots.
type TransferResponse struct {
	Source      AccountResponse `json:"source"`
	Destination AccountResponse `json:"destination"`
}
