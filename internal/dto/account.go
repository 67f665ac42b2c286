package dto

import (
	"time"

	"github.com/contasapp/banco_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID string          `json:"accountID"`
	Number    string          `json:"number"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Number:    acc.Number,
		Balance:   acc.Balance,
		CreatedAt: acc.CreatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to response DTOs
func ToListAccountsResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	Number  string          `json:"number"`
	Balance decimal.Decimal `json:"balance"`
}

// TransactionResponse defines the data returned for one statement entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Kind          domain.TransactionKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// StatementResponse defines the data returned for a statement query,
// most recent transaction first.
type StatementResponse struct {
	Number       string                `json:"number"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponses converts domain transactions to DTOs
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = TransactionResponse{
			TransactionID: t.TransactionID,
			Kind:          t.Kind,
			Amount:        t.Amount,
			CreatedAt:     t.CreatedAt,
		}
	}
	return res
}
