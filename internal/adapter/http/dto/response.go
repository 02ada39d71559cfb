package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sharans23/LenDenClub/internal/domain"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// UserResponse represents an account in API responses. The password hash is
// never serialized.
type UserResponse struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email,omitempty"`
	FullName  string          `json:"fullName,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// UserFromDomain converts a domain account to a response.
func UserFromDomain(a *domain.Account) *UserResponse {
	return &UserResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FullName:  a.FullName,
		Phone:     a.Phone,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// AuthResponse represents a successful register or login.
type AuthResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}

// TransferDetails describes a completed transfer.
type TransferDetails struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransferResponse represents a successful transfer.
type TransferResponse struct {
	Message         string          `json:"message"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	TransferDetails TransferDetails `json:"transferDetails"`
}

// TransferResponseFromResult converts a transfer result to a response.
func TransferResponseFromResult(res *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Message:    "Transfer successful",
		NewBalance: res.NewSenderBalance,
		TransferDetails: TransferDetails{
			From:      res.SenderUsername,
			To:        res.ReceiverUsername,
			Amount:    res.Amount,
			Timestamp: res.Timestamp,
		},
	}
}

// TransactionItem represents one row of transaction history.
type TransactionItem struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Counterparty string          `json:"counterparty"`
	Timestamp    time.Time       `json:"timestamp"`
	Status       string          `json:"status"`
}

// TransactionsResponse represents a transaction history listing.
type TransactionsResponse struct {
	Success      bool              `json:"success"`
	Count        int               `json:"count"`
	Transactions []TransactionItem `json:"transactions"`
}

// TransactionsFromHistory converts history rows to a response.
func TransactionsFromHistory(rows []domain.HistoryRow) *TransactionsResponse {
	items := make([]TransactionItem, len(rows))
	for i, row := range rows {
		items[i] = TransactionItem{
			ID:           row.EntryID,
			Type:         string(row.Direction),
			Amount:       row.Amount,
			Counterparty: row.Counterparty,
			Timestamp:    row.Timestamp,
			Status:       string(row.Status),
		}
	}
	return &TransactionsResponse{
		Success:      true,
		Count:        len(items),
		Transactions: items,
	}
}

// BalanceResponse represents a balance lookup.
type BalanceResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	Username string          `json:"username"`
}

// ConsistencyResponse represents a ledger consistency report.
type ConsistencyResponse struct {
	Consistent       bool            `json:"consistent"`
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	TransferVolume   decimal.Decimal `json:"transferVolume"`
	NegativeAccounts int64           `json:"negativeAccounts"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
