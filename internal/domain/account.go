package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a registered user holding a cash balance.
type Account struct {
	ID             int64
	Username       string
	HashedPassword string
	Email          string
	FullName       string
	Phone          string
	Balance        decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanDebit checks if the account holds enough balance to be debited by amount.
func (a *Account) CanDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns the new balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the new balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
