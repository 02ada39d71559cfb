package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction labels a history row relative to the queried account.
type Direction string

const (
	// DirectionDebit means money left the queried account.
	DirectionDebit Direction = "DEBIT"

	// DirectionCredit means money arrived at the queried account.
	DirectionCredit Direction = "CREDIT"
)

// HistoryRow is a ledger entry viewed from one account's perspective,
// with the counterparty resolved to a display name.
type HistoryRow struct {
	EntryID      int64
	Direction    Direction
	Amount       decimal.Decimal
	Counterparty string
	Timestamp    time.Time
	Status       LedgerStatus
	SenderID     int64
	ReceiverID   int64
}
