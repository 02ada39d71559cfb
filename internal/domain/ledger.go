package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerStatus is the recorded outcome of a transfer attempt.
type LedgerStatus string

const (
	StatusSuccess LedgerStatus = "SUCCESS"
	StatusFailed  LedgerStatus = "FAILED"
)

// IsValid checks if the status is a known ledger status.
func (s LedgerStatus) IsValid() bool {
	return s == StatusSuccess || s == StatusFailed
}

// LedgerEntry is an immutable audit record of one transfer attempt.
// Entries are append-only; they are never updated or deleted.
type LedgerEntry struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
	Timestamp  time.Time
	Status     LedgerStatus
}
