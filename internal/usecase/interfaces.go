package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sharans23/LenDenClub/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	// GetByUsername returns (nil, nil) when no account has the username.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	// GetByIDsForUpdate locks the named rows for the duration of tx.
	// Callers must pass ids in ascending order to keep lock acquisition
	// ordered across concurrent transfers.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	UpdateProfile(ctx context.Context, account *domain.Account) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// LedgerRepository defines data access for the append-only audit log.
type LedgerRepository interface {
	// Append writes an entry inside tx and returns the assigned id.
	Append(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) (int64, error)
	// AppendStandalone writes an entry outside any caller transaction.
	// Used to record FAILED attempts after the main unit of work aborted.
	AppendStandalone(ctx context.Context, entry *domain.LedgerEntry) (int64, error)
	// ListByAccount returns entries where the account is sender or
	// receiver, ordered by timestamp descending.
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.LedgerEntry, error)
	// SumBalancesAndVolume reports the total of all account balances and
	// the total amount moved by successful transfers.
	SumBalancesAndVolume(ctx context.Context) (totalBalance, successVolume decimal.Decimal, err error)
	// CountNegativeBalances reports how many accounts violate the
	// non-negative balance invariant. Always zero in a healthy ledger.
	CountNegativeBalances(ctx context.Context) (int64, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
