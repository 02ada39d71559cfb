package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sharans23/LenDenClub/internal/domain"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// MockAccountRepository is a stateful mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	nextID   int64

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id int64) (*domain.Account, error)
	GetByUsernameFunc     func(ctx context.Context, username string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	UpdateProfileFunc     func(ctx context.Context, account *domain.Account) error
	UpdatePasswordFunc    func(ctx context.Context, id int64, hashedPassword string, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[int64]*domain.Account),
	}
}

// Seed inserts an account directly, assigning an id when unset.
func (m *MockAccountRepository) Seed(account *domain.Account) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	} else if account.ID > m.nextID {
		m.nextID = account.ID
	}
	// Store a copy so later caller mutations cannot reach stored state.
	copied := *account
	m.accounts[account.ID] = &copied
	return account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.Seed(account)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Username == username {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateProfile(ctx context.Context, account *domain.Account) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if stored, ok := m.accounts[account.ID]; ok {
		stored.Email = account.Email
		stored.FullName = account.FullName
		stored.Phone = account.Phone
		stored.UpdatedAt = account.UpdatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string, updatedAt time.Time) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hashedPassword, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.HashedPassword = hashedPassword
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

// Balance returns the stored balance for assertions.
func (m *MockAccountRepository) Balance(id int64) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Balance
	}
	return decimal.Zero
}

// MockLedgerRepository is a stateful mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry
	nextID  int64

	AppendFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) (int64, error)
	AppendStandaloneFunc func(ctx context.Context, entry *domain.LedgerEntry) (int64, error)
	ListByAccountFunc    func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.LedgerEntry, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) append(entry *domain.LedgerEntry) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	copied := *entry
	copied.ID = m.nextID
	m.entries = append(m.entries, &copied)
	return copied.ID
}

func (m *MockLedgerRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) (int64, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, entry)
	}
	return m.append(entry), nil
}

func (m *MockLedgerRepository) AppendStandalone(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	if m.AppendStandaloneFunc != nil {
		return m.AppendStandaloneFunc(ctx, entry)
	}
	return m.append(entry), nil
}

func (m *MockLedgerRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.LedgerEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if e.SenderID == accountID || e.ReceiverID == accountID {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockLedgerRepository) SumBalancesAndVolume(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	volume := decimal.Zero
	for _, e := range m.entries {
		if e.Status == domain.StatusSuccess {
			volume = volume.Add(e.Amount)
		}
	}
	return decimal.Zero, volume, nil
}

func (m *MockLedgerRepository) CountNegativeBalances(ctx context.Context) (int64, error) {
	return 0, nil
}

// Entries returns a snapshot of all appended entries for assertions.
func (m *MockLedgerRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot := make([]*domain.LedgerEntry, len(m.entries))
	copy(snapshot, m.entries)
	return snapshot
}

// CountByStatus counts entries referencing accountID as sender with the
// given status.
func (m *MockLedgerRepository) CountByStatus(senderID int64, status domain.LedgerStatus) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, e := range m.entries {
		if e.SenderID == senderID && e.Status == status {
			count++
		}
	}
	return count
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	release sync.Once
	unlock  func()
}

func (t *MockTransaction) done() {
	if t.unlock != nil {
		t.release.Do(t.unlock)
	}
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	defer t.done()
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	defer t.done()
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
// With Serialize set, Begin blocks until the previous transaction commits or
// rolls back, emulating the row-lock serialization of conflicting units of
// work.
type MockTransactionManager struct {
	Serialize bool
	mu        sync.Mutex

	BeginFunc  func(ctx context.Context) (usecase.Transaction, error)
	CommitFunc func(ctx context.Context) error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{CommitFunc: m.CommitFunc}
	if m.Serialize {
		m.mu.Lock()
		tx.unlock = m.mu.Unlock
	}
	return tx, nil
}

// NoopRetrier runs the operation exactly once.
type NoopRetrier struct{}

func (NoopRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
