package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sharans23/LenDenClub/internal/domain"
)

const usernameCacheTTL = 5 * time.Minute

// HistoryUseCase reconstructs a per-account transaction history from the
// ledger. Read-only over both the ledger and the account store.
type HistoryUseCase struct {
	ledgerRepo  LedgerRepository
	accountRepo AccountRepository
	cache       Cache
}

// NewHistoryUseCase creates a new HistoryUseCase. cache may be nil, in which
// case every counterparty lookup hits the account store.
func NewHistoryUseCase(ledgerRepo LedgerRepository, accountRepo AccountRepository, cache Cache) *HistoryUseCase {
	return &HistoryUseCase{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		cache:       cache,
	}
}

// GetHistory returns ledger entries involving the account, newest first,
// with each row classified as DEBIT or CREDIT relative to the account and
// the counterparty id resolved to a username.
func (uc *HistoryUseCase) GetHistory(ctx context.Context, accountID int64, limit, offset int) ([]domain.HistoryRow, error) {
	if err := domain.ValidateAccountID(accountID); err != nil {
		return nil, err
	}

	limit, offset = domain.ValidatePagination(limit, offset)

	entries, err := uc.ledgerRepo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.HistoryRow, 0, len(entries))
	for _, entry := range entries {
		direction := domain.DirectionCredit
		counterpartyID := entry.SenderID
		if entry.SenderID == accountID {
			direction = domain.DirectionDebit
			counterpartyID = entry.ReceiverID
		}

		rows = append(rows, domain.HistoryRow{
			EntryID:      entry.ID,
			Direction:    direction,
			Amount:       entry.Amount,
			Counterparty: uc.resolveUsername(ctx, counterpartyID),
			Timestamp:    entry.Timestamp,
			Status:       entry.Status,
			SenderID:     entry.SenderID,
			ReceiverID:   entry.ReceiverID,
		})
	}

	return rows, nil
}

// resolveUsername maps an account id to a display name. An account that no
// longer resolves yields "User <id>"; a store failure yields "Unknown".
// Best-effort display decision, never an error.
func (uc *HistoryUseCase) resolveUsername(ctx context.Context, accountID int64) string {
	cacheKey := fmt.Sprintf("username:%d", accountID)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return cached
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Sprintf("User %d", accountID)
		}

		return "Unknown"
	}

	if uc.cache != nil {
		// Cache failures do not degrade the response.
		_ = uc.cache.Set(ctx, cacheKey, account.Username, usernameCacheTTL)
	}

	return account.Username
}
