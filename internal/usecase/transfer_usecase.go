package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Sharans23/LenDenClub/internal/domain"
)

// TransferUseCase moves money between two accounts atomically: both balance
// writes and the SUCCESS ledger row commit as one unit of work, or none do.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	retrier     Retrier
}

// NewTransferUseCase creates a new TransferUseCase. retrier may be nil, in
// which case transient storage errors are not retried.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		retrier:     retrier,
	}
}

// TransferInput represents a validated transfer request. SenderID is the
// authenticated identity supplied by the caller.
type TransferInput struct {
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
}

// TransferResult is returned after a committed transfer.
type TransferResult struct {
	LedgerEntryID    int64
	NewSenderBalance decimal.Decimal
	SenderUsername   string
	ReceiverUsername string
	Amount           decimal.Decimal
	Timestamp        time.Time
}

// Transfer debits the sender, credits the receiver, and appends a SUCCESS
// ledger row, all inside one transaction with both account rows locked in
// ascending-id order.
//
// Request-shape and business-rule failures never touch the ledger. A storage
// failure after validation passed is recorded as a FAILED entry before the
// error is surfaced, so the audit trail distinguishes "never attempted" from
// "attempted and failed".
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if err := domain.ValidateAccountID(input.SenderID); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountID(input.ReceiverID); err != nil {
		return nil, err
	}

	if input.SenderID == input.ReceiverID {
		return nil, domain.ErrSelfTransfer
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var (
		result    *TransferResult
		attempted bool
	)

	run := func() error {
		r, pastValidation, err := uc.execute(ctx, input)
		if pastValidation {
			attempted = true
		}
		if err != nil {
			return err
		}

		result = r

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, run)
	} else {
		err = run()
	}

	if err != nil {
		if attempted {
			uc.recordFailedAttempt(ctx, input)
		}

		return nil, err
	}

	return result, nil
}

// execute runs one attempt of the atomic unit of work. The returned bool
// reports whether validation against the loaded accounts had passed, which
// decides whether a FAILED ledger entry is owed on error.
func (uc *TransferUseCase) execute(ctx context.Context, input TransferInput) (*TransferResult, bool, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in ascending-id order to prevent deadlock between
	// two transfers targeting each other's accounts.
	ids := []int64{input.SenderID, input.ReceiverID}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, false, err
	}

	var sender, receiver *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.SenderID:
			sender = a
		case input.ReceiverID:
			receiver = a
		}
	}

	if receiver == nil {
		return nil, false, domain.ErrReceiverNotFound
	}

	if sender == nil {
		return nil, false, domain.ErrAccountNotFound
	}

	if err := sender.CanDebit(input.Amount); err != nil {
		return nil, false, err
	}

	// Validation passed; from here on every failure is audited.
	now := time.Now().UTC()
	newSenderBalance := sender.ApplyDebit(input.Amount)
	newReceiverBalance := receiver.ApplyCredit(input.Amount)

	if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, newSenderBalance, now); err != nil {
		return nil, true, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, receiver.ID, newReceiverBalance, now); err != nil {
		return nil, true, err
	}

	entryID, err := uc.ledgerRepo.Append(ctx, tx, &domain.LedgerEntry{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Amount:     input.Amount,
		Timestamp:  now,
		Status:     domain.StatusSuccess,
	})
	if err != nil {
		return nil, true, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, true, err
	}

	return &TransferResult{
		LedgerEntryID:    entryID,
		NewSenderBalance: newSenderBalance,
		SenderUsername:   sender.Username,
		ReceiverUsername: receiver.Username,
		Amount:           input.Amount,
		Timestamp:        now,
	}, true, nil
}

// recordFailedAttempt appends a FAILED ledger entry outside the aborted
// transaction. Best effort: a failure here is logged, not surfaced, so the
// caller still sees the original storage error.
func (uc *TransferUseCase) recordFailedAttempt(ctx context.Context, input TransferInput) {
	_, err := uc.ledgerRepo.AppendStandalone(ctx, &domain.LedgerEntry{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Amount:     input.Amount,
		Timestamp:  time.Now().UTC(),
		Status:     domain.StatusFailed,
	})
	if err != nil {
		log.Error().
			Err(err).
			Int64("sender_id", input.SenderID).
			Int64("receiver_id", input.ReceiverID).
			Str("amount", input.Amount.String()).
			Msg("failed to record FAILED ledger entry")
	}
}
