package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/Sharans23/LenDenClub/internal/domain"
	"github.com/Sharans23/LenDenClub/internal/usecase"
	"github.com/Sharans23/LenDenClub/internal/usecase/mocks"
)

func TestGetHistorySymmetry(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	transferUC := usecase.NewTransferUseCase(mocks.NewMockTransactionManager(), accRepo, ledgerRepo, mocks.NoopRetrier{})
	historyUC := usecase.NewHistoryUseCase(ledgerRepo, accRepo, nil)

	accRepo.Seed(&domain.Account{ID: 1, Username: "alice", Balance: decimal.RequireFromString("5000.00")})
	accRepo.Seed(&domain.Account{ID: 2, Username: "bob", Balance: decimal.RequireFromString("3000.00")})

	result, err := transferUC.Transfer(context.Background(), usecase.TransferInput{
		SenderID:   1,
		ReceiverID: 2,
		Amount:     decimal.RequireFromString("100.00"),
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	aliceHistory, err := historyUC.GetHistory(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("alice history failed: %v", err)
	}
	bobHistory, err := historyUC.GetHistory(context.Background(), 2, 0, 0)
	if err != nil {
		t.Fatalf("bob history failed: %v", err)
	}

	if len(aliceHistory) != 1 || len(bobHistory) != 1 {
		t.Fatalf("expected one row each, got %d and %d", len(aliceHistory), len(bobHistory))
	}

	debit, credit := aliceHistory[0], bobHistory[0]
	if debit.Direction != domain.DirectionDebit {
		t.Errorf("expected DEBIT for sender, got %s", debit.Direction)
	}
	if credit.Direction != domain.DirectionCredit {
		t.Errorf("expected CREDIT for receiver, got %s", credit.Direction)
	}
	if debit.Counterparty != "bob" || credit.Counterparty != "alice" {
		t.Errorf("unexpected counterparties: %q / %q", debit.Counterparty, credit.Counterparty)
	}
	if !debit.Amount.Equal(credit.Amount) {
		t.Errorf("amounts differ: %s vs %s", debit.Amount, credit.Amount)
	}
	if !debit.Timestamp.Equal(credit.Timestamp) || !debit.Timestamp.Equal(result.Timestamp) {
		t.Error("debit and credit rows do not share the transfer timestamp")
	}
}

func TestGetHistoryOrdersNewestFirst(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	transferUC := usecase.NewTransferUseCase(mocks.NewMockTransactionManager(), accRepo, ledgerRepo, mocks.NoopRetrier{})
	historyUC := usecase.NewHistoryUseCase(ledgerRepo, accRepo, nil)

	accRepo.Seed(&domain.Account{ID: 1, Username: "alice", Balance: decimal.RequireFromString("5000.00")})
	accRepo.Seed(&domain.Account{ID: 2, Username: "bob", Balance: decimal.RequireFromString("3000.00")})

	for _, a := range []string{"10.00", "20.00", "30.00"} {
		if _, err := transferUC.Transfer(context.Background(), usecase.TransferInput{
			SenderID:   1,
			ReceiverID: 2,
			Amount:     decimal.RequireFromString(a),
		}); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
	}

	rows, err := historyUC.GetHistory(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].Timestamp.After(rows[i-1].Timestamp) {
			t.Fatalf("rows not ordered newest first at index %d", i)
		}
	}
	if !rows[0].Amount.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("expected newest row first, got amount %s", rows[0].Amount)
	}
}

func TestGetHistoryCounterpartyFallback(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	historyUC := usecase.NewHistoryUseCase(ledgerRepo, accRepo, nil)

	accRepo.Seed(&domain.Account{ID: 1, Username: "alice", Balance: decimal.RequireFromString("100.00")})

	// Entry whose counterparty no longer resolves.
	if _, err := ledgerRepo.AppendStandalone(context.Background(), &domain.LedgerEntry{
		SenderID:   1,
		ReceiverID: 42,
		Amount:     decimal.RequireFromString("5.00"),
		Timestamp:  time.Now().UTC(),
		Status:     domain.StatusSuccess,
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	rows, err := historyUC.GetHistory(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].Counterparty != "User 42" {
		t.Errorf("expected placeholder 'User 42', got %q", rows[0].Counterparty)
	}

	// A store failure degrades to "Unknown" instead of erroring.
	accRepo.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Account, error) {
		return nil, errors.New("connection refused")
	}

	rows, err = historyUC.GetHistory(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if rows[0].Counterparty != "Unknown" {
		t.Errorf("expected 'Unknown' on store failure, got %q", rows[0].Counterparty)
	}
}

func TestGetHistoryUsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	cache := mocks.NewMockCache(ctrl)
	historyUC := usecase.NewHistoryUseCase(ledgerRepo, accRepo, cache)

	accRepo.Seed(&domain.Account{ID: 1, Username: "alice", Balance: decimal.RequireFromString("100.00")})
	accRepo.Seed(&domain.Account{ID: 2, Username: "bob", Balance: decimal.Zero})

	if _, err := ledgerRepo.AppendStandalone(context.Background(), &domain.LedgerEntry{
		SenderID:   1,
		ReceiverID: 2,
		Amount:     decimal.RequireFromString("5.00"),
		Timestamp:  time.Now().UTC(),
		Status:     domain.StatusSuccess,
	}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	t.Run("cache miss populates cache", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "username:2").Return("", errors.New("redis: nil"))
		cache.EXPECT().Set(gomock.Any(), "username:2", "bob", gomock.Any()).Return(nil)

		rows, err := historyUC.GetHistory(context.Background(), 1, 0, 0)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if rows[0].Counterparty != "bob" {
			t.Errorf("expected 'bob', got %q", rows[0].Counterparty)
		}
	})

	t.Run("cache hit skips store", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "username:2").Return("bob", nil)

		accRepo.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Account, error) {
			t.Error("account store should not be queried on cache hit")
			return nil, domain.ErrAccountNotFound
		}

		rows, err := historyUC.GetHistory(context.Background(), 1, 0, 0)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if rows[0].Counterparty != "bob" {
			t.Errorf("expected 'bob', got %q", rows[0].Counterparty)
		}
	})
}
