package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	postgresrepo "github.com/Sharans23/LenDenClub/internal/adapter/repository/postgres"
	"github.com/Sharans23/LenDenClub/internal/domain"
	"github.com/Sharans23/LenDenClub/internal/usecase"
	"github.com/Sharans23/LenDenClub/tests/testutil"
)

func TestHistoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	transferUC, accountRepo, ledgerRepo := newTransferUseCase(db)
	historyUC := usecase.NewHistoryUseCase(ledgerRepo, accountRepo, nil)

	alice := db.CreateTestAccount(ctx, "alice", decimal.RequireFromString("5000.00"))
	bob := db.CreateTestAccount(ctx, "bob", decimal.RequireFromString("3000.00"))

	mustTransfer := func(from, to int64, amount string) {
		t.Helper()
		_, err := transferUC.Transfer(ctx, usecase.TransferInput{
			SenderID:   from,
			ReceiverID: to,
			Amount:     decimal.RequireFromString(amount),
		})
		if err != nil {
			t.Fatalf("Transfer: %v", err)
		}
	}

	mustTransfer(alice.ID, bob.ID, "40.00")
	mustTransfer(bob.ID, alice.ID, "15.00")

	t.Run("both parties see the same transfers from opposite sides", func(t *testing.T) {
		aliceRows, err := historyUC.GetHistory(ctx, alice.ID, 10, 0)
		if err != nil {
			t.Fatalf("GetHistory(alice): %v", err)
		}
		bobRows, err := historyUC.GetHistory(ctx, bob.ID, 10, 0)
		if err != nil {
			t.Fatalf("GetHistory(bob): %v", err)
		}

		if len(aliceRows) != 2 || len(bobRows) != 2 {
			t.Fatalf("expected 2 rows each, got %d and %d", len(aliceRows), len(bobRows))
		}

		// Newest first: the 15.00 transfer from bob.
		if aliceRows[0].Direction != domain.DirectionCredit || aliceRows[0].Counterparty != "bob" {
			t.Errorf("alice first row: %+v", aliceRows[0])
		}
		if aliceRows[1].Direction != domain.DirectionDebit || aliceRows[1].Counterparty != "bob" {
			t.Errorf("alice second row: %+v", aliceRows[1])
		}
		if bobRows[0].Direction != domain.DirectionDebit || bobRows[0].Counterparty != "alice" {
			t.Errorf("bob first row: %+v", bobRows[0])
		}
		if bobRows[1].Direction != domain.DirectionCredit || bobRows[1].Counterparty != "alice" {
			t.Errorf("bob second row: %+v", bobRows[1])
		}

		// Same entry, same amount, same timestamp on both sides.
		if aliceRows[0].EntryID != bobRows[0].EntryID {
			t.Errorf("entry ids differ: %d vs %d", aliceRows[0].EntryID, bobRows[0].EntryID)
		}
		if !aliceRows[0].Amount.Equal(bobRows[0].Amount) {
			t.Errorf("amounts differ: %s vs %s", aliceRows[0].Amount, bobRows[0].Amount)
		}
		if !aliceRows[0].Timestamp.Equal(bobRows[0].Timestamp) {
			t.Errorf("timestamps differ: %s vs %s", aliceRows[0].Timestamp, bobRows[0].Timestamp)
		}
	})

	t.Run("pagination limits and offsets", func(t *testing.T) {
		rows, err := historyUC.GetHistory(ctx, alice.ID, 1, 0)
		if err != nil {
			t.Fatalf("GetHistory: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}

		next, err := historyUC.GetHistory(ctx, alice.ID, 1, 1)
		if err != nil {
			t.Fatalf("GetHistory: %v", err)
		}
		if len(next) != 1 || next[0].EntryID == rows[0].EntryID {
			t.Fatalf("expected the older entry on page 2, got %+v", next)
		}
	})

	t.Run("counterparty falls back when the account is gone", func(t *testing.T) {
		// Write a ledger row that references an account id that does
		// not exist; the username lookup degrades gracefully.
		repo := postgresrepo.NewLedgerRepository(db.Pool)
		_, err := repo.AppendStandalone(ctx, &domain.LedgerEntry{
			SenderID:   alice.ID,
			ReceiverID: 999999,
			Amount:     decimal.RequireFromString("5.00"),
			Timestamp:  time.Now().UTC(),
			Status:     domain.StatusFailed,
		})
		if err != nil {
			t.Fatalf("AppendStandalone: %v", err)
		}

		rows, err := historyUC.GetHistory(ctx, alice.ID, 10, 0)
		if err != nil {
			t.Fatalf("GetHistory: %v", err)
		}
		if rows[0].Counterparty != "User 999999" {
			t.Errorf("counterparty = %q, want %q", rows[0].Counterparty, "User 999999")
		}
		if rows[0].Status != domain.StatusFailed {
			t.Errorf("status = %s, want FAILED", rows[0].Status)
		}
	})
}
