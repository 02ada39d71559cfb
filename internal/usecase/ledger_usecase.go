package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerUseCase exposes ledger-wide operational checks.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// ConsistencyReport summarizes ledger-wide invariant checks.
type ConsistencyReport struct {
	TotalBalance     decimal.Decimal
	TransferVolume   decimal.Decimal
	NegativeAccounts int64
	Consistent       bool
}

// CheckConsistency verifies the non-negativity invariant across all accounts
// and reports aggregate balance and successful transfer volume.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	totalBalance, volume, err := uc.ledgerRepo.SumBalancesAndVolume(ctx)
	if err != nil {
		return nil, err
	}

	negative, err := uc.ledgerRepo.CountNegativeBalances(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		TotalBalance:     totalBalance,
		TransferVolume:   volume,
		NegativeAccounts: negative,
		Consistent:       negative == 0,
	}, nil
}
