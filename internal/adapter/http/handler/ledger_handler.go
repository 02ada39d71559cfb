package handler

import (
	"net/http"

	"github.com/Sharans23/LenDenClub/internal/adapter/http/dto"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency verifies the non-negativity invariant across all accounts.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyResponse{
		Consistent:       report.Consistent,
		TotalBalance:     report.TotalBalance,
		TransferVolume:   report.TransferVolume,
		NegativeAccounts: report.NegativeAccounts,
	})
}
