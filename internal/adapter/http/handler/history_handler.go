package handler

import (
	"net/http"

	"github.com/Sharans23/LenDenClub/internal/adapter/http/dto"
	"github.com/Sharans23/LenDenClub/internal/adapter/http/middleware"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// HistoryHandler handles transaction history requests.
type HistoryHandler struct {
	historyUC *usecase.HistoryUseCase
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC *usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// List returns the authenticated account's transaction history, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	rows, err := h.historyUC.GetHistory(r.Context(), accountID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromHistory(rows))
}
