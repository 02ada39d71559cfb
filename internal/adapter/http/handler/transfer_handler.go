package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sharans23/LenDenClub/internal/adapter/http/dto"
	"github.com/Sharans23/LenDenClub/internal/adapter/http/middleware"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/metrics"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// TransferHandler handles transfer requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler. metrics may be nil.
func NewTransferHandler(transferUC *usecase.TransferUseCase, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, metrics: m}
}

// Transfer moves money from the authenticated account to the receiver.
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()
	result, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput(senderID))
	if err != nil {
		if h.metrics != nil {
			h.metrics.TransfersFailed.Inc()
			h.metrics.TransferErrors.WithLabelValues(errorType(err)).Inc()
		}
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCreated.Inc()
		h.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		amount, _ := result.Amount.Float64()
		h.metrics.TransferAmount.Observe(amount)
	}

	writeJSON(w, http.StatusOK, dto.TransferResponseFromResult(result))
}

// errorType buckets transfer errors for the error counter.
func errorType(err error) string {
	switch mapDomainError(err) {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}
