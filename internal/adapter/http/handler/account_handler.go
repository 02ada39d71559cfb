package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Sharans23/LenDenClub/internal/adapter/http/dto"
	"github.com/Sharans23/LenDenClub/internal/adapter/http/middleware"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// AccountHandler handles profile and balance endpoints for the authenticated
// account.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// GetProfile returns the authenticated account's profile.
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get profile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": dto.UserFromDomain(account)})
}

// UpdateProfile updates the authenticated account's profile.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.UpdateProfile(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update profile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    dto.UserFromDomain(account),
	})
}

// ChangePassword changes the authenticated account's password.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.accountUC.ChangePassword(r.Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, mapDomainError(err), "failed to change password", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// GetBalance returns the authenticated account's balance.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	balance, username, err := h.accountUC.GetBalance(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		Balance:  balance,
		Username: username,
	})
}
