package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Sharans23/LenDenClub/internal/adapter/http/dto"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/auth"
	"github.com/Sharans23/LenDenClub/internal/infrastructure/metrics"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	accountUC  *usecase.AccountUseCase
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler. metrics may be nil.
func NewAuthHandler(accountUC *usecase.AccountUseCase, jwtManager *auth.JWTManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		accountUC:  accountUC,
		jwtManager: jwtManager,
		metrics:    m,
	}
}

// Register creates a new account and returns a token for it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "registration failed", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsRegistered.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    dto.UserFromDomain(account),
	})
}

// Login authenticates an account and returns a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		if h.metrics != nil {
			h.metrics.AuthAttempts.WithLabelValues("failure").Inc()
		}
		writeError(w, mapDomainError(err), "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues("success").Inc()
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.UserFromDomain(account),
	})
}
