package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// RegisterRequest represents a request to register an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// TransferRequest represents a request to transfer money. The sender is the
// authenticated account, never a request field.
type TransferRequest struct {
	ReceiverID int64           `json:"receiverId"`
	Amount     decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input for the given sender.
func (r *TransferRequest) ToUseCaseInput(senderID int64) usecase.TransferInput {
	return usecase.TransferInput{
		SenderID:   senderID,
		ReceiverID: r.ReceiverID,
		Amount:     r.Amount,
	}
}

// UpdateProfileRequest represents a profile update. Absent fields are left
// unchanged.
type UpdateProfileRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *UpdateProfileRequest) ToUseCaseInput(accountID int64) usecase.UpdateProfileInput {
	return usecase.UpdateProfileInput{
		ID:       accountID,
		Email:    r.Email,
		FullName: r.FullName,
		Phone:    r.Phone,
	}
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
