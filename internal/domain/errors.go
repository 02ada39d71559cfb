package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrUsernameTaken    = errors.New("username already exists")

	// Transfer errors
	ErrSelfTransfer        = errors.New("cannot transfer to yourself")
	ErrInvalidAmount       = errors.New("amount must be greater than 0")
	ErrAmountPrecision     = errors.New("amount must have at most 2 decimal places")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
	ErrInvalidAccountID    = errors.New("account id must be a positive integer")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Authentication errors
var (
	ErrUnauthorized = errors.New("invalid username or password")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
