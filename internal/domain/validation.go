package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MinPasswordLength = 6
	MaxPasswordLength = 128
	MaxTransferAmount = "1000000000" // 1 billion
)

// Currency amounts carry at most 2 fractional digits.
const AmountScale = 2

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidateAmount validates a transfer amount: positive, at most 2 decimal
// places, and within the allowed maximum.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.Exponent() < -AmountScale {
		return ErrAmountPrecision
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}

// ValidateAccountID validates an account identifier.
func ValidateAccountID(id int64) error {
	if id <= 0 {
		return ErrInvalidAccountID
	}

	return nil
}

// ValidateUsername validates a registration handle.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if len(username) < MinUsernameLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrInvalidUsername, MinUsernameLength)
	}

	if len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrInvalidUsername, MaxUsernameLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: only letters, digits, '_', '.' and '-' are allowed", ErrInvalidUsername)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 200
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
