package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sharans23/LenDenClub/internal/domain"
)

// AccountUseCase handles registration, authentication and profile management.
// It never mutates balances; that is the transfer engine's job.
type AccountUseCase struct {
	accountRepo     AccountRepository
	startingBalance decimal.Decimal
}

// NewAccountUseCase creates a new AccountUseCase. startingBalance is credited
// to every newly registered account.
func NewAccountUseCase(accountRepo AccountRepository, startingBalance decimal.Decimal) *AccountUseCase {
	return &AccountUseCase{
		accountRepo:     accountRepo,
		startingBalance: startingBalance,
	}
}

// RegisterInput represents input for registering an account.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a new account with a hashed password and the configured
// starting balance.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := domain.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := uc.accountRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:       input.Username,
		HashedPassword: hashedPassword,
		Balance:        uc.startingBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	account.HashedPassword = ""

	return account, nil
}

// AuthenticateInput represents login credentials.
type AuthenticateInput struct {
	Username string
	Password string
}

// Authenticate verifies credentials and returns the account on success.
func (uc *AccountUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}

	if err := verifyPassword(account.HashedPassword, input.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	account.HashedPassword = ""

	return account, nil
}

// GetAccount retrieves an account by id without the password hash.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.HashedPassword = ""

	return account, nil
}

// UpdateProfileInput represents input for a profile update. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	ID       int64
	Email    *string
	FullName *string
	Phone    *string
}

// UpdateProfile updates the mutable profile attributes of an account.
func (uc *AccountUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := domain.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
		account.Email = *input.Email
	}

	if input.FullName != nil {
		account.FullName = *input.FullName
	}

	if input.Phone != nil {
		account.Phone = *input.Phone
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	account.HashedPassword = ""

	return account, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (uc *AccountUseCase) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := verifyPassword(account.HashedPassword, currentPassword); err != nil {
		return domain.ErrUnauthorized
	}

	hashedPassword, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	return uc.accountRepo.UpdatePassword(ctx, id, hashedPassword, time.Now().UTC())
}

// GetBalance returns the current balance and username of an account.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id int64) (decimal.Decimal, string, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, "", err
	}

	return account.Balance, account.Username, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
