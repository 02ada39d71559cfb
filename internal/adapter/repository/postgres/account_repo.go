package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Sharans23/LenDenClub/internal/domain"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

const accountColumns = `id, username, hashed_password, email, full_name, phone, balance, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account and assigns its id.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (username, hashed_password, email, full_name, phone, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	return r.pool.QueryRow(ctx, query,
		account.Username,
		account.HashedPassword,
		account.Email,
		account.FullName,
		account.Phone,
		decimalToNumeric(account.Balance),
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)
}

// GetByID retrieves an account by id.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}

	return account, err
}

// GetByUsername retrieves an account by username. Returns (nil, nil) when no
// account has the username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return account, err
}

// GetByIDsForUpdate retrieves accounts by id with FOR UPDATE row locks.
// Rows are locked in ascending-id order regardless of input order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := pgxTx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateBalance updates the balance of an account inside tx.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(balance), updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// UpdateProfile updates the mutable profile fields of an account.
func (r *AccountRepository) UpdateProfile(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET email = $2, full_name = $3, phone = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.FullName,
		account.Phone,
		account.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// UpdatePassword stores a new password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string, updatedAt time.Time) error {
	query := `UPDATE accounts SET hashed_password = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, hashedPassword, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		balance pgtype.Numeric
	)

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.HashedPassword,
		&account.Email,
		&account.FullName,
		&account.Phone,
		&balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
