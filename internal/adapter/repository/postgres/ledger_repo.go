package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Sharans23/LenDenClub/internal/domain"
	"github.com/Sharans23/LenDenClub/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository over the append-only
// audit_logs table. Entries are never updated or deleted.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const appendQuery = `
	INSERT INTO audit_logs (sender_id, receiver_id, amount, timestamp, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
`

// Append writes an entry inside tx and returns the assigned id.
func (r *LedgerRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	return r.appendRow(ctx, pgxTx, entry)
}

// AppendStandalone writes an entry outside any caller transaction. Used for
// FAILED attempt records after the main unit of work rolled back.
func (r *LedgerRepository) AppendStandalone(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	return r.appendRow(ctx, r.pool, entry)
}

type execQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *LedgerRepository) appendRow(ctx context.Context, q execQuerier, entry *domain.LedgerEntry) (int64, error) {
	var id int64

	err := q.QueryRow(ctx, appendQuery,
		entry.SenderID,
		entry.ReceiverID,
		decimalToNumeric(entry.Amount),
		entry.Timestamp,
		string(entry.Status),
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	entry.ID = id

	return id, nil
}

// ListByAccount returns entries where the account is sender or receiver,
// newest first.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, sender_id, receiver_id, amount, timestamp, status
		FROM audit_logs
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		var (
			entry  domain.LedgerEntry
			amount pgtype.Numeric
			status string
		)

		err := rows.Scan(
			&entry.ID,
			&entry.SenderID,
			&entry.ReceiverID,
			&amount,
			&entry.Timestamp,
			&status,
		)
		if err != nil {
			return nil, err
		}

		entry.Amount = numericToDecimal(amount)
		entry.Status = domain.LedgerStatus(status)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// SumBalancesAndVolume reports the total of all account balances and the
// total amount moved by successful transfers.
func (r *LedgerRepository) SumBalancesAndVolume(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var totalBalance, volume pgtype.Numeric

	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM accounts`).Scan(&totalBalance)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM audit_logs WHERE status = $1`,
		string(domain.StatusSuccess),
	).Scan(&volume)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(totalBalance), numericToDecimal(volume), nil
}

// CountNegativeBalances reports how many accounts hold a negative balance.
func (r *LedgerRepository) CountNegativeBalances(ctx context.Context) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE balance < 0`).Scan(&count)

	return count, err
}
