package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// PostgreSQL error codes that are safe to retry. Concurrent transfers that
// lock the same account rows can deadlock or fail serialization; rerunning
// the whole unit of work resolves both.
const (
	pgErrDeadlockDetected     = "40P01"
	pgErrSerializationFailure = "40001"
)

// Retrier implements usecase.Retrier with capped exponential backoff. Only
// transient PostgreSQL errors are retried; everything else is permanent.
type Retrier struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
}

// NewRetrier creates a Retrier with defaults tuned for short row-lock
// contention between transfers.
func NewRetrier() *Retrier {
	return &Retrier{
		maxAttempts:     4,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     time.Second,
		maxElapsedTime:  10 * time.Second,
	}
}

// Retry runs operation, rerunning it on retryable storage errors until it
// succeeds, the attempt budget runs out, or ctx is cancelled.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		attempt++

		err := operation()
		if err == nil {
			return nil
		}

		if !retryable(err) || attempt >= r.maxAttempts {
			return backoff.Permanent(err)
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("transient database error, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgErrDeadlockDetected || pgErr.Code == pgErrSerializationFailure
}
