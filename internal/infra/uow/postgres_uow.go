package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/infra/repository"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

func NewPostgresUoW(pool *pgxpool.Pool, settings slot.Settings) *PostgresUoW {
	return &PostgresUoW{
		pool: pool,
		loc:  settings.Location,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes.
// The schedule advisory lock and the exclusion constraint cover the rest.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, u.bind(pgxTx))
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, u.bind(pgxTx)); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) bind(dbtx db.DBTX) *pgTx {
	return &pgTx{dbtx: dbtx, loc: u.loc}
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask the sign bit so the conversion stays non-negative.
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX
	loc  *time.Location

	// Lazy-initialized repositories
	bookings     *repository.BookingRepository
	resources    *repository.ResourceRepository
	offerings    *repository.OfferingRepository
	customers    *repository.CustomerRepository
	reviews      *repository.ReviewRepository
	ratingStates *repository.RatingStateRepository
	invoices     *repository.InvoiceRepository
	idempotency  *repository.IdempotencyRepository
	outbox       *repository.OutboxRepository
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookings == nil {
		t.bookings = repository.NewBookingRepository(t.dbtx, t.loc)
	}
	return t.bookings
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resources == nil {
		t.resources = repository.NewResourceRepository(t.dbtx)
	}
	return t.resources
}

func (t *pgTx) Offerings() shared.OfferingRepository {
	if t.offerings == nil {
		t.offerings = repository.NewOfferingRepository(t.dbtx)
	}
	return t.offerings
}

func (t *pgTx) Customers() shared.CustomerRepository {
	if t.customers == nil {
		t.customers = repository.NewCustomerRepository(t.dbtx)
	}
	return t.customers
}

func (t *pgTx) Reviews() shared.ReviewRepository {
	if t.reviews == nil {
		t.reviews = repository.NewReviewRepository(t.dbtx)
	}
	return t.reviews
}

func (t *pgTx) RatingStates() shared.RatingStateRepository {
	if t.ratingStates == nil {
		t.ratingStates = repository.NewRatingStateRepository(t.dbtx)
	}
	return t.ratingStates
}

func (t *pgTx) Invoices() shared.InvoiceRepository {
	if t.invoices == nil {
		t.invoices = repository.NewInvoiceRepository(t.dbtx, t.loc)
	}
	return t.invoices
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotency == nil {
		t.idempotency = repository.NewIdempotencyRepository(t.dbtx)
	}
	return t.idempotency
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outbox == nil {
		t.outbox = repository.NewOutboxRepository(t.dbtx)
	}
	return t.outbox
}
