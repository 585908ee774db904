package repository

import (
	"context"
	"time"

	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

func (r *IdempotencyRepository) Find(ctx context.Context, key, customerID uuid.UUID, now time.Time) (*shared.IdempotencyRecord, error) {
	rec := shared.IdempotencyRecord{Key: key, CustomerID: customerID}
	var bookingID pgtype.UUID
	err := r.db.QueryRow(ctx, `
		SELECT request_hash, booking_id, created_at, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND customer_id = $2 AND expires_at > $3`,
		key, customerID, now).
		Scan(&rec.RequestHash, &bookingID, &rec.CreatedAt, &rec.ExpiresAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	rec.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	return &rec, nil
}

// TryInsert claims the key, taking over a record that has already expired.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, rec shared.IdempotencyRecord) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, customer_id, request_hash, booking_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key, customer_id) DO UPDATE
		SET request_hash = EXCLUDED.request_hash,
		    booking_id   = EXCLUDED.booking_id,
		    created_at   = EXCLUDED.created_at,
		    expires_at   = EXCLUDED.expires_at
		WHERE idempotency_keys.expires_at <= EXCLUDED.created_at`,
		rec.Key, rec.CustomerID, rec.RequestHash, pgconv.UUIDPtrToPgtype(rec.BookingID),
		rec.CreatedAt, rec.ExpiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) AttachBooking(ctx context.Context, key, customerID, bookingID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE idempotency_keys SET booking_id = $3
		WHERE key = $1 AND customer_id = $2`,
		key, customerID, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to attach booking to idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
