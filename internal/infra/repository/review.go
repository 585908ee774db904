package repository

import (
	"context"

	"gin-booking-engine/internal/domain/review"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReviewRepository struct {
	db db.DBTX
}

func NewReviewRepository(dbtx db.DBTX) *ReviewRepository {
	return &ReviewRepository{db: dbtx}
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check review existence", err)
	}
	return exists, nil
}

// Create reports KindDuplicateKey when the booking already has a review.
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (id, booking_id, customer_id, resource_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rv.ID(), rv.BookingID(), rv.CustomerID(), pgconv.UUIDPtrToPgtype(rv.ResourceID()),
		rv.Rating().Value(), pgconv.OptionalText(rv.Comment().String()), rv.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create review", err)
	}
	return nil
}
