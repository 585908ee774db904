package repository

import (
	"context"

	"gin-booking-engine/internal/domain/rating"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RatingStateRepository struct {
	db db.DBTX
}

func NewRatingStateRepository(dbtx db.DBTX) *RatingStateRepository {
	return &RatingStateRepository{db: dbtx}
}

// GetForUpdate seeds an empty row first so the very first review is serialized too.
func (r *RatingStateRepository) GetForUpdate(ctx context.Context, resourceID uuid.UUID) (rating.State, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resource_rating_states (resource_id, average, review_count)
		VALUES ($1, 0, 0)
		ON CONFLICT (resource_id) DO NOTHING`, resourceID)
	if err != nil {
		return rating.State{}, infra.WrapRepoErr("failed to seed rating state", err)
	}

	var (
		s         rating.State
		updatedAt pgtype.Timestamptz
	)
	err = r.db.QueryRow(ctx, `
		SELECT resource_id, average, review_count, updated_at
		FROM resource_rating_states WHERE resource_id = $1
		FOR UPDATE`, resourceID).
		Scan(&s.ResourceID, &s.Average, &s.Count, &updatedAt)
	if err != nil {
		return rating.State{}, infra.WrapRepoErr("failed to lock rating state", err)
	}
	if s.Count == 0 {
		return rating.Initial(resourceID), nil
	}
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

func (r *RatingStateRepository) Save(ctx context.Context, s rating.State) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resource_rating_states (resource_id, average, review_count, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (resource_id) DO UPDATE
		SET average = EXCLUDED.average, review_count = EXCLUDED.review_count, updated_at = EXCLUDED.updated_at`,
		s.ResourceID, s.Average, s.Count, s.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to save rating state", err)
	}
	return nil
}
