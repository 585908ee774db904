package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReviewListItem struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ResourceRating struct {
	ResourceID    uuid.UUID  `json:"resource_id"`
	AverageRating float64    `json:"average_rating"`
	ReviewCount   int        `json:"review_count"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type ReviewReadStore interface {
	ListByResource(ctx context.Context, resourceID uuid.UUID, after *Keyset, limit int) ([]*ReviewListItem, error)
	// RatingByResource reports a zero rating when the resource has no reviews.
	RatingByResource(ctx context.Context, resourceID uuid.UUID) (*ResourceRating, error)
	ResourceExists(ctx context.Context, resourceID uuid.UUID) (bool, error)
}

type ReviewQueries interface {
	ListByResource(ctx context.Context, resourceID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error)
	ResourceRating(ctx context.Context, resourceID uuid.UUID) (*ResourceRating, error)
}

type reviewQueriesImpl struct {
	store ReviewReadStore
}

func NewReviewQueries(store ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{store: store}
}

func (q *reviewQueriesImpl) ListByResource(ctx context.Context, resourceID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	keyset, err := after(cursor)
	if err != nil {
		return nil, nil, err
	}
	if err := q.requireResource(ctx, resourceID); err != nil {
		return nil, nil, err
	}
	rows, err := q.store.ListByResource(ctx, resourceID, keyset, limit+1)
	if err != nil {
		return nil, nil, err
	}
	page, next := paginate(rows, limit, func(r *ReviewListItem) Keyset {
		return Keyset{At: r.CreatedAt, ID: r.ID}
	})
	return page, next, nil
}

func (q *reviewQueriesImpl) ResourceRating(ctx context.Context, resourceID uuid.UUID) (*ResourceRating, error) {
	if err := q.requireResource(ctx, resourceID); err != nil {
		return nil, err
	}
	return q.store.RatingByResource(ctx, resourceID)
}

func (q *reviewQueriesImpl) requireResource(ctx context.Context, id uuid.UUID) error {
	ok, err := q.store.ResourceExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrResourceNotFound
	}
	return nil
}
