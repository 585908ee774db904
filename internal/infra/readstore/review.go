package readstore

import (
	"context"

	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"
	"gin-booking-engine/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

// ListByResource pages newest first by (created_at, id).
func (r *ReviewReadStore) ListByResource(ctx context.Context, resourceID uuid.UUID, after *queries.Keyset, limit int) ([]*queries.ReviewListItem, error) {
	b := psql.Select("rv.id", "rv.booking_id", "c.name", "rv.rating", "rv.comment", "rv.created_at").
		From("reviews rv").
		Join("customers c ON c.id = rv.customer_id").
		Where(sq.Eq{"rv.resource_id": resourceID})
	if after != nil {
		b = b.Where(sq.Expr("(rv.created_at, rv.id) < (?, ?)", after.At, after.ID))
	}
	query, args, err := b.OrderBy("rv.created_at DESC", "rv.id DESC").Limit(uint64(max(limit, 1))).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build review list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	defer rows.Close()

	out := make([]*queries.ReviewListItem, 0)
	for rows.Next() {
		var (
			item    queries.ReviewListItem
			comment pgtype.Text
		)
		if err := rows.Scan(&item.ID, &item.BookingID, &item.CustomerName, &item.Rating, &comment, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review", err)
		}
		item.Comment = pgconv.StringFromPgtype(comment)
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reviews", err)
	}
	return out, nil
}

func (r *ReviewReadStore) RatingByResource(ctx context.Context, resourceID uuid.UUID) (*queries.ResourceRating, error) {
	out := &queries.ResourceRating{ResourceID: resourceID}
	var updatedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx, `
		SELECT average, review_count, updated_at
		FROM resource_rating_states WHERE resource_id = $1`, resourceID).
		Scan(&out.AverageRating, &out.ReviewCount, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return out, nil
		}
		return nil, infra.WrapRepoErr("failed to get resource rating", err)
	}
	out.UpdatedAt = pgconv.TimePtrFromPgtype(updatedAt)
	return out, nil
}

func (r *ReviewReadStore) ResourceExists(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resources WHERE id = $1)`, resourceID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check resource existence", err)
	}
	return exists, nil
}
