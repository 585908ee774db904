package repository

import (
	"context"

	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/domain/offering"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OfferingRepository struct {
	db db.DBTX
}

func NewOfferingRepository(dbtx db.DBTX) *OfferingRepository {
	return &OfferingRepository{db: dbtx}
}

func (r *OfferingRepository) FindByID(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	return r.find(ctx, id, "")
}

func (r *OfferingRepository) FindByIDForShare(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	return r.find(ctx, id, " FOR SHARE")
}

func (r *OfferingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	return r.find(ctx, id, " FOR UPDATE")
}

func (r *OfferingRepository) find(ctx context.Context, id uuid.UUID, lock string) (*offering.Offering, error) {
	var (
		name                  string
		description, category pgtype.Text
		durationMin           int
		priceCents            int64
		isActive              bool
		createdAt, updatedAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, description, category, duration_min, price_cents, is_active, created_at, updated_at
		FROM services WHERE id = $1`+lock, id).
		Scan(&name, &description, &category, &durationMin, &priceCents, &isActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find service", err)
	}

	price, err := money.FromCents(priceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored price is invalid", err, infra.KindDBFailure)
	}
	return offering.ReconstructOffering(
		id, name,
		pgconv.StringFromPgtype(description), pgconv.StringFromPgtype(category),
		durationMin, price, isActive,
		createdAt.Time, updatedAt.Time,
	), nil
}

func (r *OfferingRepository) Create(ctx context.Context, o *offering.Offering) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO services (id, name, description, category, duration_min, price_cents, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID(), o.Name(), pgconv.OptionalText(o.Description()), pgconv.OptionalText(o.Category()),
		o.DurationMin(), o.Price().Cents(), o.IsActive(), o.CreatedAt(), o.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create service", err)
	}
	return nil
}

func (r *OfferingRepository) Update(ctx context.Context, o *offering.Offering) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE services SET
			name = $2, description = $3, category = $4, duration_min = $5,
			price_cents = $6, is_active = $7, updated_at = $8
		WHERE id = $1`,
		o.ID(), o.Name(), pgconv.OptionalText(o.Description()), pgconv.OptionalText(o.Category()),
		o.DurationMin(), o.Price().Cents(), o.IsActive(), o.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "service not found")
	}
	return nil
}
