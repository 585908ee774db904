package repository

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(dbtx db.DBTX) *ResourceRepository {
	return &ResourceRepository{db: dbtx}
}

type resourceRow struct {
	id          uuid.UUID
	name        string
	isAvailable bool
	createdAt   time.Time
	updatedAt   time.Time
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.find(ctx, id, "")
}

func (r *ResourceRepository) FindByIDForShare(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.find(ctx, id, " FOR SHARE")
}

func (r *ResourceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.find(ctx, id, " FOR UPDATE")
}

func (r *ResourceRepository) find(ctx context.Context, id uuid.UUID, lock string) (*resource.Resource, error) {
	var row resourceRow
	err := r.db.QueryRow(ctx, `
		SELECT id, name, is_available, created_at, updated_at
		FROM resources WHERE id = $1`+lock, id).
		Scan(&row.id, &row.name, &row.isAvailable, &row.createdAt, &row.updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}

	hours, err := r.loadHours(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return row.toDomain(hours[id]), nil
}

// ListCandidates orders by the number of active bookings already on day, then by name.
func (r *ResourceRepository) ListCandidates(ctx context.Context, day time.Time) ([]*resource.Resource, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name, r.is_available, r.created_at, r.updated_at
		FROM resources r
		JOIN resource_hours h ON h.resource_id = r.id AND h.weekday = $1
		LEFT JOIN bookings b ON b.resource_id = r.id
			AND b.booking_date = $2
			AND b.status IN ('pending', 'confirmed', 'in_progress')
		WHERE r.is_available
		GROUP BY r.id
		ORDER BY count(b.id), r.name, r.id`,
		int(day.Weekday()), pgconv.DateToPgtype(day))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list candidate resources", err)
	}
	defer rows.Close()

	var (
		found []resourceRow
		ids   []uuid.UUID
	)
	for rows.Next() {
		var row resourceRow
		if err := rows.Scan(&row.id, &row.name, &row.isAvailable, &row.createdAt, &row.updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan candidate resource", err)
		}
		found = append(found, row)
		ids = append(ids, row.id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate candidate resources", err)
	}
	if len(found) == 0 {
		return nil, nil
	}

	hours, err := r.loadHours(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*resource.Resource, len(found))
	for i, row := range found {
		out[i] = row.toDomain(hours[row.id])
	}
	return out, nil
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resources (id, name, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		res.ID(), res.Name(), res.IsAvailable(), res.CreatedAt(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create resource", err)
	}
	return r.saveHours(ctx, res)
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE resources SET name = $2, is_available = $3, updated_at = $4
		WHERE id = $1`,
		res.ID(), res.Name(), res.IsAvailable(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM resource_hours WHERE resource_id = $1`, res.ID()); err != nil {
		return infra.WrapRepoErr("failed to clear resource hours", err)
	}
	return r.saveHours(ctx, res)
}

func (r *ResourceRepository) saveHours(ctx context.Context, res *resource.Resource) error {
	for day, h := range res.Hours() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO resource_hours (resource_id, weekday, open_min, close_min)
			VALUES ($1, $2, $3, $4)`,
			res.ID(), int(day), h.Open.Minutes(), h.Close.Minutes())
		if err != nil {
			return infra.WrapRepoErr("failed to save resource hours", err)
		}
	}
	return nil
}

func (r *ResourceRepository) loadHours(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]resource.WeeklyHours, error) {
	rows, err := r.db.Query(ctx, `
		SELECT resource_id, weekday, open_min, close_min
		FROM resource_hours WHERE resource_id = ANY($1)`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load resource hours", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]resource.WeeklyHours, len(ids))
	for rows.Next() {
		var (
			id                uuid.UUID
			weekday           int
			openMin, closeMin int
		)
		if err := rows.Scan(&id, &weekday, &openMin, &closeMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource hours", err)
		}
		h, err := dayHours(openMin, closeMin)
		if err != nil {
			return nil, infra.WrapRepoErr("stored hours are invalid", err, infra.KindDBFailure)
		}
		if out[id] == nil {
			out[id] = resource.WeeklyHours{}
		}
		out[id][time.Weekday(weekday)] = h
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource hours", err)
	}
	return out, nil
}

func dayHours(openMin, closeMin int) (resource.DayHours, error) {
	open, err := resource.NewClockTime(openMin)
	if err != nil {
		return resource.DayHours{}, err
	}
	closing, err := resource.NewClockTime(closeMin)
	if err != nil {
		return resource.DayHours{}, err
	}
	return resource.NewDayHours(open, closing)
}

func (row resourceRow) toDomain(hours resource.WeeklyHours) *resource.Resource {
	if hours == nil {
		hours = resource.WeeklyHours{}
	}
	return resource.ReconstructResource(row.id, row.name, row.isAvailable, hours, row.createdAt, row.updatedAt)
}
