package readstore

import (
	"context"
	"strings"
	"time"

	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"
	"gin-booking-engine/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

var serviceColumns = []string{
	"s.id", "s.name", "s.description", "s.category", "s.duration_min", "s.price_cents", "s.is_active", "s.created_at",
}

func (r *CatalogReadStore) ListServices(ctx context.Context, filters queries.ServiceFilters) ([]*queries.ServiceView, error) {
	b := psql.Select(serviceColumns...).From("services s")
	if filters.Category != "" {
		b = b.Where(sq.Eq{"s.category": filters.Category})
	}
	if filters.ActiveOnly {
		b = b.Where(sq.Eq{"s.is_active": true})
	}
	query, args, err := b.OrderBy("s.name", "s.id").ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build service list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	out := make([]*queries.ServiceView, 0)
	for rows.Next() {
		v, err := scanService(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan service", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate services", err)
	}
	return out, nil
}

func (r *CatalogReadStore) PopularServices(ctx context.Context, limit int) ([]*queries.PopularService, error) {
	query, args, err := psql.Select(append(serviceColumns, "count(b.id) AS booking_count")...).
		From("services s").
		LeftJoin("bookings b ON b.service_id = s.id AND b.status <> 'cancelled'").
		Where(sq.Eq{"s.is_active": true}).
		GroupBy("s.id").
		OrderBy("booking_count DESC", "s.name", "s.id").
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build popular services query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rank services", err)
	}
	defer rows.Close()

	out := make([]*queries.PopularService, 0)
	for rows.Next() {
		var (
			p     queries.PopularService
			count int
		)
		v, err := scanService(rows, &count)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan popular service", err)
		}
		p.ServiceView = *v
		p.BookingCount = count
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate popular services", err)
	}
	return out, nil
}

func (r *CatalogReadStore) ListResources(ctx context.Context, availableOnly bool) ([]*queries.ResourceView, error) {
	b := psql.Select("r.id", "r.name", "r.is_available", "COALESCE(rs.average, 0)", "COALESCE(rs.review_count, 0)", "r.created_at").
		From("resources r").
		LeftJoin("resource_rating_states rs ON rs.resource_id = r.id")
	if availableOnly {
		b = b.Where(sq.Eq{"r.is_available": true})
	}
	query, args, err := b.OrderBy("r.name", "r.id").ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build resource list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	out := make([]*queries.ResourceView, 0)
	byID := map[uuid.UUID]*queries.ResourceView{}
	for rows.Next() {
		v := &queries.ResourceView{Hours: map[string]queries.HoursView{}}
		if err := rows.Scan(&v.ID, &v.Name, &v.IsAvailable, &v.AverageRating, &v.ReviewCount, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		out = append(out, v)
		byID[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resources", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	if err := r.attachHours(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogReadStore) attachHours(ctx context.Context, byID map[uuid.UUID]*queries.ResourceView) error {
	ids := make([]uuid.UUID, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.db.Query(ctx, `
		SELECT resource_id, weekday, open_min, close_min
		FROM resource_hours WHERE resource_id = ANY($1)`, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to load resource hours", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                uuid.UUID
			weekday           int
			openMin, closeMin int
		)
		if err := rows.Scan(&id, &weekday, &openMin, &closeMin); err != nil {
			return infra.WrapRepoErr("failed to scan resource hours", err)
		}
		day := strings.ToLower(time.Weekday(weekday).String())
		byID[id].Hours[day] = queries.HoursView{
			Open:  resource.ClockTime(openMin).String(),
			Close: resource.ClockTime(closeMin).String(),
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate resource hours", err)
	}
	return nil
}

// scanService reads serviceColumns followed by extra.
func scanService(row pgx.Row, extra ...any) (*queries.ServiceView, error) {
	var (
		v                     queries.ServiceView
		description, category pgtype.Text
		priceCents            int64
	)
	dest := append([]any{
		&v.ID, &v.Name, &description, &category, &v.DurationMin, &priceCents, &v.IsActive, &v.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	price, err := amount(priceCents)
	if err != nil {
		return nil, err
	}
	v.Description = pgconv.StringFromPgtype(description)
	v.Category = pgconv.StringFromPgtype(category)
	v.Price = price
	return &v, nil
}
