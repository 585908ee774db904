package readstore

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"
	"gin-booking-engine/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db  db.DBTX
	loc *time.Location
}

// NewBookingReadStore renders times in loc, the schedule's zone.
func NewBookingReadStore(dbtx db.DBTX, loc *time.Location) *BookingReadStore {
	return &BookingReadStore{db: dbtx, loc: loc}
}

func (r *BookingReadStore) selectView() sq.SelectBuilder {
	return psql.Select(
		"b.id", "b.customer_id", "c.name", "b.service_id", "s.name", "b.resource_id", "r.name",
		"b.booking_date", "b.start_at", "b.end_at", "b.status", "b.price_cents",
		"b.notes", "b.cancellation_reason", "b.version",
		"b.confirmed_at", "b.completed_at", "b.cancelled_at", "b.created_at", "b.updated_at",
	).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		Join("services s ON s.id = b.service_id").
		LeftJoin("resources r ON r.id = b.resource_id")
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := r.selectView().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}
	v, err := r.scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return v, nil
}

// List pages newest first by (start_at, id).
func (r *BookingReadStore) List(ctx context.Context, p queries.BookingListParams) ([]*queries.BookingView, error) {
	b := r.selectView()
	if p.Status != nil {
		b = b.Where(sq.Eq{"b.status": string(*p.Status)})
	}
	if p.CustomerID != nil {
		b = b.Where(sq.Eq{"b.customer_id": *p.CustomerID})
	}
	if p.ResourceID != nil {
		b = b.Where(sq.Eq{"b.resource_id": *p.ResourceID})
	}
	if p.ServiceID != nil {
		b = b.Where(sq.Eq{"b.service_id": *p.ServiceID})
	}
	if p.From != nil {
		b = b.Where(sq.GtOrEq{"b.booking_date": pgconv.DateToPgtype(*p.From)})
	}
	if p.To != nil {
		b = b.Where(sq.LtOrEq{"b.booking_date": pgconv.DateToPgtype(*p.To)})
	}
	if p.After != nil {
		b = b.Where(sq.Expr("(b.start_at, b.id) < (?, ?)", p.After.At, p.After.ID))
	}
	b = b.OrderBy("b.start_at DESC", "b.id DESC").Limit(uint64(max(p.Limit, 1)))

	return r.list(ctx, b, "failed to list bookings")
}

// Upcoming returns pending and confirmed bookings starting at or after p.From, soonest first.
func (r *BookingReadStore) Upcoming(ctx context.Context, p queries.UpcomingParams) ([]*queries.BookingView, error) {
	b := r.selectView().
		Where(sq.Eq{"b.status": []string{"pending", "confirmed"}}).
		Where(sq.GtOrEq{"b.start_at": p.From})
	if p.CustomerID != nil {
		b = b.Where(sq.Eq{"b.customer_id": *p.CustomerID})
	}
	if p.ResourceID != nil {
		b = b.Where(sq.Eq{"b.resource_id": *p.ResourceID})
	}
	b = b.OrderBy("b.start_at", "b.id").Limit(uint64(max(p.Limit, 1)))

	return r.list(ctx, b, "failed to list upcoming bookings")
}

func (r *BookingReadStore) Statistics(ctx context.Context, p queries.StatisticsParams) (*queries.StatusTotals, error) {
	b := psql.Select("status", "count(*)", "COALESCE(sum(price_cents) FILTER (WHERE status = 'completed'), 0)").
		From("bookings").
		GroupBy("status")
	if p.From != nil {
		b = b.Where(sq.GtOrEq{"booking_date": pgconv.DateToPgtype(*p.From)})
	}
	if p.To != nil {
		b = b.Where(sq.LtOrEq{"booking_date": pgconv.DateToPgtype(*p.To)})
	}
	if p.ResourceID != nil {
		b = b.Where(sq.Eq{"resource_id": *p.ResourceID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build statistics query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute booking statistics", err)
	}
	defer rows.Close()

	totals := &queries.StatusTotals{Counts: map[booking.Status]int{}}
	for rows.Next() {
		var (
			status  string
			count   int
			revenue int64
		)
		if err := rows.Scan(&status, &count, &revenue); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking statistics", err)
		}
		totals.Counts[booking.Status(status)] = count
		totals.RevenueCents += revenue
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking statistics", err)
	}
	return totals, nil
}

func (r *BookingReadStore) list(ctx context.Context, b sq.SelectBuilder, msg string) ([]*queries.BookingView, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	out := make([]*queries.BookingView, 0)
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}

func (r *BookingReadStore) scan(row pgx.Row) (*queries.BookingView, error) {
	var (
		v                        queries.BookingView
		resourceID               pgtype.UUID
		resourceName             pgtype.Text
		date                     pgtype.Date
		priceCents               int64
		notes, reason            pgtype.Text
		confirmedAt, completedAt pgtype.Timestamptz
		cancelledAt              pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.CustomerID, &v.CustomerName, &v.ServiceID, &v.ServiceName, &resourceID, &resourceName,
		&date, &v.Start, &v.End, &v.Status, &priceCents,
		&notes, &reason, &v.Version,
		&confirmedAt, &completedAt, &cancelledAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	price, err := amount(priceCents)
	if err != nil {
		return nil, err
	}
	v.Price = price
	v.ResourceID = pgconv.UUIDPtrFromPgtype(resourceID)
	v.ResourceName = pgconv.StringPtrFromPgtype(resourceName)
	v.Date = dateString(date.Time)
	v.Start = v.Start.In(r.loc)
	v.End = v.End.In(r.loc)
	v.Notes = pgconv.StringFromPgtype(notes)
	v.CancellationReason = pgconv.StringFromPgtype(reason)
	v.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	v.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	v.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &v, nil
}
