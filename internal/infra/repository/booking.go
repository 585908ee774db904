package repository

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, customer_id, service_id, resource_id, start_at, end_at, status,
	cancellation_reason, notes, price_cents, created_at, updated_at,
	confirmed_at, completed_at, cancelled_at, version`

type BookingRepository struct {
	db  db.DBTX
	loc *time.Location
}

// NewBookingRepository reads booking dates in loc.
func NewBookingRepository(dbtx db.DBTX, loc *time.Location) *BookingRepository {
	return &BookingRepository{db: dbtx, loc: loc}
}

// LockSchedule takes a transaction-scoped advisory lock on the resource's day.
func (r *BookingRepository) LockSchedule(ctx context.Context, resourceID uuid.UUID, day time.Time) error {
	key := resourceID.String() + "/" + day.Format(time.DateOnly)
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return infra.WrapRepoErr("failed to lock resource schedule", err)
	}
	return nil
}

func (r *BookingRepository) ListActiveSlots(ctx context.Context, resourceID uuid.UUID, day time.Time) ([]booking.TimeSlot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_at, end_at FROM bookings
		WHERE resource_id = $1 AND booking_date = $2
		  AND status IN ('pending', 'confirmed', 'in_progress')
		ORDER BY start_at`,
		resourceID, pgconv.DateToPgtype(day))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active slots", err)
	}
	defer rows.Close()

	var out []booking.TimeSlot
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan active slot", err)
		}
		ts, err := booking.NewTimeSlot(start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("stored slot is invalid", err, infra.KindDBFailure)
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate active slots", err)
	}
	return out, nil
}

// Create relies on bookings_no_overlap to reject a window another writer committed first.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (
			id, customer_id, service_id, resource_id, booking_date, start_at, end_at, status,
			cancellation_reason, notes, price_cents, created_at, updated_at,
			confirmed_at, completed_at, cancelled_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		s.ID, s.CustomerID, s.ServiceID, pgconv.UUIDPtrToPgtype(s.ResourceID),
		pgconv.DateToPgtype(s.Date), s.Slot.Start(), s.Slot.End(), string(s.Status),
		pgconv.OptionalText(s.CancellationReason), pgconv.OptionalText(s.Notes), s.Price.Cents(),
		s.CreatedAt, s.UpdatedAt,
		pgconv.TimePtrToPgtype(s.ConfirmedAt), pgconv.TimePtrToPgtype(s.CompletedAt),
		pgconv.TimePtrToPgtype(s.CancelledAt), s.Version,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := r.scan(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	b, err := r.scan(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking, expectedVersion int) error {
	s := b.Snapshot()
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET
			status = $2, cancellation_reason = $3, notes = $4, updated_at = $5,
			confirmed_at = $6, completed_at = $7, cancelled_at = $8, version = $9
		WHERE id = $1 AND version = $10`,
		s.ID, string(s.Status), pgconv.OptionalText(s.CancellationReason), pgconv.OptionalText(s.Notes),
		s.UpdatedAt, pgconv.TimePtrToPgtype(s.ConfirmedAt), pgconv.TimePtrToPgtype(s.CompletedAt),
		pgconv.TimePtrToPgtype(s.CancelledAt), s.Version, expectedVersion,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindConflict, "booking version changed")
	}
	return nil
}

func (r *BookingRepository) CountActiveByResource(ctx context.Context, resourceID uuid.UUID) (int, error) {
	return r.countActive(ctx, "resource_id", resourceID)
}

func (r *BookingRepository) CountActiveByService(ctx context.Context, serviceID uuid.UUID) (int, error) {
	return r.countActive(ctx, "service_id", serviceID)
}

func (r *BookingRepository) countActive(ctx context.Context, column string, id uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM bookings
		WHERE `+column+` = $1 AND status IN ('pending', 'confirmed', 'in_progress')`, id).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active bookings", err)
	}
	return n, nil
}

func (r *BookingRepository) scan(row pgx.Row) (*booking.Booking, error) {
	var (
		s                        booking.Snapshot
		resourceID               pgtype.UUID
		start, end               time.Time
		status                   string
		reason, notes            pgtype.Text
		priceCents               int64
		confirmedAt, completedAt pgtype.Timestamptz
		cancelledAt              pgtype.Timestamptz
	)
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.ServiceID, &resourceID, &start, &end, &status,
		&reason, &notes, &priceCents, &s.CreatedAt, &s.UpdatedAt,
		&confirmedAt, &completedAt, &cancelledAt, &s.Version,
	)
	if err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(start.In(r.loc), end.In(r.loc))
	if err != nil {
		return nil, err
	}
	price, err := money.FromCents(priceCents)
	if err != nil {
		return nil, err
	}

	s.ResourceID = pgconv.UUIDPtrFromPgtype(resourceID)
	s.Slot = slot
	s.Date = booking.DayOf(slot.Start())
	s.Status = booking.Status(status)
	s.CancellationReason = pgconv.StringFromPgtype(reason)
	s.Notes = pgconv.StringFromPgtype(notes)
	s.Price = price
	s.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	s.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	s.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return booking.Reconstruct(s), nil
}
