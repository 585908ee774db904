package queries

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/pkg/clock"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	CustomerID         uuid.UUID  `json:"customer_id"`
	CustomerName       string     `json:"customer_name"`
	ServiceID          uuid.UUID  `json:"service_id"`
	ServiceName        string     `json:"service_name"`
	ResourceID         *uuid.UUID `json:"resource_id,omitempty"`
	ResourceName       *string    `json:"resource_name,omitempty"`
	Date               string     `json:"date"`
	Start              time.Time  `json:"start"`
	End                time.Time  `json:"end"`
	Status             string     `json:"status"`
	Price              string     `json:"price"`
	Notes              string     `json:"notes,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	Version            int        `json:"version"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingFilters struct {
	Status     string
	CustomerID *uuid.UUID
	ResourceID *uuid.UUID
	ServiceID  *uuid.UUID
	// From and To are inclusive YYYY-MM-DD bounds on the booking date.
	From string
	To   string
}

// BookingListParams is what the read store receives after validation.
type BookingListParams struct {
	Status     *booking.Status
	CustomerID *uuid.UUID
	ResourceID *uuid.UUID
	ServiceID  *uuid.UUID
	From       *time.Time
	To         *time.Time
	After      *Keyset
	Limit      int
}

type UpcomingParams struct {
	CustomerID *uuid.UUID
	ResourceID *uuid.UUID
	From       time.Time
	Limit      int
}

type StatisticsFilters struct {
	From       string
	To         string
	ResourceID *uuid.UUID
}

type StatisticsParams struct {
	From       *time.Time
	To         *time.Time
	ResourceID *uuid.UUID
}

// StatusTotals is the raw aggregate a read store returns.
type StatusTotals struct {
	Counts       map[booking.Status]int
	RevenueCents int64
}

type BookingStatistics struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	// Revenue sums the price of completed bookings.
	Revenue string `json:"revenue"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, p BookingListParams) ([]*BookingView, error)
	Upcoming(ctx context.Context, p UpcomingParams) ([]*BookingView, error)
	Statistics(ctx context.Context, p StatisticsParams) (*StatusTotals, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filters BookingFilters, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	Upcoming(ctx context.Context, customerID, resourceID *uuid.UUID, limit int) ([]*BookingView, error)
	Statistics(ctx context.Context, filters StatisticsFilters) (*BookingStatistics, error)
}

type bookingQueriesImpl struct {
	store    BookingReadStore
	settings slot.Settings
	clock    clock.Clock
}

func NewBookingQueries(store BookingReadStore, settings slot.Settings, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, settings: settings, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBookingNotFound)
	}
	return v, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filters BookingFilters, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)
	keyset, err := after(cursor)
	if err != nil {
		return nil, nil, err
	}
	from, to, err := q.dateRange(filters.From, filters.To)
	if err != nil {
		return nil, nil, err
	}
	p := BookingListParams{
		CustomerID: filters.CustomerID,
		ResourceID: filters.ResourceID,
		ServiceID:  filters.ServiceID,
		From:       from,
		To:         to,
		After:      keyset,
		Limit:      limit + 1,
	}
	if filters.Status != "" {
		st, err := booking.ParseStatus(filters.Status)
		if err != nil {
			return nil, nil, invalid(err)
		}
		p.Status = &st
	}

	rows, err := q.store.List(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	page, next := paginate(rows, limit, func(v *BookingView) Keyset {
		return Keyset{At: v.Start, ID: v.ID}
	})
	return page, next, nil
}

func (q *bookingQueriesImpl) Upcoming(ctx context.Context, customerID, resourceID *uuid.UUID, limit int) ([]*BookingView, error) {
	return q.store.Upcoming(ctx, UpcomingParams{
		CustomerID: customerID,
		ResourceID: resourceID,
		From:       q.clock.Now(),
		Limit:      ValidateLimit(limit),
	})
}

func (q *bookingQueriesImpl) Statistics(ctx context.Context, filters StatisticsFilters) (*BookingStatistics, error) {
	from, to, err := q.dateRange(filters.From, filters.To)
	if err != nil {
		return nil, err
	}
	totals, err := q.store.Statistics(ctx, StatisticsParams{From: from, To: to, ResourceID: filters.ResourceID})
	if err != nil {
		return nil, err
	}
	revenue, err := money.FromCents(totals.RevenueCents)
	if err != nil {
		return nil, err
	}

	stats := &BookingStatistics{ByStatus: make(map[string]int, len(booking.AllStatuses)), Revenue: revenue.String()}
	for _, st := range booking.AllStatuses {
		n := totals.Counts[st]
		stats.ByStatus[st.String()] = n
		stats.Total += n
	}
	return stats, nil
}

func (q *bookingQueriesImpl) dateRange(fromRaw, toRaw string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromRaw != "" {
		d, err := q.settings.ParseDay(fromRaw)
		if err != nil {
			return nil, nil, invalid(err)
		}
		from = &d
	}
	if toRaw != "" {
		d, err := q.settings.ParseDay(toRaw)
		if err != nil {
			return nil, nil, invalid(err)
		}
		to = &d
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrInvalidRange
	}
	return from, to, nil
}
