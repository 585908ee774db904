//go:build unit || e2e

package builder

import (
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/money"
	reqdto "gin-booking-engine/internal/handler/dto/request"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

// BaseTime is a fixed Monday used across tests.
var BaseTime = time.Date(2030, 6, 3, 8, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID                 uuid.UUID
	CustomerID         uuid.UUID
	ServiceID          uuid.UUID
	ResourceID         *uuid.UUID
	Start              time.Time
	Duration           time.Duration
	Status             booking.Status
	CancellationReason string
	Notes              string
	PriceCents         int64
	CreatedAt          time.Time
	Version            int
}

func NewBookingBuilder() *BookingBuilder {
	rid := uuid.New()
	return &BookingBuilder{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		ServiceID:  uuid.New(),
		ResourceID: &rid,
		Start:      BaseTime.Add(2 * time.Hour),
		Duration:   time.Hour,
		Status:     booking.StatusPending,
		Notes:      "first visit",
		PriceCents: 5000,
		CreatedAt:  BaseTime,
		Version:    1,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildSlot() booking.TimeSlot {
	slot, err := booking.SlotFor(b.Start, b.Duration)
	if err != nil {
		panic(err)
	}
	return slot
}

// BuildDomain reconstructs a booking in b.Status without walking the lifecycle.
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	price, err := money.FromCents(b.PriceCents)
	if err != nil {
		panic(err)
	}
	s := booking.Snapshot{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		ServiceID:          b.ServiceID,
		ResourceID:         b.ResourceID,
		Date:               booking.DayOf(b.Start),
		Slot:               b.BuildSlot(),
		Status:             b.Status,
		CancellationReason: b.CancellationReason,
		Notes:              b.Notes,
		Price:              price,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.CreatedAt,
		Version:            b.Version,
	}
	switch b.Status {
	case booking.StatusConfirmed, booking.StatusInProgress:
		s.ConfirmedAt = &b.CreatedAt
	case booking.StatusCompleted:
		s.ConfirmedAt = &b.CreatedAt
		end := s.Slot.End()
		s.CompletedAt = &end
	case booking.StatusCancelled:
		s.CancelledAt = &b.CreatedAt
	}
	return booking.Reconstruct(s)
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithResource(id *uuid.UUID) *BookingBuilder {
	b.ResourceID = id
	return b
}

func (b *BookingBuilder) WithStart(start time.Time) *BookingBuilder {
	b.Start = start
	return b
}

func (b *BookingBuilder) WithDuration(d time.Duration) *BookingBuilder {
	b.Duration = d
	return b
}

func (b *BookingBuilder) WithVersion(v int) *BookingBuilder {
	b.Version = v
	return b
}

func (b *BookingBuilder) AsCompleted() *BookingBuilder {
	b.Status = booking.StatusCompleted
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CustomerID: b.CustomerID,
		ServiceID:  b.ServiceID,
		ResourceID: b.ResourceID,
		Date:       b.Start.Format(time.DateOnly),
		Start:      b.Start.Format("15:04"),
		Notes:      b.Notes,
	}
}

// BuildView renders the read model the way the read store joins it.
func (b *BookingBuilder) BuildView() *queries.BookingView {
	d := b.BuildDomain()
	price := d.Price().String()
	v := &queries.BookingView{
		ID:                 d.ID(),
		CustomerID:         d.CustomerID(),
		CustomerName:       "Dana",
		ServiceID:          d.ServiceID(),
		ServiceName:        "Haircut",
		ResourceID:         d.ResourceID(),
		Date:               d.Date().Format(time.DateOnly),
		Start:              d.Slot().Start(),
		End:                d.Slot().End(),
		Status:             d.Status().String(),
		Price:              price,
		Notes:              d.Notes(),
		CancellationReason: d.CancellationReason(),
		Version:            d.Version(),
		ConfirmedAt:        d.ConfirmedAt(),
		CompletedAt:        d.CompletedAt(),
		CancelledAt:        d.CancelledAt(),
		CreatedAt:          d.CreatedAt(),
		UpdatedAt:          d.UpdatedAt(),
	}
	if v.ResourceID != nil {
		name := "Alice"
		v.ResourceName = &name
	}
	return v
}
