package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gin-booking-engine/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot          = errors.New("start time must be before end time")
	ErrInvalidStatus            = errors.New("invalid booking status")
	ErrUnknownAction            = errors.New("unknown booking action")
	ErrTransitionNotAllowed     = errors.New("booking transition is not allowed")
	ErrCancellationWindowClosed = errors.New("booking can no longer be cancelled")
	ErrSlotOutsideDate          = errors.New("time slot does not start on the booking date")
	ErrNotesTooLong             = errors.New("notes exceed maximum length")
	ErrReasonTooLong            = errors.New("cancellation reason exceeds maximum length")
)

const (
	MaxNotesLength  = 2000
	MaxReasonLength = 500
)

type Booking struct {
	id                 uuid.UUID
	customerID         uuid.UUID
	serviceID          uuid.UUID
	resourceID         *uuid.UUID
	date               time.Time
	slot               TimeSlot
	status             Status
	cancellationReason string
	notes              string
	price              money.Money
	createdAt          time.Time
	updatedAt          time.Time
	confirmedAt        *time.Time
	completedAt        *time.Time
	cancelledAt        *time.Time
	version            int
}

// NewBooking creates a pending booking. date is the calendar day in the
// schedule's location and slot must start on it.
func NewBooking(
	customerID, serviceID uuid.UUID,
	resourceID *uuid.UUID,
	date time.Time,
	slot TimeSlot,
	price money.Money,
	notes string,
	now time.Time,
) (*Booking, error) {
	day := DayOf(date)
	if !DayOf(slot.Start().In(date.Location())).Equal(day) {
		return nil, ErrSlotOutsideDate
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxNotesLength {
		return nil, ErrNotesTooLong
	}

	var rid *uuid.UUID
	if resourceID != nil {
		id := *resourceID
		rid = &id
	}

	return &Booking{
		id:         uuid.New(),
		customerID: customerID,
		serviceID:  serviceID,
		resourceID: rid,
		date:       day,
		slot:       slot,
		status:     StatusPending,
		notes:      notes,
		price:      price,
		createdAt:  now,
		updatedAt:  now,
		version:    1,
	}, nil
}

// Snapshot is the persisted shape of a booking.
type Snapshot struct {
	ID                 uuid.UUID
	CustomerID         uuid.UUID
	ServiceID          uuid.UUID
	ResourceID         *uuid.UUID
	Date               time.Time
	Slot               TimeSlot
	Status             Status
	CancellationReason string
	Notes              string
	Price              money.Money
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ConfirmedAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	Version            int
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:                 s.ID,
		customerID:         s.CustomerID,
		serviceID:          s.ServiceID,
		resourceID:         s.ResourceID,
		date:               s.Date,
		slot:               s.Slot,
		status:             s.Status,
		cancellationReason: s.CancellationReason,
		notes:              s.Notes,
		price:              s.Price,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		confirmedAt:        s.ConfirmedAt,
		completedAt:        s.CompletedAt,
		cancelledAt:        s.CancelledAt,
		version:            s.Version,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		CustomerID:         b.customerID,
		ServiceID:          b.serviceID,
		ResourceID:         b.resourceID,
		Date:               b.date,
		Slot:               b.slot,
		Status:             b.status,
		CancellationReason: b.cancellationReason,
		Notes:              b.notes,
		Price:              b.price,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
		ConfirmedAt:        b.confirmedAt,
		CompletedAt:        b.completedAt,
		CancelledAt:        b.cancelledAt,
		Version:            b.version,
	}
}

// Apply moves the booking along the lifecycle and bumps its version.
func (b *Booking) Apply(action Action, reason string, now time.Time) error {
	to, ok := b.status.Next(action)
	if !ok {
		return fmt.Errorf("%w: %s from %s", ErrTransitionNotAllowed, action, b.status)
	}

	switch action {
	case ActionConfirm:
		b.confirmedAt = &now
	case ActionComplete:
		b.completedAt = &now
	case ActionCancel:
		if !b.slot.Start().After(now) {
			return ErrCancellationWindowClosed
		}
		reason = strings.TrimSpace(reason)
		if len(reason) > MaxReasonLength {
			return ErrReasonTooLong
		}
		b.cancellationReason = reason
		b.cancelledAt = &now
	}

	b.status = to
	b.updatedAt = now
	b.version++
	return nil
}

func (b *Booking) CanCancel(now time.Time) bool {
	_, ok := b.status.Next(ActionCancel)
	return ok && b.slot.Start().After(now)
}

// AllowedActions lists what Apply would accept at now.
func (b *Booking) AllowedActions(now time.Time) []Action {
	var out []Action
	for _, a := range []Action{ActionConfirm, ActionStart, ActionComplete, ActionCancel, ActionMarkNoShow} {
		if _, ok := b.status.Next(a); !ok {
			continue
		}
		if a == ActionCancel && !b.CanCancel(now) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (b *Booking) IsActive() bool { return b.status.IsActive() }

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) CustomerID() uuid.UUID      { return b.customerID }
func (b *Booking) ServiceID() uuid.UUID       { return b.serviceID }
func (b *Booking) ResourceID() *uuid.UUID     { return b.resourceID }
func (b *Booking) Date() time.Time            { return b.date }
func (b *Booking) Slot() TimeSlot             { return b.slot }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) CancellationReason() string { return b.cancellationReason }
func (b *Booking) Notes() string              { return b.notes }
func (b *Booking) Price() money.Money         { return b.price }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
func (b *Booking) ConfirmedAt() *time.Time    { return b.confirmedAt }
func (b *Booking) CompletedAt() *time.Time    { return b.completedAt }
func (b *Booking) CancelledAt() *time.Time    { return b.cancelledAt }
func (b *Booking) Version() int               { return b.version }

// DayOf truncates t to midnight in its own location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
