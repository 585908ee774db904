package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrBookingNotComplete = errors.New("only completed bookings can be invoiced")
	ErrNotesTooLong       = errors.New("invoice notes exceed maximum length")
	ErrInvalidDueDays     = errors.New("due period cannot be negative")
)

const MaxNotesLength = 1000

// Totals is the result of pricing a charge.
type Totals struct {
	Subtotal  money.Money
	TaxRate   money.Rate
	TaxAmount money.Money
	Discount  money.Money
	Total     money.Money
}

// Compute returns tax rounded half-to-even and a total floored at zero.
func Compute(subtotal money.Money, taxRate money.Rate, discount money.Money) Totals {
	tax := taxRate.Of(subtotal)
	return Totals{
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: tax,
		Discount:  discount,
		Total:     subtotal.Add(tax).Sub(discount),
	}
}

type Invoice struct {
	id        uuid.UUID
	bookingID uuid.UUID
	number    string
	totals    Totals
	issuedOn  time.Time
	dueOn     time.Time
	notes     string
	paid      bool
	paidAt    *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewInvoice bills a completed booking at its recorded price.
func NewInvoice(b *booking.Booking, taxRate money.Rate, discount money.Money, notes string, dueDays int, now time.Time) (*Invoice, error) {
	if b.Status() != booking.StatusCompleted {
		return nil, ErrBookingNotComplete
	}
	if dueDays < 0 {
		return nil, ErrInvalidDueDays
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxNotesLength {
		return nil, ErrNotesTooLong
	}

	id := uuid.New()
	issued := booking.DayOf(now)
	return &Invoice{
		id:        id,
		bookingID: b.ID(),
		number:    Number(issued, id),
		totals:    Compute(b.Price(), taxRate, discount),
		issuedOn:  issued,
		dueOn:     issued.AddDate(0, 0, dueDays),
		notes:     notes,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Number renders INV-YYYYMMDD-XXXXXXXX from the issue day and id.
func Number(issued time.Time, id uuid.UUID) string {
	return fmt.Sprintf("INV-%s-%s", issued.Format("20060102"), strings.ToUpper(id.String()[:8]))
}

type Snapshot struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Number    string
	Totals    Totals
	IssuedOn  time.Time
	DueOn     time.Time
	Notes     string
	Paid      bool
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Reconstruct(s Snapshot) *Invoice {
	return &Invoice{
		id:        s.ID,
		bookingID: s.BookingID,
		number:    s.Number,
		totals:    s.Totals,
		issuedOn:  s.IssuedOn,
		dueOn:     s.DueOn,
		notes:     s.Notes,
		paid:      s.Paid,
		paidAt:    s.PaidAt,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}
}

func (i *Invoice) Snapshot() Snapshot {
	return Snapshot{
		ID:        i.id,
		BookingID: i.bookingID,
		Number:    i.number,
		Totals:    i.totals,
		IssuedOn:  i.issuedOn,
		DueOn:     i.dueOn,
		Notes:     i.notes,
		Paid:      i.paid,
		PaidAt:    i.paidAt,
		CreatedAt: i.createdAt,
		UpdatedAt: i.updatedAt,
	}
}

// MarkPaid is idempotent. It reports whether anything changed.
func (i *Invoice) MarkPaid(now time.Time) bool {
	if i.paid {
		return false
	}
	i.paid = true
	i.paidAt = &now
	i.updatedAt = now
	return true
}

func (i *Invoice) ID() uuid.UUID        { return i.id }
func (i *Invoice) BookingID() uuid.UUID { return i.bookingID }
func (i *Invoice) Number() string       { return i.number }
func (i *Invoice) Totals() Totals       { return i.totals }
func (i *Invoice) IssuedOn() time.Time  { return i.issuedOn }
func (i *Invoice) DueOn() time.Time     { return i.dueOn }
func (i *Invoice) Notes() string        { return i.notes }
func (i *Invoice) IsPaid() bool         { return i.paid }
func (i *Invoice) PaidAt() *time.Time   { return i.paidAt }
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time { return i.updatedAt }

