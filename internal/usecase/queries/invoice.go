package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type InvoiceView struct {
	ID            uuid.UUID  `json:"id"`
	BookingID     uuid.UUID  `json:"booking_id"`
	InvoiceNumber string     `json:"invoice_number"`
	Subtotal      string     `json:"subtotal"`
	TaxRate       string     `json:"tax_rate"`
	TaxAmount     string     `json:"tax_amount"`
	Discount      string     `json:"discount"`
	Total         string     `json:"total"`
	IssueDate     string     `json:"issue_date"`
	DueDate       string     `json:"due_date"`
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type InvoiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*InvoiceView, error)
}

type InvoiceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (*InvoiceView, error)
}

type invoiceQueriesImpl struct {
	store InvoiceReadStore
}

func NewInvoiceQueries(store InvoiceReadStore) InvoiceQueries {
	return &invoiceQueriesImpl{store: store}
}

func (q *invoiceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrInvoiceNotFound)
	}
	return v, nil
}

func (q *invoiceQueriesImpl) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*InvoiceView, error) {
	v, err := q.store.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, ErrInvoiceNotFound)
	}
	return v, nil
}
