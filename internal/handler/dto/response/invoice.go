package response

import (
	"time"

	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type InvoiceResponse struct {
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

func FromInvoice(inv *invoice.Invoice) *InvoiceResponse {
	t := inv.Totals()
	return &InvoiceResponse{
		ID:            inv.ID(),
		BookingID:     inv.BookingID(),
		InvoiceNumber: inv.Number(),
		Subtotal:      t.Subtotal.String(),
		TaxRate:       t.TaxRate.String(),
		TaxAmount:     t.TaxAmount.String(),
		Discount:      t.Discount.String(),
		Total:         t.Total.String(),
		IssueDate:     inv.IssuedOn().Format(time.DateOnly),
		DueDate:       inv.DueOn().Format(time.DateOnly),
		IsPaid:        inv.IsPaid(),
		PaidAt:        inv.PaidAt(),
		Notes:         inv.Notes(),
		CreatedAt:     inv.CreatedAt(),
	}
}

func FromInvoiceView(v *queries.InvoiceView) (*InvoiceResponse, error) {
	resp := &InvoiceResponse{}
	if err := copyFrom(resp, v); err != nil {
		return nil, err
	}
	return resp, nil
}
