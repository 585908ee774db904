package request

import (
	"strings"

	"gin-booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

// Amounts are decimal strings so no precision is lost in JSON.
type GenerateInvoiceRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	TaxRate   string    `json:"tax_rate" binding:"required"`
	Discount  string    `json:"discount,omitempty"`
	Notes     string    `json:"notes,omitempty" binding:"max=1000"`
}

func (r GenerateInvoiceRequest) ToInput() commands.GenerateInvoiceInput {
	return commands.GenerateInvoiceInput{
		BookingID: r.BookingID,
		TaxRate:   strings.TrimSpace(r.TaxRate),
		Discount:  strings.TrimSpace(r.Discount),
		Notes:     strings.TrimSpace(r.Notes),
	}
}
