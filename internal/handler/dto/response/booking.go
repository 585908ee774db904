package response

import (
	"strconv"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	CustomerID         uuid.UUID  `json:"customer_id"`
	CustomerName       string     `json:"customer_name,omitempty"`
	ServiceID          uuid.UUID  `json:"service_id"`
	ServiceName        string     `json:"service_name,omitempty"`
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

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

// FromBooking renders a booking straight off the write model; joined names
// are left empty.
func FromBooking(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID(),
		CustomerID:         b.CustomerID(),
		ServiceID:          b.ServiceID(),
		ResourceID:         b.ResourceID(),
		Date:               b.Date().Format(time.DateOnly),
		Start:              b.Slot().Start(),
		End:                b.Slot().End(),
		Status:             b.Status().String(),
		Price:              b.Price().String(),
		Notes:              b.Notes(),
		CancellationReason: b.CancellationReason(),
		Version:            b.Version(),
		ConfirmedAt:        b.ConfirmedAt(),
		CompletedAt:        b.CompletedAt(),
		CancelledAt:        b.CancelledAt(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	resp := &BookingResponse{}
	if err := copyFrom(resp, v); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	out := make([]*BookingResponse, len(views))
	for i, v := range views {
		resp, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		out[i] = resp
	}
	return out, nil
}

// ETag is the weak validator clients echo back in If-Match.
func ETag(version int) string {
	return `W/"` + strconv.Itoa(version) + `"`
}
