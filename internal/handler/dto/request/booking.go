package request

import (
	"strconv"
	"strings"

	"gin-booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	ServiceID  uuid.UUID `json:"service_id" binding:"required"`
	// ResourceID omitted lets the engine assign the least loaded resource.
	ResourceID *uuid.UUID `json:"resource_id,omitempty"`
	Date       string     `json:"date" binding:"required"`
	Start      string     `json:"start" binding:"required"`
	Notes      string     `json:"notes,omitempty" binding:"max=1000"`
}

func (r CreateBookingRequest) ToInput(idempotencyKey *uuid.UUID) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		CustomerID:     r.CustomerID,
		ServiceID:      r.ServiceID,
		ResourceID:     r.ResourceID,
		Date:           strings.TrimSpace(r.Date),
		Start:          strings.TrimSpace(r.Start),
		Notes:          strings.TrimSpace(r.Notes),
		IdempotencyKey: idempotencyKey,
	}
}

type TransitionBookingRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason,omitempty" binding:"max=500"`
}

func (r TransitionBookingRequest) ToInput(bookingID uuid.UUID, expectedVersion *int) commands.TransitionInput {
	return commands.TransitionInput{
		BookingID:       bookingID,
		Action:          strings.TrimSpace(r.Action),
		Reason:          strings.TrimSpace(r.Reason),
		ExpectedVersion: expectedVersion,
	}
}

// ParseIfMatch accepts `3`, `"3"` and `W/"3"`. An empty header means no
// precondition.
func ParseIfMatch(header string) (*int, bool) {
	v := strings.TrimSpace(header)
	if v == "" {
		return nil, true
	}
	v = strings.TrimPrefix(v, "W/")
	v = strings.Trim(v, `"`)
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return nil, false
	}
	return &n, true
}

// ParseIdempotencyKey returns nil for an absent header.
func ParseIdempotencyKey(header string) (*uuid.UUID, bool) {
	if header == "" {
		return nil, true
	}
	key, err := uuid.Parse(header)
	if err != nil || key == uuid.Nil {
		return nil, false
	}
	return &key, true
}
