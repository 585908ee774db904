package shared

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type IdempotencyRecord struct {
	Key         uuid.UUID
	CustomerID  uuid.UUID
	RequestHash string
	BookingID   *uuid.UUID
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Event types written to the outbox.
const (
	EventBookingCreated   = "booking.created"
	EventInvoiceGenerated = "invoice.generated"
	EventInvoicePaid      = "invoice.paid"
	EventReviewCreated    = "review.created"
)

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

func NewOutboxEvent(aggregateID uuid.UUID, eventType string, payload any, now time.Time) (OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, err
	}
	return OutboxEvent{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Payload:     data,
		CreatedAt:   now,
	}, nil
}

// BookingEventType names the event for a booking entering status.
func BookingEventType(status string) string {
	return "booking." + status
}
