package shared

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/customer"
	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/domain/offering"
	"gin-booking-engine/internal/domain/rating"
	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/domain/review"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only snapshot for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Bookings() BookingRepository
	Resources() ResourceRepository
	Offerings() OfferingRepository
	Customers() CustomerRepository
	Reviews() ReviewRepository
	RatingStates() RatingStateRepository
	Invoices() InvoiceRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
}

type BookingRepository interface {
	// LockSchedule serializes writers on one resource's day until the tx ends.
	LockSchedule(ctx context.Context, resourceID uuid.UUID, day time.Time) error
	ListActiveSlots(ctx context.Context, resourceID uuid.UUID, day time.Time) ([]booking.TimeSlot, error)
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// Update writes b only if the stored version still equals expectedVersion.
	Update(ctx context.Context, b *booking.Booking, expectedVersion int) error
	CountActiveByResource(ctx context.Context, resourceID uuid.UUID) (int, error)
	CountActiveByService(ctx context.Context, serviceID uuid.UUID) (int, error)
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// FindByIDForShare blocks retirement of the resource until the tx ends.
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// ListCandidates returns available resources working on day, least loaded first.
	ListCandidates(ctx context.Context, day time.Time) ([]*resource.Resource, error)
	Create(ctx context.Context, r *resource.Resource) error
	Update(ctx context.Context, r *resource.Resource) error
}

type OfferingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*offering.Offering, error)
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*offering.Offering, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*offering.Offering, error)
	Create(ctx context.Context, o *offering.Offering) error
	Update(ctx context.Context, o *offering.Offering) error
}

type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	Create(ctx context.Context, c *customer.Customer) error
	IncrementBookings(ctx context.Context, id uuid.UUID) error
}

type ReviewRepository interface {
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	Create(ctx context.Context, r *review.Review) error
}

type RatingStateRepository interface {
	// GetForUpdate returns rating.Initial when the resource has no reviews yet.
	GetForUpdate(ctx context.Context, resourceID uuid.UUID) (rating.State, error)
	Save(ctx context.Context, s rating.State) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *invoice.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*invoice.Invoice, error)
	Update(ctx context.Context, inv *invoice.Invoice) error
}

type IdempotencyRepository interface {
	// Find ignores records that expired before now.
	Find(ctx context.Context, key, customerID uuid.UUID, now time.Time) (*IdempotencyRecord, error)
	// TryInsert reports false when an unexpired record already holds the key.
	TryInsert(ctx context.Context, rec IdempotencyRecord) (bool, error)
	AttachBooking(ctx context.Context, key, customerID, bookingID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, ev OutboxEvent) error
	// ClaimPending locks up to limit unpublished events, skipping rows other relays hold.
	ClaimPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}
