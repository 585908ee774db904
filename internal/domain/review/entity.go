package review

import (
	"time"

	"gin-booking-engine/internal/domain/booking"

	"github.com/google/uuid"
)

// Review belongs to exactly one completed booking.
type Review struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	customerID uuid.UUID
	resourceID *uuid.UUID
	rating     Rating
	comment    Comment
	createdAt  time.Time
}

// NewReview checks the rating and comment, then the booking's status.
func NewReview(b *booking.Booking, ratingValue int, commentText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	if b.Status() != booking.StatusCompleted {
		return nil, ErrBookingNotComplete
	}

	return &Review{
		id:         uuid.New(),
		bookingID:  b.ID(),
		customerID: b.CustomerID(),
		resourceID: b.ResourceID(),
		rating:     rating,
		comment:    comment,
		createdAt:  now,
	}, nil
}

func ReconstructReview(id, bookingID, customerID uuid.UUID, resourceID *uuid.UUID, rating Rating, comment Comment, createdAt time.Time) *Review {
	return &Review{
		id:         id,
		bookingID:  bookingID,
		customerID: customerID,
		resourceID: resourceID,
		rating:     rating,
		comment:    comment,
		createdAt:  createdAt,
	}
}

func (r *Review) ID() uuid.UUID          { return r.id }
func (r *Review) BookingID() uuid.UUID   { return r.bookingID }
func (r *Review) CustomerID() uuid.UUID  { return r.customerID }
func (r *Review) ResourceID() *uuid.UUID { return r.resourceID }
func (r *Review) Rating() Rating         { return r.rating }
func (r *Review) Comment() Comment       { return r.comment }
func (r *Review) CreatedAt() time.Time   { return r.createdAt }
