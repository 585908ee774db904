//go:build unit || e2e

package builder

import (
	"time"

	"gin-booking-engine/internal/domain/booking"
	domreview "gin-booking-engine/internal/domain/review"
	reqdto "gin-booking-engine/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	Booking   *BookingBuilder
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		Booking:   NewBookingBuilder().AsCompleted(),
		Rating:    5,
		Comment:   "Excellent service!",
		CreatedAt: BaseTime.Add(4 * time.Hour),
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(r.Booking.BuildDomain(), r.Rating, r.Comment, r.CreatedAt)
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) WithBookingStatus(s booking.Status) *ReviewBuilder {
	r.Booking.WithStatus(s)
	return r
}

func (r *ReviewBuilder) WithResource(id *uuid.UUID) *ReviewBuilder {
	r.Booking.WithResource(id)
	return r
}

func (r *ReviewBuilder) AsPoorRating() *ReviewBuilder {
	r.Rating = 1
	r.Comment = "Poor service"
	return r
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		BookingID: r.Booking.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}
