package request

import (
	"strings"

	"gin-booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment,omitempty" binding:"max=1000"`
}

func (r CreateReviewRequest) ToInput() commands.CreateReviewInput {
	return commands.CreateReviewInput{
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   strings.TrimSpace(r.Comment),
	}
}
