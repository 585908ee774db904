package response

import (
	"time"

	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type RatingResponse struct {
	ResourceID    uuid.UUID  `json:"resource_id"`
	AverageRating float64    `json:"average_rating"`
	ReviewCount   int        `json:"review_count"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type ReviewResponse struct {
	ID         uuid.UUID       `json:"id"`
	BookingID  uuid.UUID       `json:"booking_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	ResourceID *uuid.UUID      `json:"resource_id,omitempty"`
	Rating     int             `json:"rating"`
	Comment    string          `json:"comment,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Resource   *RatingResponse `json:"resource_rating,omitempty"`
}

func FromCreateReviewResult(res *commands.CreateReviewResult) *ReviewResponse {
	r := res.Review
	resp := &ReviewResponse{
		ID:         r.ID(),
		BookingID:  r.BookingID(),
		CustomerID: r.CustomerID(),
		ResourceID: r.ResourceID(),
		Rating:     r.Rating().Value(),
		Comment:    r.Comment().String(),
		CreatedAt:  r.CreatedAt(),
	}
	if st := res.ResourceRating; st != nil {
		resp.Resource = &RatingResponse{
			ResourceID:    st.ResourceID,
			AverageRating: st.Average,
			ReviewCount:   st.Count,
			UpdatedAt:     &st.UpdatedAt,
		}
	}
	return resp
}

type ReviewListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	BookingID    uuid.UUID `json:"booking_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews    []*ReviewListItemResponse `json:"reviews"`
	NextCursor string                    `json:"next_cursor,omitempty"`
}

func FromReviewList(items []*queries.ReviewListItem) ([]*ReviewListItemResponse, error) {
	res := make([]*ReviewListItemResponse, len(items))
	for i, it := range items {
		res[i] = &ReviewListItemResponse{}
		if err := copyFrom(res[i], it); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func FromResourceRating(r *queries.ResourceRating) (*RatingResponse, error) {
	resp := &RatingResponse{}
	if err := copyFrom(resp, r); err != nil {
		return nil, err
	}
	return resp, nil
}
