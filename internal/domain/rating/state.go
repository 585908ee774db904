package rating

import (
	"time"

	"gin-booking-engine/internal/domain/review"

	"github.com/google/uuid"
)

// State is the running mean of a resource's review ratings.
type State struct {
	ResourceID uuid.UUID
	Average    float64
	Count      int
	UpdatedAt  time.Time
}

// Initial is the state of a resource nobody has reviewed yet.
func Initial(resourceID uuid.UUID) State {
	return State{ResourceID: resourceID}
}

// Record folds one rating into the mean:
// new_avg = (old_avg*count + rating) / (count+1).
func (s State) Record(value int, now time.Time) (State, error) {
	if _, err := review.NewRating(value); err != nil {
		return s, err
	}
	n := float64(s.Count)
	return State{
		ResourceID: s.ResourceID,
		Average:    (s.Average*n + float64(value)) / (n + 1),
		Count:      s.Count + 1,
		UpdatedAt:  now,
	}, nil
}
