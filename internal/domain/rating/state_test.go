//go:build unit

package rating_test

import (
	"testing"
	"time"

	"gin-booking-engine/internal/domain/rating"
	"gin-booking-engine/internal/domain/review"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	now := time.Date(2030, 6, 3, 12, 0, 0, 0, time.UTC)
	s := rating.Initial(uuid.New())
	assert.Zero(t, s.Average)
	assert.Zero(t, s.Count)

	var averages []float64
	for _, r := range []int{4, 5, 3} {
		var err error
		s, err = s.Record(r, now)
		require.NoError(t, err)
		averages = append(averages, s.Average)
	}

	assert.InDeltaSlice(t, []float64{4.0, 4.5, 4.0}, averages, 1e-9)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, now, s.UpdatedAt)
}

func TestRecordRejectsOutOfRange(t *testing.T) {
	s := rating.State{ResourceID: uuid.New(), Average: 4, Count: 2}

	for _, v := range []int{0, 6, -3} {
		got, err := s.Record(v, time.Now())
		require.ErrorIs(t, err, review.ErrInvalidRating)
		assert.Equal(t, s, got, "state is unchanged on error")
	}
}
