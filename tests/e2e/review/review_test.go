//go:build e2e

package review_test

import (
	"fmt"
	"net/http"
	"testing"

	reqdto "gin-booking-engine/internal/handler/dto/request"
	resdto "gin-booking-engine/internal/handler/dto/response"
	"gin-booking-engine/tests/common/dbtest"
	"gin-booking-engine/tests/common/httptest"
	"gin-booking-engine/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	resourceReviewsURL = "/api/resources/%s/reviews"
	resourceRatingURL  = "/api/resources/%s/rating"
)

type ReviewSuite struct {
	e2e.SharedSuite
}

func TestReviewSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReviewSuite))
}

// completedBooking books start on the catalog day and walks it to completed.
func (s *ReviewSuite) completedBooking(t *testing.T, cat e2e.Catalog, start string) uuid.UUID {
	t.Helper()
	b := s.Book(t, cat.BookingRequest(start))
	s.Advance(t, b.ID, "confirm", "complete")
	return b.ID
}

// =============================================================================
// TestCreateReview
// =============================================================================

func (s *ReviewSuite) TestCreateReview() {
	s.Run("success: review updates the running rating", func() {
		t := s.T()
		cat := s.SeedCatalog(t)
		first := s.completedBooking(t, cat, "09:00")
		second := s.completedBooking(t, cat, "11:00")

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.ReviewsURL,
			reqdto.CreateReviewRequest{BookingID: first, Rating: 5, Comment: "Great cut"})
		var created resdto.ReviewResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &created)
		require.Equal(t, cat.CustomerID, created.CustomerID)
		require.NotNil(t, created.Resource)
		require.InDelta(t, 5.0, created.Resource.AverageRating, 1e-9)
		require.Equal(t, 1, created.Resource.ReviewCount)

		rec = httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.ReviewsURL,
			reqdto.CreateReviewRequest{BookingID: second, Rating: 2})
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &created)
		require.InDelta(t, 3.5, created.Resource.AverageRating, 1e-9)
		require.Equal(t, 2, created.Resource.ReviewCount)

		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(resourceRatingURL, cat.ResourceID), nil)
		var rating resdto.RatingResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &rating)
		want := resdto.RatingResponse{ResourceID: cat.ResourceID, AverageRating: 3.5, ReviewCount: 2}
		if diff := cmp.Diff(want, rating, cmpopts.IgnoreFields(resdto.RatingResponse{}, "UpdatedAt")); diff != "" {
			t.Errorf("rating mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("error: second review for a booking is rejected with 409", func() {
		t := s.T()
		cat := s.SeedCatalog(t)
		id := s.completedBooking(t, cat, "10:00")
		req := reqdto.CreateReviewRequest{BookingID: id, Rating: 4}

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.ReviewsURL, req)
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, nil)

		rec = httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.ReviewsURL, req)
		httptest.AssertErrorResponse(t, rec, http.StatusConflict, "already has a review")
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "reviews", "booking_id = $1", id))
	})

	s.Run("error: booking that is not completed is rejected with 400", func() {
		t := s.T()
		cat := s.SeedCatalog(t)
		b := s.Book(t, cat.BookingRequest("10:00"))

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.ReviewsURL,
			reqdto.CreateReviewRequest{BookingID: b.ID, Rating: 4})
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "")
		require.Zero(t, dbtest.CountRows(t, s.DB, "reviews", ""))
	})

	s.Run("error: unknown booking is rejected with 404", func() {
		t := s.T()
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.ReviewsURL,
			reqdto.CreateReviewRequest{BookingID: uuid.New(), Rating: 4})
		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "booking not found")
	})
}

// =============================================================================
// TestListResourceReviews
// =============================================================================

func (s *ReviewSuite) TestListResourceReviews() {
	s.Run("success: newest first across pages", func() {
		t := s.T()
		cat := s.SeedCatalog(t)
		for i, start := range []string{"09:00", "11:00", "13:00"} {
			id := s.completedBooking(t, cat, start)
			rec := httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.ReviewsURL,
				reqdto.CreateReviewRequest{BookingID: id, Rating: i + 3, Comment: start})
			httptest.AssertSuccessResponse(t, rec, http.StatusCreated, nil)
		}

		url := fmt.Sprintf(resourceReviewsURL, cat.ResourceID)
		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, url+"?limit=2", nil)
		var page1 resdto.ReviewListResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &page1)
		require.Len(t, page1.Reviews, 2)
		require.NotEmpty(t, page1.NextCursor)
		require.Equal(t, "Dana", page1.Reviews[0].CustomerName)

		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, url+"?limit=2&after="+page1.NextCursor, nil)
		var page2 resdto.ReviewListResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &page2)
		require.Len(t, page2.Reviews, 1)
		require.Empty(t, page2.NextCursor)

		seen := map[uuid.UUID]bool{}
		for _, r := range append(page1.Reviews, page2.Reviews...) {
			require.False(t, seen[r.ID], "review %s listed twice", r.ID)
			seen[r.ID] = true
		}
		require.Len(t, seen, 3)
	})

	s.Run("error: unknown resource is rejected with 404", func() {
		t := s.T()
		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(resourceReviewsURL, uuid.New()), nil)
		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "resource not found")
	})
}
