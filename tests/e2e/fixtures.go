//go:build e2e

package e2e

import (
	"net/http"
	"testing"
	"time"

	reqdto "gin-booking-engine/internal/handler/dto/request"
	resdto "gin-booking-engine/internal/handler/dto/response"
	"gin-booking-engine/tests/common/dbtest"
	"gin-booking-engine/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	BookingsURL     = "/api/bookings"
	AvailabilityURL = "/api/availability"
	ReviewsURL      = "/api/reviews"
	InvoicesURL     = "/api/invoices"
)

// Catalog is one bookable resource, one service and one customer.
type Catalog struct {
	ResourceID uuid.UUID
	ServiceID  uuid.UUID
	CustomerID uuid.UUID
	// Day is a future Monday inside the resource's hours.
	Day time.Time
}

// SeedCatalog inserts a Mon-Fri 09:00-17:00 resource and a 60 minute, 50.00 service.
func (s *SharedSuite) SeedCatalog(t *testing.T) Catalog {
	t.Helper()
	return Catalog{
		ResourceID: dbtest.CreateTestResource(t, s.DB, "Alice", dbtest.WeekdayHours()),
		ServiceID:  dbtest.CreateTestService(t, s.DB, "Haircut", 60, 5000),
		CustomerID: dbtest.CreateTestCustomer(t, s.DB, "Dana", "dana@example.com"),
		Day:        NextWeekday(time.Monday),
	}
}

func (c Catalog) BookingRequest(start string) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CustomerID: c.CustomerID,
		ServiceID:  c.ServiceID,
		ResourceID: &c.ResourceID,
		Date:       c.Day.Format(time.DateOnly),
		Start:      start,
	}
}

// Book creates a booking and fails the test unless it is accepted.
func (s *SharedSuite) Book(t *testing.T, req reqdto.CreateBookingRequest) resdto.BookingResponse {
	t.Helper()
	rec := httptest.PerformRequest(t, s.Router, http.MethodPost, BookingsURL, req)
	var body resdto.BookingResponse
	httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &body)
	require.NotEqual(t, uuid.Nil, body.ID)
	return body
}

// Advance applies actions in order and returns the final state.
func (s *SharedSuite) Advance(t *testing.T, id uuid.UUID, actions ...string) resdto.BookingResponse {
	t.Helper()
	var body resdto.BookingResponse
	for _, a := range actions {
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, BookingsURL+"/"+id.String()+"/transitions",
			reqdto.TransitionBookingRequest{Action: a})
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
	}
	return body
}
