//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/customer"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/domain/offering"
	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/tests/common/builder"
	"gin-booking-engine/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testDate = "2030-06-03"

// fixture is a Monday with two resources working 09:00-18:00, a one-hour
// service priced 50.00 and one customer. The clock reads 08:00.
type fixture struct {
	store    *memstore.Store
	clock    *clock.MockClock
	settings slot.Settings

	alice    *resource.Resource
	bob      *resource.Resource
	service  *offering.Offering
	customer *customer.Customer

	invalidator *spyInvalidator
	recorder    *spyRecorder
	bookings    commands.BookingCommands
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	settings, err := slot.NewSettings("UTC", "09:00", "18:00", 30*time.Minute)
	require.NoError(t, err)

	hours, err := resource.ParseDayHours("09:00", "18:00")
	require.NoError(t, err)
	week := resource.WeeklyHours{time.Monday: hours, time.Tuesday: hours}

	f := &fixture{
		store:       memstore.New(),
		clock:       clock.NewMockClock(builder.BaseTime),
		settings:    settings,
		invalidator: &spyInvalidator{},
		recorder:    &spyRecorder{},
	}

	f.alice, err = resource.NewResource(uuid.New(), "Alice", week, builder.BaseTime)
	require.NoError(t, err)
	f.bob, err = resource.NewResource(uuid.New(), "Bob", week, builder.BaseTime)
	require.NoError(t, err)
	price, err := money.Parse("50.00")
	require.NoError(t, err)
	f.service, err = offering.NewOffering(uuid.New(), "Haircut", "", "hair", 60, price, builder.BaseTime)
	require.NoError(t, err)
	f.customer, err = customer.NewCustomer(uuid.New(), "Dana", "dana@example.com", "", builder.BaseTime)
	require.NoError(t, err)

	f.store.PutResource(f.alice)
	f.store.PutResource(f.bob)
	f.store.PutOffering(f.service)
	f.store.PutCustomer(f.customer)

	f.bookings = commands.NewBookingUseCase(f.store, settings, 24*time.Hour, f.invalidator, f.recorder, f.clock)
	return f
}

func (f *fixture) input(start string, resourceID *uuid.UUID) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		CustomerID: f.customer.ID(),
		ServiceID:  f.service.ID(),
		ResourceID: resourceID,
		Date:       testDate,
		Start:      start,
	}
}

func (f *fixture) book(t *testing.T, start string, resourceID *uuid.UUID) *booking.Booking {
	t.Helper()
	res, err := f.bookings.CreateBooking(context.Background(), f.input(start, resourceID))
	require.NoError(t, err)
	return res.Booking
}

// completed stores a finished booking on resourceID and returns it.
func (f *fixture) completed(t *testing.T, resourceID *uuid.UUID, start time.Time) *booking.Booking {
	t.Helper()
	b := builder.NewBookingBuilder().
		WithResource(resourceID).
		WithStart(start).
		AsCompleted().
		With(func(bb *builder.BookingBuilder) {
			bb.CustomerID = f.customer.ID()
			bb.ServiceID = f.service.ID()
			bb.PriceCents = f.service.Price().Cents()
		}).
		BuildDomain()
	f.store.PutBooking(b)
	return b
}

func ref(id uuid.UUID) *uuid.UUID { return &id }

type invalidation struct {
	ResourceID uuid.UUID
	Day        time.Time
}

type spyInvalidator struct {
	mu    sync.Mutex
	calls []invalidation
}

func (s *spyInvalidator) Invalidate(_ context.Context, resourceID uuid.UUID, day time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, invalidation{ResourceID: resourceID, Day: day})
}

func (s *spyInvalidator) Calls() []invalidation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]invalidation(nil), s.calls...)
}

type spyRecorder struct {
	mu          sync.Mutex
	attempts    map[string]int
	transitions map[string]int
}

func (s *spyRecorder) ReservationAttempt(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempts == nil {
		s.attempts = map[string]int{}
	}
	s.attempts[outcome]++
}

func (s *spyRecorder) Transition(action, outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transitions == nil {
		s.transitions = map[string]int{}
	}
	s.transitions[action+"/"+outcome]++
}

func (s *spyRecorder) Attempts(outcome string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[outcome]
}

func (s *spyRecorder) Transitions(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitions[key]
}
