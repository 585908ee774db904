//go:build unit

package queries_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/domain/offering"
	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/queries"
	"gin-booking-engine/tests/common/builder"
	"gin-booking-engine/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	store    *memstore.Store
	clock    *clock.MockClock
	cache    *mapCache
	resource *resource.Resource
	service  *offering.Offering
	uc       queries.AvailabilityQueries
}

func newAvailabilityFixture(t *testing.T, durationMin int) *availabilityFixture {
	t.Helper()
	settings, err := slot.NewSettings("UTC", "09:00", "18:00", 30*time.Minute)
	require.NoError(t, err)
	hours, err := resource.ParseDayHours("09:00", "18:00")
	require.NoError(t, err)
	r, err := resource.NewResource(uuid.New(), "Alice", resource.WeeklyHours{time.Monday: hours}, builder.BaseTime)
	require.NoError(t, err)
	price, _ := money.FromCents(4000)
	svc, err := offering.NewOffering(uuid.New(), "Trim", "", "", durationMin, price, builder.BaseTime)
	require.NoError(t, err)

	f := &availabilityFixture{
		store:    memstore.New(),
		clock:    clock.NewMockClock(builder.BaseTime),
		cache:    newMapCache(),
		resource: r,
		service:  svc,
	}
	f.store.PutResource(r)
	f.store.PutOffering(svc)
	f.uc = queries.NewAvailabilityQueries(f.store, settings, f.cache, f.clock)
	return f
}

func (f *availabilityFixture) slots(t *testing.T, date string, resourceID *uuid.UUID) []queries.SlotView {
	t.Helper()
	view, err := f.uc.AvailableSlots(context.Background(), queries.AvailabilityInput{
		ServiceID:  f.service.ID(),
		ResourceID: resourceID,
		Date:       date,
	})
	require.NoError(t, err)
	return view.Slots
}

func at(hh, mm int) time.Time {
	return time.Date(2030, 6, 3, hh, mm, 0, 0, time.UTC)
}

func TestAvailableSlots_ClosingBoundary(t *testing.T) {
	f := newAvailabilityFixture(t, 45)
	id := f.resource.ID()

	got := f.slots(t, "2030-06-03", &id)
	require.NotEmpty(t, got)
	assert.Equal(t, at(9, 0), got[0].Start)
	last := got[len(got)-1]
	assert.Equal(t, at(17, 15), last.Start)
	assert.Equal(t, at(18, 0), last.End)
	for _, s := range got {
		assert.NotEqual(t, at(17, 30), s.Start)
	}
}

func TestAvailableSlots_SkipsBusyWindows(t *testing.T) {
	f := newAvailabilityFixture(t, 60)
	id := f.resource.ID()
	f.store.PutBooking(builder.NewBookingBuilder().WithResource(&id).WithStart(at(10, 0)).BuildDomain())
	f.store.PutBooking(builder.NewBookingBuilder().WithResource(&id).WithStart(at(14, 0)).WithStatus(booking.StatusCancelled).BuildDomain())

	got := f.slots(t, "2030-06-03", &id)
	starts := make([]time.Time, len(got))
	for i, s := range got {
		starts[i] = s.Start
	}
	assert.NotContains(t, starts, at(9, 30))
	assert.NotContains(t, starts, at(10, 0))
	assert.NotContains(t, starts, at(10, 30))
	assert.Contains(t, starts, at(9, 0))
	assert.Contains(t, starts, at(11, 0))
	assert.Contains(t, starts, at(14, 0), "cancelled bookings free their window")
}

func TestAvailableSlots_EmptyResults(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(f *availabilityFixture) queries.AvailabilityInput
	}{
		{
			name: "success: resource closed that weekday",
			setup: func(f *availabilityFixture) queries.AvailabilityInput {
				id := f.resource.ID()
				return queries.AvailabilityInput{ServiceID: f.service.ID(), ResourceID: &id, Date: "2030-06-04"}
			},
		},
		{
			name: "success: date in the past",
			setup: func(f *availabilityFixture) queries.AvailabilityInput {
				return queries.AvailabilityInput{ServiceID: f.service.ID(), Date: "2030-06-02"}
			},
		},
		{
			name: "success: service longer than the working day",
			setup: func(f *availabilityFixture) queries.AvailabilityInput {
				price, _ := money.FromCents(100)
				long, _ := offering.NewOffering(uuid.New(), "Marathon", "", "", 600, price, builder.BaseTime)
				f.store.PutOffering(long)
				return queries.AvailabilityInput{ServiceID: long.ID(), Date: "2030-06-03"}
			},
		},
		{
			name: "success: retired resource",
			setup: func(f *availabilityFixture) queries.AvailabilityInput {
				f.resource.Retire(builder.BaseTime)
				f.store.PutResource(f.resource)
				id := f.resource.ID()
				return queries.AvailabilityInput{ServiceID: f.service.ID(), ResourceID: &id, Date: "2030-06-03"}
			},
		},
		{
			name: "success: inactive service",
			setup: func(f *availabilityFixture) queries.AvailabilityInput {
				f.service.Retire(builder.BaseTime)
				f.store.PutOffering(f.service)
				return queries.AvailabilityInput{ServiceID: f.service.ID(), Date: "2030-06-03"}
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAvailabilityFixture(t, 60)
			view, err := f.uc.AvailableSlots(context.Background(), tc.setup(f))
			require.NoError(t, err)
			assert.NotNil(t, view.Slots)
			assert.Empty(t, view.Slots)
		})
	}
}

func TestAvailableSlots_Errors(t *testing.T) {
	f := newAvailabilityFixture(t, 60)

	_, err := f.uc.AvailableSlots(context.Background(), queries.AvailabilityInput{ServiceID: f.service.ID(), Date: "June 3rd"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrValidation))

	_, err = f.uc.AvailableSlots(context.Background(), queries.AvailabilityInput{ServiceID: uuid.New(), Date: "2030-06-03"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, queries.ErrServiceNotFound))

	unknown := uuid.New()
	_, err = f.uc.AvailableSlots(context.Background(), queries.AvailabilityInput{ServiceID: f.service.ID(), ResourceID: &unknown, Date: "2030-06-03"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, queries.ErrResourceNotFound))
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestAvailableSlots_TodayStartsFromNow(t *testing.T) {
	f := newAvailabilityFixture(t, 60)
	f.clock.Set(at(12, 10))

	got := f.slots(t, "2030-06-03", nil)
	require.NotEmpty(t, got)
	assert.Equal(t, at(12, 30), got[0].Start)
}

func TestAvailableSlots_Cache(t *testing.T) {
	f := newAvailabilityFixture(t, 60)
	id := f.resource.ID()

	first := f.slots(t, "2030-06-03", &id)
	assert.Equal(t, 1, f.cache.sets)

	// A booking written behind the cache's back is invisible until invalidated.
	f.store.PutBooking(builder.NewBookingBuilder().WithResource(&id).WithStart(at(9, 0)).BuildDomain())
	assert.Equal(t, first, f.slots(t, "2030-06-03", &id))

	f.cache.Invalidate(context.Background(), id, at(0, 0))
	after := f.slots(t, "2030-06-03", &id)
	assert.Less(t, len(after), len(first))
	assert.Equal(t, at(10, 0), after[0].Start)

	f.clock.Set(at(15, 5))
	late := f.slots(t, "2030-06-03", &id)
	assert.Equal(t, at(15, 30), late[0].Start, "cached days are still cut at now")
	assert.Equal(t, 2, f.cache.sets)
}

func TestAvailableSlots_CacheInvalidatedDuringCompute(t *testing.T) {
	f := newAvailabilityFixture(t, 60)
	id := f.resource.ID()

	// A booking commits after the read snapshot was taken and its invalidation
	// lands before the computed slots are stored.
	f.cache.beforeSet = func() {
		f.cache.beforeSet = nil
		f.cache.Invalidate(context.Background(), id, at(0, 0))
	}
	first := f.slots(t, "2030-06-03", &id)
	require.Equal(t, at(9, 0), first[0].Start)
	f.store.PutBooking(builder.NewBookingBuilder().WithResource(&id).WithStart(at(9, 0)).BuildDomain())

	after := f.slots(t, "2030-06-03", &id)
	require.NotEmpty(t, after)
	assert.Equal(t, at(10, 0), after[0].Start, "slots stored under the old generation must not be served")
	assert.Equal(t, 2, f.cache.sets)
}

// mapCache versions entries per resource/day like the redis cache does.
type mapCache struct {
	mu          sync.Mutex
	generations map[cacheDay]int64
	entries     map[cacheEntryKey][]booking.TimeSlot
	sets        int
	beforeSet   func()
}

type cacheDay struct {
	resourceID uuid.UUID
	day        string
}

type cacheEntryKey struct {
	key        queries.SlotKey
	generation int64
}

func newMapCache() *mapCache {
	return &mapCache{
		generations: map[cacheDay]int64{},
		entries:     map[cacheEntryKey][]booking.TimeSlot{},
	}
}

func (c *mapCache) Get(_ context.Context, key queries.SlotKey) queries.CacheLookup {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.generations[cacheDay{key.ResourceID, key.Day.Format(time.DateOnly)}]
	v, ok := c.entries[cacheEntryKey{key, gen}]
	return queries.CacheLookup{Slots: v, Hit: ok, Generation: gen}
}

func (c *mapCache) Set(_ context.Context, key queries.SlotKey, gen int64, slots []booking.TimeSlot) {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheEntryKey{key, gen}] = slots
	c.sets++
}

func (c *mapCache) Invalidate(_ context.Context, resourceID uuid.UUID, day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[cacheDay{resourceID, day.Format(time.DateOnly)}]++
}
