package queries

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityInput struct {
	ServiceID uuid.UUID
	// ResourceID nil asks for the default calendar without conflict filtering.
	ResourceID *uuid.UUID
	Date       string
}

type SlotView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityView struct {
	ServiceID   uuid.UUID  `json:"service_id"`
	ResourceID  *uuid.UUID `json:"resource_id,omitempty"`
	Date        string     `json:"date"`
	DurationMin int        `json:"duration_min"`
	Slots       []SlotView `json:"slots"`
}

// SlotKey identifies one cached day of one resource for one service.
type SlotKey struct {
	ResourceID uuid.UUID
	ServiceID  uuid.UUID
	Day        time.Time
}

// CacheLookup is the result of AvailabilityCache.Get.
type CacheLookup struct {
	Slots []booking.TimeSlot
	Hit   bool
	// Generation is the invalidation epoch seen by the lookup, or -1 if it
	// could not be read.
	Generation int64
}

// AvailabilityCache holds computed slots. Implementations must tolerate
// misses and failures by reporting Hit=false.
//
// Get must run before the snapshot the slots are computed from is taken, and
// Set stores under the generation Get returned. A bump that lands in between
// then strands the entry rather than serving it.
type AvailabilityCache interface {
	Get(ctx context.Context, key SlotKey) CacheLookup
	Set(ctx context.Context, key SlotKey, generation int64, slots []booking.TimeSlot)
}

type AvailabilityQueries interface {
	AvailableSlots(ctx context.Context, in AvailabilityInput) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	uow        shared.UnitOfWork
	settings   slot.Settings
	calculator *slot.Calculator
	cache      AvailabilityCache
	clock      clock.Clock
}

func NewAvailabilityQueries(uow shared.UnitOfWork, settings slot.Settings, cache AvailabilityCache, clk clock.Clock) AvailabilityQueries {
	if cache == nil {
		cache = nopCache{}
	}
	return &availabilityQueriesImpl{
		uow:        uow,
		settings:   settings,
		calculator: slot.NewCalculator(settings.Step),
		cache:      cache,
		clock:      clk,
	}
}

func (q *availabilityQueriesImpl) AvailableSlots(ctx context.Context, in AvailabilityInput) (*AvailabilityView, error) {
	day, err := q.settings.ParseDay(in.Date)
	if err != nil {
		return nil, invalid(err)
	}
	now := q.clock.Now()
	view := &AvailabilityView{ServiceID: in.ServiceID, ResourceID: in.ResourceID, Date: in.Date, Slots: []SlotView{}}
	if day.Before(q.settings.Today(now)) {
		return view, nil
	}

	var (
		slots  []booking.TimeSlot
		key    SlotKey
		lookup CacheLookup
	)
	if in.ResourceID != nil {
		key = SlotKey{ResourceID: *in.ResourceID, ServiceID: in.ServiceID, Day: day}
		lookup = q.cache.Get(ctx, key)
	}
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Offerings().FindByID(ctx, in.ServiceID)
		if err != nil {
			return notFound(err, ErrServiceNotFound)
		}
		view.DurationMin = svc.DurationMin()
		if !svc.IsActive() {
			return nil
		}

		if in.ResourceID == nil {
			slots = slices.Collect(q.calculator.Slots(slot.Query{
				Day:      day,
				Hours:    q.settings.DefaultHours,
				Duration: svc.Duration(),
			}))
			return nil
		}

		res, err := tx.Resources().FindByID(ctx, *in.ResourceID)
		if err != nil {
			return notFound(err, ErrResourceNotFound)
		}
		hours, open := q.settings.HoursFor(res, day)
		if !res.IsAvailable() || !open {
			return nil
		}

		if lookup.Hit {
			slots = lookup.Slots
			return nil
		}
		busy, err := tx.Bookings().ListActiveSlots(ctx, res.ID(), day)
		if err != nil {
			return err
		}
		slots = slices.Collect(q.calculator.Slots(slot.Query{
			Day:      day,
			Hours:    hours,
			Duration: svc.Duration(),
			Busy:     busy,
		}))
		q.cache.Set(ctx, key, lookup.Generation, slots)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The cache holds the whole day; starts already behind us are dropped per call.
	for _, ts := range slots {
		if ts.Start().Before(now) {
			continue
		}
		local := ts.In(q.settings.Location)
		view.Slots = append(view.Slots, SlotView{Start: local.Start(), End: local.End()})
	}
	slog.Debug("availability computed",
		"service_id", in.ServiceID.String(),
		"date", in.Date,
		"slots", len(view.Slots))
	return view, nil
}

type nopCache struct{}

func (nopCache) Get(context.Context, SlotKey) CacheLookup               { return CacheLookup{Generation: -1} }
func (nopCache) Set(context.Context, SlotKey, int64, []booking.TimeSlot) {}
