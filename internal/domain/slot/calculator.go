package slot

import (
	"iter"
	"slices"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/resource"
)

const DefaultStep = 30 * time.Minute

// Calculator lays a fixed grid of start times over a working interval.
type Calculator struct {
	step time.Duration
}

func NewCalculator(step time.Duration) *Calculator {
	if step <= 0 {
		step = DefaultStep
	}
	return &Calculator{step: step}
}

func (c *Calculator) Step() time.Duration { return c.step }

// Query describes one day of one resource (or the default calendar).
type Query struct {
	Day      time.Time
	Hours    resource.DayHours
	Duration time.Duration
	// Busy is skipped for unassigned queries.
	Busy []booking.TimeSlot
	// NotBefore drops starts earlier than it; zero disables the filter.
	NotBefore time.Time
}

// Slots yields windows in ascending start order. Starts sit on the grid from
// opening; when the grid misses the latest start that still ends at closing,
// that start is offered last. The sequence is pure and can be ranged over any
// number of times.
func (c *Calculator) Slots(q Query) iter.Seq[booking.TimeSlot] {
	busy := slices.Clone(q.Busy)
	step := c.step
	return func(yield func(booking.TimeSlot) bool) {
		if q.Duration <= 0 {
			return
		}
		open, closing := q.Hours.Open.On(q.Day), q.Hours.Close.On(q.Day)
		offer := func(start time.Time) bool {
			if !q.NotBefore.IsZero() && start.Before(q.NotBefore) {
				return true
			}
			candidate, err := booking.SlotFor(start, q.Duration)
			if err != nil || overlapsAny(candidate, busy) {
				return true
			}
			return yield(candidate)
		}

		var lastFit time.Time
		for start := open; !start.Add(q.Duration).After(closing); start = start.Add(step) {
			lastFit = start
			if !offer(start) {
				return
			}
		}

		tail := closing.Add(-q.Duration)
		if tail.Before(open) || (!lastFit.IsZero() && !tail.After(lastFit)) {
			return
		}
		offer(tail)
	}
}

func overlapsAny(ts booking.TimeSlot, busy []booking.TimeSlot) bool {
	for _, b := range busy {
		if ts.Overlaps(b) {
			return true
		}
	}
	return false
}
