package booking

import (
	"fmt"
	"time"
)

// TimeSlot is a half-open window [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

// SlotFor builds the window for a service of the given length starting at start.
func SlotFor(start time.Time, d time.Duration) (TimeSlot, error) {
	return NewTimeSlot(start, start.Add(d))
}

func (ts TimeSlot) Start() time.Time { return ts.start }

func (ts TimeSlot) End() time.Time { return ts.end }

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps treats back-to-back windows as disjoint.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) In(loc *time.Location) TimeSlot {
	return TimeSlot{start: ts.start.In(loc), end: ts.end.In(loc)}
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}
