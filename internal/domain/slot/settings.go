package slot

import (
	"errors"
	"fmt"
	"time"

	"gin-booking-engine/internal/domain/resource"
)

var (
	ErrMalformedDate  = errors.New("date must be formatted as YYYY-MM-DD")
	ErrMalformedStart = errors.New("start time must be formatted as HH:MM")
)

const DateLayout = "2006-01-02"

// Settings is the shop-wide calendar: where days are measured and what hours
// apply when no resource is named.
type Settings struct {
	Location     *time.Location
	DefaultHours resource.DayHours
	Step         time.Duration
}

func NewSettings(timeZone, open, closing string, step time.Duration) (Settings, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return Settings{}, fmt.Errorf("load schedule timezone %q: %w", timeZone, err)
	}
	hours, err := resource.ParseDayHours(open, closing)
	if err != nil {
		return Settings{}, fmt.Errorf("default business hours: %w", err)
	}
	if step <= 0 {
		step = DefaultStep
	}
	return Settings{Location: loc, DefaultHours: hours, Step: step}, nil
}

// ParseDay returns midnight of v in the schedule location.
func (s Settings) ParseDay(v string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, v, s.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, v)
	}
	return d, nil
}

// At combines day with an "HH:MM" start.
func (s Settings) At(day time.Time, hhmm string) (time.Time, error) {
	c, err := resource.ParseClock(hhmm)
	if err != nil || c.Minutes() >= 24*60 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedStart, hhmm)
	}
	return c.On(day), nil
}

// HoursFor resolves the calendar for day. A nil resource gets the default hours.
func (s Settings) HoursFor(r *resource.Resource, day time.Time) (resource.DayHours, bool) {
	if r == nil {
		return s.DefaultHours, true
	}
	return r.HoursOn(day)
}

func (s Settings) Today(now time.Time) time.Time {
	y, m, d := now.In(s.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.Location)
}
