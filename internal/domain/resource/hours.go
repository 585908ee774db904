package resource

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMalformedClock = errors.New("time of day must be formatted as HH:MM")
	ErrInvalidHours   = errors.New("opening time must be before closing time")
)

const minutesPerDay = 24 * 60

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

func NewClockTime(minutes int) (ClockTime, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return 0, ErrMalformedClock
	}
	return ClockTime(minutes), nil
}

// ParseClock accepts "09:00". "24:00" is allowed as a closing time.
func ParseClock(s string) (ClockTime, error) {
	if s == "24:00" {
		return ClockTime(minutesPerDay), nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (c ClockTime) Minutes() int { return int(c) }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On places the clock time on day, which must be a midnight.
func (c ClockTime) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, int(c), 0, 0, day.Location())
}

// DayHours is one working interval [Open, Close).
type DayHours struct {
	Open  ClockTime
	Close ClockTime
}

func NewDayHours(open, closing ClockTime) (DayHours, error) {
	if open >= closing {
		return DayHours{}, ErrInvalidHours
	}
	return DayHours{Open: open, Close: closing}, nil
}

func ParseDayHours(open, closing string) (DayHours, error) {
	o, err := ParseClock(open)
	if err != nil {
		return DayHours{}, err
	}
	c, err := ParseClock(closing)
	if err != nil {
		return DayHours{}, err
	}
	return NewDayHours(o, c)
}

// Contains reports whether [start, end) on day lies within the interval.
func (h DayHours) Contains(day, start, end time.Time) bool {
	return !start.Before(h.Open.On(day)) && !end.After(h.Close.On(day))
}

// WeeklyHours maps weekdays to working hours. A missing weekday is closed.
type WeeklyHours map[time.Weekday]DayHours

func (w WeeklyHours) For(day time.Weekday) (DayHours, bool) {
	h, ok := w[day]
	return h, ok
}

func (w WeeklyHours) WorksOn(day time.Weekday) bool {
	_, ok := w[day]
	return ok
}

func (w WeeklyHours) Clone() WeeklyHours {
	out := make(WeeklyHours, len(w))
	for d, h := range w {
		out[d] = h
	}
	return out
}

var ErrUnknownWeekday = errors.New("unknown weekday")

// ParseWeekday accepts full English names in any case: "monday", "Sunday".
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}
