//go:build unit

package resource_test

import (
	"strings"
	"testing"
	"time"

	"gin-booking-engine/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2030-06-03 is a Monday.
var monday = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

func weekdayHours(t *testing.T) resource.WeeklyHours {
	t.Helper()
	h, err := resource.ParseDayHours("09:00", "17:00")
	require.NoError(t, err)
	return resource.WeeklyHours{time.Monday: h, time.Tuesday: h}
}

func TestParseClock(t *testing.T) {
	testCases := []struct {
		in    string
		want  int
		valid bool
	}{
		{in: "09:00", want: 540, valid: true},
		{in: "17:45", want: 1065, valid: true},
		{in: "00:00", want: 0, valid: true},
		{in: "24:00", want: 1440, valid: true},
		{in: "9am", valid: false},
		{in: "25:00", valid: false},
		{in: "", valid: false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := resource.ParseClock(tc.in)
			if !tc.valid {
				assert.ErrorIs(t, err, resource.ErrMalformedClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Minutes())
		})
	}

	c, _ := resource.ParseClock("08:05")
	assert.Equal(t, "08:05", c.String())
	assert.Equal(t, time.Date(2030, 6, 3, 8, 5, 0, 0, time.UTC), c.On(monday))
}

func TestDayHours(t *testing.T) {
	_, err := resource.ParseDayHours("18:00", "09:00")
	assert.ErrorIs(t, err, resource.ErrInvalidHours)

	_, err = resource.ParseDayHours("09:00", "09:00")
	assert.ErrorIs(t, err, resource.ErrInvalidHours)

	h, err := resource.ParseDayHours("09:00", "18:00")
	require.NoError(t, err)
	at := func(hh, mm int) time.Time { return time.Date(2030, 6, 3, hh, mm, 0, 0, time.UTC) }

	assert.True(t, h.Contains(monday, at(9, 0), at(18, 0)))
	assert.True(t, h.Contains(monday, at(17, 15), at(18, 0)))
	assert.False(t, h.Contains(monday, at(17, 30), at(18, 15)))
	assert.False(t, h.Contains(monday, at(8, 30), at(9, 30)))
}

func TestNewResource(t *testing.T) {
	t.Run("trims name and is available", func(t *testing.T) {
		r, err := resource.NewResource(uuid.Nil, "  Alice ", weekdayHours(t), monday)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, "Alice", r.Name())
		assert.True(t, r.IsAvailable())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := resource.NewResource(uuid.Nil, "  ", nil, monday)
		assert.ErrorIs(t, err, resource.ErrEmptyResourceName)
	})

	t.Run("long name", func(t *testing.T) {
		_, err := resource.NewResource(uuid.Nil, strings.Repeat("a", resource.MaxResourceNameLength+1), nil, monday)
		assert.ErrorIs(t, err, resource.ErrResourceNameTooLong)
	})
}

func TestResourceCalendar(t *testing.T) {
	r, err := resource.NewResource(uuid.Nil, "Bob", weekdayHours(t), monday)
	require.NoError(t, err)
	at := func(day time.Time, hh, mm int) time.Time { return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute) }

	_, ok := r.HoursOn(monday)
	assert.True(t, ok)

	sunday := monday.AddDate(0, 0, -1)
	_, ok = r.HoursOn(sunday)
	assert.False(t, ok, "missing weekday means closed")

	assert.True(t, r.CanHost(monday, at(monday, 9, 0), at(monday, 10, 0)))
	assert.False(t, r.CanHost(monday, at(monday, 16, 30), at(monday, 17, 30)))
	assert.False(t, r.CanHost(sunday, at(sunday, 10, 0), at(sunday, 11, 0)))

	r.Retire(monday)
	assert.False(t, r.IsAvailable())
	assert.False(t, r.CanHost(monday, at(monday, 9, 0), at(monday, 10, 0)))
}

func TestHoursAreCopied(t *testing.T) {
	hours := weekdayHours(t)
	r, err := resource.NewResource(uuid.Nil, "Carol", hours, monday)
	require.NoError(t, err)

	delete(hours, time.Monday)
	_, ok := r.HoursOn(monday)
	assert.True(t, ok)

	got := r.Hours()
	delete(got, time.Tuesday)
	assert.True(t, r.Hours().WorksOn(time.Tuesday))
}

func TestParseWeekday(t *testing.T) {
	d, err := resource.ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = resource.ParseWeekday("SUNDAY")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = resource.ParseWeekday("mon")
	assert.ErrorIs(t, err, resource.ErrUnknownWeekday)
}
