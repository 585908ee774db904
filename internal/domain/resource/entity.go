package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrResourceUnavailable = errors.New("resource is not available for booking")
)

const (
	MaxResourceNameLength = 255
)

// Resource is a staff member whose time is booked.
type Resource struct {
	id          uuid.UUID
	name        string
	isAvailable bool
	hours       WeeklyHours
	createdAt   time.Time
	updatedAt   time.Time
}

func NewResource(id uuid.UUID, name string, hours WeeklyHours, now time.Time) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Resource{
		id:          id,
		name:        strings.TrimSpace(name),
		isAvailable: true,
		hours:       hours.Clone(),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructResource(id uuid.UUID, name string, isAvailable bool, hours WeeklyHours, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:          id,
		name:        name,
		isAvailable: isAvailable,
		hours:       hours,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// HoursOn returns the working interval for day's weekday.
func (r *Resource) HoursOn(day time.Time) (DayHours, bool) {
	return r.hours.For(day.Weekday())
}

// CanHost reports whether [start, end) on day fits the resource's calendar.
func (r *Resource) CanHost(day, start, end time.Time) bool {
	if !r.isAvailable {
		return false
	}
	h, ok := r.HoursOn(day)
	return ok && h.Contains(day, start, end)
}

func (r *Resource) Retire(now time.Time) {
	r.isAvailable = false
	r.updatedAt = now
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) IsAvailable() bool    { return r.isAvailable }
func (r *Resource) Hours() WeeklyHours   { return r.hours.Clone() }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
