package offering

import (
	"errors"
	"strings"
	"time"

	"gin-booking-engine/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("service name cannot be empty")
	ErrNameTooLong     = errors.New("service name is too long (max 255 characters)")
	ErrInvalidDuration = errors.New("service duration must be a positive number of minutes")
	ErrServiceInactive = errors.New("service is not active")
	ErrCategoryTooLong = errors.New("service category is too long (max 100 characters)")
	ErrDurationTooLong = errors.New("service duration cannot exceed one day")
)

const (
	MaxNameLength     = 255
	MaxCategoryLength = 100
	maxDurationMin    = 24 * 60
)

// Offering is a bookable service with a fixed length and price.
type Offering struct {
	id          uuid.UUID
	name        string
	description string
	category    string
	durationMin int
	price       money.Money
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewOffering(id uuid.UUID, name, description, category string, durationMin int, price money.Money, now time.Time) (*Offering, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	switch {
	case name == "":
		return nil, ErrEmptyName
	case len(name) > MaxNameLength:
		return nil, ErrNameTooLong
	case len(category) > MaxCategoryLength:
		return nil, ErrCategoryTooLong
	case durationMin <= 0:
		return nil, ErrInvalidDuration
	case durationMin > maxDurationMin:
		return nil, ErrDurationTooLong
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Offering{
		id:          id,
		name:        name,
		description: strings.TrimSpace(description),
		category:    category,
		durationMin: durationMin,
		price:       price,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructOffering(
	id uuid.UUID,
	name, description, category string,
	durationMin int,
	price money.Money,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Offering {
	return &Offering{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		durationMin: durationMin,
		price:       price,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (o *Offering) Retire(now time.Time) {
	o.isActive = false
	o.updatedAt = now
}

func (o *Offering) Duration() time.Duration {
	return time.Duration(o.durationMin) * time.Minute
}

func (o *Offering) ID() uuid.UUID        { return o.id }
func (o *Offering) Name() string         { return o.name }
func (o *Offering) Description() string  { return o.description }
func (o *Offering) Category() string     { return o.category }
func (o *Offering) DurationMin() int     { return o.durationMin }
func (o *Offering) Price() money.Money   { return o.price }
func (o *Offering) IsActive() bool       { return o.isActive }
func (o *Offering) CreatedAt() time.Time { return o.createdAt }
func (o *Offering) UpdatedAt() time.Time { return o.updatedAt }
