package customer

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("customer name cannot be empty")
	ErrInvalidEmail = errors.New("customer email is invalid")
)

type Customer struct {
	id            uuid.UUID
	name          string
	email         string
	phone         string
	totalBookings int
	createdAt     time.Time
}

func NewCustomer(id uuid.UUID, name, email, phone string, now time.Time) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Customer{
		id:        id,
		name:      name,
		email:     email,
		phone:     strings.TrimSpace(phone),
		createdAt: now,
	}, nil
}

func ReconstructCustomer(id uuid.UUID, name, email, phone string, totalBookings int, createdAt time.Time) *Customer {
	return &Customer{
		id:            id,
		name:          name,
		email:         email,
		phone:         phone,
		totalBookings: totalBookings,
		createdAt:     createdAt,
	}
}

func (c *Customer) ID() uuid.UUID        { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) Phone() string        { return c.phone }
func (c *Customer) TotalBookings() int   { return c.totalBookings }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
