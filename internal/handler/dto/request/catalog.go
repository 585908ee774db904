package request

import (
	"strings"

	"gin-booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type DayHoursRequest struct {
	Open  string `json:"open" yaml:"open" binding:"required"`
	Close string `json:"close" yaml:"close" binding:"required"`
}

// The yaml tags let seed files reuse these shapes.
type RegisterResourceRequest struct {
	ID    *uuid.UUID                 `json:"id,omitempty" yaml:"id"`
	Name  string                     `json:"name" yaml:"name" binding:"required,max=100"`
	Hours map[string]DayHoursRequest `json:"hours" yaml:"hours" binding:"dive"`
}

func (r RegisterResourceRequest) ToInput() commands.RegisterResourceInput {
	hours := make(map[string]commands.DayHoursInput, len(r.Hours))
	for day, h := range r.Hours {
		hours[day] = commands.DayHoursInput{Open: h.Open, Close: h.Close}
	}
	return commands.RegisterResourceInput{
		ID:    idOrNew(r.ID),
		Name:  strings.TrimSpace(r.Name),
		Hours: hours,
	}
}

type RegisterServiceRequest struct {
	ID          *uuid.UUID `json:"id,omitempty" yaml:"id"`
	Name        string     `json:"name" yaml:"name" binding:"required,max=100"`
	Description string     `json:"description,omitempty" yaml:"description"`
	Category    string     `json:"category,omitempty" yaml:"category" binding:"max=50"`
	DurationMin int        `json:"duration_min" yaml:"duration_min" binding:"required,min=1"`
	Price       string     `json:"price" yaml:"price" binding:"required"`
}

func (r RegisterServiceRequest) ToInput() commands.RegisterServiceInput {
	return commands.RegisterServiceInput{
		ID:          idOrNew(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Category:    strings.TrimSpace(r.Category),
		DurationMin: r.DurationMin,
		Price:       strings.TrimSpace(r.Price),
	}
}

type RegisterCustomerRequest struct {
	ID    *uuid.UUID `json:"id,omitempty" yaml:"id"`
	Name  string     `json:"name" yaml:"name" binding:"required,max=100"`
	Email string     `json:"email" yaml:"email" binding:"required"`
	Phone string     `json:"phone,omitempty" yaml:"phone"`
}

func (r RegisterCustomerRequest) ToInput() commands.RegisterCustomerInput {
	return commands.RegisterCustomerInput{
		ID:    idOrNew(r.ID),
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		Phone: strings.TrimSpace(r.Phone),
	}
}

func idOrNew(id *uuid.UUID) uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return uuid.New()
	}
	return *id
}
