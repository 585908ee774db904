package response

import (
	"strings"
	"time"

	"gin-booking-engine/internal/domain/customer"
	"gin-booking-engine/internal/domain/offering"
	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	DurationMin int       `json:"duration_min"`
	Price       string    `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type PopularServiceResponse struct {
	ServiceResponse
	BookingCount int `json:"booking_count"`
}

type HoursResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type ResourceResponse struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	IsAvailable   bool                     `json:"is_available"`
	Hours         map[string]HoursResponse `json:"hours" copier:"-"`
	AverageRating float64                  `json:"average_rating"`
	ReviewCount   int                      `json:"review_count"`
	CreatedAt     time.Time                `json:"created_at"`
}

type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	TotalBookings int       `json:"total_bookings"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromServiceViews(views []*queries.ServiceView) ([]*ServiceResponse, error) {
	out := make([]*ServiceResponse, len(views))
	for i, v := range views {
		out[i] = &ServiceResponse{}
		if err := copyFrom(out[i], v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func FromPopularServices(views []*queries.PopularService) ([]*PopularServiceResponse, error) {
	out := make([]*PopularServiceResponse, len(views))
	for i, v := range views {
		if v == nil {
			return nil, errNilView
		}
		out[i] = &PopularServiceResponse{BookingCount: v.BookingCount}
		if err := copyFrom(&out[i].ServiceResponse, &v.ServiceView); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func FromResourceViews(views []*queries.ResourceView) ([]*ResourceResponse, error) {
	out := make([]*ResourceResponse, len(views))
	for i, v := range views {
		if v == nil {
			return nil, errNilView
		}
		out[i] = &ResourceResponse{Hours: make(map[string]HoursResponse, len(v.Hours))}
		if err := copyFrom(out[i], v); err != nil {
			return nil, err
		}
		for day, h := range v.Hours {
			out[i].Hours[day] = HoursResponse{Open: h.Open, Close: h.Close}
		}
	}
	return out, nil
}

func FromService(o *offering.Offering) *ServiceResponse {
	return &ServiceResponse{
		ID:          o.ID(),
		Name:        o.Name(),
		Description: o.Description(),
		Category:    o.Category(),
		DurationMin: o.DurationMin(),
		Price:       o.Price().String(),
		IsActive:    o.IsActive(),
		CreatedAt:   o.CreatedAt(),
	}
}

func FromResource(r *resource.Resource) *ResourceResponse {
	week := r.Hours()
	hours := make(map[string]HoursResponse, len(week))
	for day, h := range week {
		hours[strings.ToLower(day.String())] = HoursResponse{Open: h.Open.String(), Close: h.Close.String()}
	}
	return &ResourceResponse{
		ID:          r.ID(),
		Name:        r.Name(),
		IsAvailable: r.IsAvailable(),
		Hours:       hours,
		CreatedAt:   r.CreatedAt(),
	}
}

func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:            c.ID(),
		Name:          c.Name(),
		Email:         c.Email(),
		Phone:         c.Phone(),
		TotalBookings: c.TotalBookings(),
		CreatedAt:     c.CreatedAt(),
	}
}
