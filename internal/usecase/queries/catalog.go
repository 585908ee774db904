package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	DurationMin int       `json:"duration_min"`
	Price       string    `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type PopularService struct {
	ServiceView
	BookingCount int `json:"booking_count"`
}

type HoursView struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type ResourceView struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	IsAvailable   bool                 `json:"is_available"`
	Hours         map[string]HoursView `json:"hours"`
	AverageRating float64              `json:"average_rating"`
	ReviewCount   int                  `json:"review_count"`
	CreatedAt     time.Time            `json:"created_at"`
}

type ServiceFilters struct {
	Category   string
	ActiveOnly bool
}

type CatalogReadStore interface {
	ListServices(ctx context.Context, filters ServiceFilters) ([]*ServiceView, error)
	// PopularServices ranks by non-cancelled bookings.
	PopularServices(ctx context.Context, limit int) ([]*PopularService, error)
	ListResources(ctx context.Context, availableOnly bool) ([]*ResourceView, error)
}

type CatalogQueries interface {
	ListServices(ctx context.Context, filters ServiceFilters) ([]*ServiceView, error)
	PopularServices(ctx context.Context, limit int) ([]*PopularService, error)
	ListResources(ctx context.Context, availableOnly bool) ([]*ResourceView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context, filters ServiceFilters) ([]*ServiceView, error) {
	return q.store.ListServices(ctx, filters)
}

func (q *catalogQueriesImpl) PopularServices(ctx context.Context, limit int) ([]*PopularService, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return q.store.PopularServices(ctx, min(limit, MaxListLimit))
}

func (q *catalogQueriesImpl) ListResources(ctx context.Context, availableOnly bool) ([]*ResourceView, error) {
	return q.store.ListResources(ctx, availableOnly)
}
