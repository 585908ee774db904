//go:build unit

// Package memstore is an in-memory shared.UnitOfWork for usecase tests.
// Transactions run one at a time against a private copy of the data that is
// swapped in on commit, so a failed fn leaves nothing behind.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/customer"
	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/domain/offering"
	"gin-booking-engine/internal/domain/rating"
	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/domain/review"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type idemKey struct {
	key        uuid.UUID
	customerID uuid.UUID
}

type data struct {
	bookings  map[uuid.UUID]booking.Snapshot
	resources map[uuid.UUID]*resource.Resource
	offerings map[uuid.UUID]*offering.Offering
	customers map[uuid.UUID]*customer.Customer
	reviews   map[uuid.UUID]*review.Review // by booking id
	ratings   map[uuid.UUID]rating.State
	invoices  map[uuid.UUID]invoice.Snapshot
	idem      map[idemKey]shared.IdempotencyRecord
	outbox    []shared.OutboxEvent
}

func newData() *data {
	return &data{
		bookings:  map[uuid.UUID]booking.Snapshot{},
		resources: map[uuid.UUID]*resource.Resource{},
		offerings: map[uuid.UUID]*offering.Offering{},
		customers: map[uuid.UUID]*customer.Customer{},
		reviews:   map[uuid.UUID]*review.Review{},
		ratings:   map[uuid.UUID]rating.State{},
		invoices:  map[uuid.UUID]invoice.Snapshot{},
		idem:      map[idemKey]shared.IdempotencyRecord{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.resources {
		c.resources[k] = copyResource(v)
	}
	for k, v := range d.offerings {
		c.offerings[k] = copyOffering(v)
	}
	for k, v := range d.customers {
		c.customers[k] = copyCustomer(v, 0)
	}
	for k, v := range d.reviews {
		c.reviews[k] = v
	}
	for k, v := range d.ratings {
		c.ratings[k] = v
	}
	for k, v := range d.invoices {
		c.invoices[k] = v
	}
	for k, v := range d.idem {
		c.idem[k] = v
	}
	c.outbox = slices.Clone(d.outbox)
	return c
}

type Store struct {
	mu sync.Mutex
	d  *data

	// Commits counts successful Within calls.
	Commits int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{d: newData()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.d.clone()
	if err := fn(ctx, &tx{d: work}); err != nil {
		return err
	}
	s.d = work
	s.Commits++
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &tx{d: s.d.clone()})
}

func (s *Store) PutResource(r *resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.resources[r.ID()] = copyResource(r)
}

func (s *Store) PutOffering(o *offering.Offering) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.offerings[o.ID()] = copyOffering(o)
}

func (s *Store) PutCustomer(c *customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.customers[c.ID()] = copyCustomer(c, 0)
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.bookings[b.ID()] = b.Snapshot()
}

func (s *Store) Booking(id uuid.UUID) (*booking.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.d.bookings[id]
	if !ok {
		return nil, false
	}
	return booking.Reconstruct(snap), true
}

func (s *Store) Bookings() []*booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*booking.Booking, 0, len(s.d.bookings))
	for _, snap := range s.d.bookings {
		out = append(out, booking.Reconstruct(snap))
	}
	slices.SortFunc(out, func(a, b *booking.Booking) int {
		return a.Slot().Start().Compare(b.Slot().Start())
	})
	return out
}

func (s *Store) Customer(id uuid.UUID) (*customer.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.d.customers[id]
	return c, ok
}

func (s *Store) Resource(id uuid.UUID) (*resource.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.d.resources[id]
	return r, ok
}

func (s *Store) Offering(id uuid.UUID) (*offering.Offering, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.d.offerings[id]
	return o, ok
}

func (s *Store) Rating(resourceID uuid.UUID) (rating.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.d.ratings[resourceID]
	return st, ok
}

func (s *Store) Invoices() []*invoice.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*invoice.Invoice, 0, len(s.d.invoices))
	for _, snap := range s.d.invoices {
		out = append(out, invoice.Reconstruct(snap))
	}
	return out
}

func (s *Store) Idempotency(key, customerID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.d.idem[idemKey{key: key, customerID: customerID}]
	return rec, ok
}

// Outbox returns enqueued events in insertion order.
func (s *Store) Outbox() []shared.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.d.outbox)
}

// EventTypes is Outbox reduced to the event names.
func (s *Store) EventTypes() []string {
	events := s.Outbox()
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.EventType
	}
	return out
}

func copyResource(r *resource.Resource) *resource.Resource {
	return resource.ReconstructResource(r.ID(), r.Name(), r.IsAvailable(), r.Hours(), r.CreatedAt(), r.UpdatedAt())
}

func copyOffering(o *offering.Offering) *offering.Offering {
	return offering.ReconstructOffering(o.ID(), o.Name(), o.Description(), o.Category(), o.DurationMin(), o.Price(), o.IsActive(), o.CreatedAt(), o.UpdatedAt())
}

func copyCustomer(c *customer.Customer, extraBookings int) *customer.Customer {
	return customer.ReconstructCustomer(c.ID(), c.Name(), c.Email(), c.Phone(), c.TotalBookings()+extraBookings, c.CreatedAt())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
