//go:build unit

package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/customer"
	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/domain/offering"
	"gin-booking-engine/internal/domain/rating"
	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/domain/review"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type tx struct {
	d *data
}

func (t *tx) Bookings() shared.BookingRepository         { return bookingRepo{t.d} }
func (t *tx) Resources() shared.ResourceRepository       { return resourceRepo{t.d} }
func (t *tx) Offerings() shared.OfferingRepository       { return offeringRepo{t.d} }
func (t *tx) Customers() shared.CustomerRepository       { return customerRepo{t.d} }
func (t *tx) Reviews() shared.ReviewRepository           { return reviewRepo{t.d} }
func (t *tx) RatingStates() shared.RatingStateRepository { return ratingRepo{t.d} }
func (t *tx) Invoices() shared.InvoiceRepository         { return invoiceRepo{t.d} }
func (t *tx) Idempotency() shared.IdempotencyRepository  { return idempotencyRepo{t.d} }
func (t *tx) Outbox() shared.OutboxRepository            { return outboxRepo{t.d} }

type bookingRepo struct{ d *data }

// LockSchedule is a no-op: the store already runs one transaction at a time.
func (r bookingRepo) LockSchedule(context.Context, uuid.UUID, time.Time) error { return nil }

func (r bookingRepo) ListActiveSlots(_ context.Context, resourceID uuid.UUID, day time.Time) ([]booking.TimeSlot, error) {
	var out []booking.TimeSlot
	for _, s := range r.d.bookings {
		if s.ResourceID == nil || *s.ResourceID != resourceID || !s.Status.IsActive() || !sameDay(s.Date, day) {
			continue
		}
		out = append(out, s.Slot)
	}
	slices.SortFunc(out, func(a, b booking.TimeSlot) int { return a.Start().Compare(b.Start()) })
	return out, nil
}

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.d.bookings[b.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "booking already exists")
	}
	if rid := b.ResourceID(); rid != nil && b.IsActive() {
		// Mirrors the bookings_no_overlap exclusion constraint.
		for _, s := range r.d.bookings {
			if s.ResourceID != nil && *s.ResourceID == *rid && s.Status.IsActive() && s.Slot.Overlaps(b.Slot()) {
				return infra.NewRepoErr(infra.KindConflict, "booking overlaps an active booking")
			}
		}
	}
	r.d.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s, ok := r.d.bookings[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	return booking.Reconstruct(s), nil
}

func (r bookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r bookingRepo) Update(_ context.Context, b *booking.Booking, expectedVersion int) error {
	s, ok := r.d.bookings[b.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	if s.Version != expectedVersion {
		return infra.NewRepoErr(infra.KindConflict, "booking version changed")
	}
	r.d.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) CountActiveByResource(_ context.Context, resourceID uuid.UUID) (int, error) {
	n := 0
	for _, s := range r.d.bookings {
		if s.ResourceID != nil && *s.ResourceID == resourceID && s.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r bookingRepo) CountActiveByService(_ context.Context, serviceID uuid.UUID) (int, error) {
	n := 0
	for _, s := range r.d.bookings {
		if s.ServiceID == serviceID && s.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

type resourceRepo struct{ d *data }

func (r resourceRepo) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := r.d.resources[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	return copyResource(res), nil
}

func (r resourceRepo) FindByIDForShare(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.FindByID(ctx, id)
}

func (r resourceRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.FindByID(ctx, id)
}

func (r resourceRepo) ListCandidates(_ context.Context, day time.Time) ([]*resource.Resource, error) {
	load := map[uuid.UUID]int{}
	for _, s := range r.d.bookings {
		if s.ResourceID != nil && s.Status.IsActive() && sameDay(s.Date, day) {
			load[*s.ResourceID]++
		}
	}
	var out []*resource.Resource
	for _, res := range r.d.resources {
		if res.IsAvailable() && res.Hours().WorksOn(day.Weekday()) {
			out = append(out, copyResource(res))
		}
	}
	slices.SortFunc(out, func(a, b *resource.Resource) int {
		if d := load[a.ID()] - load[b.ID()]; d != 0 {
			return d
		}
		return strings.Compare(a.Name(), b.Name())
	})
	return out, nil
}

func (r resourceRepo) Create(_ context.Context, res *resource.Resource) error {
	if _, ok := r.d.resources[res.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "resource already exists")
	}
	r.d.resources[res.ID()] = copyResource(res)
	return nil
}

func (r resourceRepo) Update(_ context.Context, res *resource.Resource) error {
	if _, ok := r.d.resources[res.ID()]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	r.d.resources[res.ID()] = copyResource(res)
	return nil
}

type offeringRepo struct{ d *data }

func (r offeringRepo) FindByID(_ context.Context, id uuid.UUID) (*offering.Offering, error) {
	o, ok := r.d.offerings[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "service not found")
	}
	return copyOffering(o), nil
}

func (r offeringRepo) FindByIDForShare(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	return r.FindByID(ctx, id)
}

func (r offeringRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	return r.FindByID(ctx, id)
}

func (r offeringRepo) Create(_ context.Context, o *offering.Offering) error {
	if _, ok := r.d.offerings[o.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "service already exists")
	}
	r.d.offerings[o.ID()] = copyOffering(o)
	return nil
}

func (r offeringRepo) Update(_ context.Context, o *offering.Offering) error {
	if _, ok := r.d.offerings[o.ID()]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "service not found")
	}
	r.d.offerings[o.ID()] = copyOffering(o)
	return nil
}

type customerRepo struct{ d *data }

func (r customerRepo) FindByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	c, ok := r.d.customers[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "customer not found")
	}
	return copyCustomer(c, 0), nil
}

func (r customerRepo) Create(_ context.Context, c *customer.Customer) error {
	for _, existing := range r.d.customers {
		if existing.ID() == c.ID() || strings.EqualFold(existing.Email(), c.Email()) {
			return infra.NewRepoErr(infra.KindDuplicateKey, "customer already exists")
		}
	}
	r.d.customers[c.ID()] = copyCustomer(c, 0)
	return nil
}

func (r customerRepo) IncrementBookings(_ context.Context, id uuid.UUID) error {
	c, ok := r.d.customers[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "customer not found")
	}
	r.d.customers[id] = copyCustomer(c, 1)
	return nil
}

type reviewRepo struct{ d *data }

func (r reviewRepo) ExistsForBooking(_ context.Context, bookingID uuid.UUID) (bool, error) {
	_, ok := r.d.reviews[bookingID]
	return ok, nil
}

func (r reviewRepo) Create(_ context.Context, rev *review.Review) error {
	if _, ok := r.d.reviews[rev.BookingID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "review already exists")
	}
	if _, ok := r.d.bookings[rev.BookingID()]; !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "review booking missing")
	}
	r.d.reviews[rev.BookingID()] = rev
	return nil
}

type ratingRepo struct{ d *data }

func (r ratingRepo) GetForUpdate(_ context.Context, resourceID uuid.UUID) (rating.State, error) {
	if st, ok := r.d.ratings[resourceID]; ok {
		return st, nil
	}
	return rating.Initial(resourceID), nil
}

func (r ratingRepo) Save(_ context.Context, s rating.State) error {
	r.d.ratings[s.ResourceID] = s
	return nil
}

type invoiceRepo struct{ d *data }

func (r invoiceRepo) Create(_ context.Context, inv *invoice.Invoice) error {
	for _, s := range r.d.invoices {
		if s.ID == inv.ID() || s.BookingID == inv.BookingID() || s.Number == inv.Number() {
			return infra.NewRepoErr(infra.KindDuplicateKey, "invoice already exists")
		}
	}
	r.d.invoices[inv.ID()] = inv.Snapshot()
	return nil
}

func (r invoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	s, ok := r.d.invoices[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "invoice not found")
	}
	return invoice.Reconstruct(s), nil
}

func (r invoiceRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	return r.FindByID(ctx, id)
}

func (r invoiceRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*invoice.Invoice, error) {
	for _, s := range r.d.invoices {
		if s.BookingID == bookingID {
			return invoice.Reconstruct(s), nil
		}
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "invoice not found")
}

func (r invoiceRepo) Update(_ context.Context, inv *invoice.Invoice) error {
	if _, ok := r.d.invoices[inv.ID()]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "invoice not found")
	}
	r.d.invoices[inv.ID()] = inv.Snapshot()
	return nil
}

type idempotencyRepo struct{ d *data }

func (r idempotencyRepo) Find(_ context.Context, key, customerID uuid.UUID, now time.Time) (*shared.IdempotencyRecord, error) {
	rec, ok := r.d.idem[idemKey{key: key, customerID: customerID}]
	if !ok || !rec.ExpiresAt.After(now) {
		return nil, infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
	}
	return &rec, nil
}

func (r idempotencyRepo) TryInsert(_ context.Context, rec shared.IdempotencyRecord) (bool, error) {
	k := idemKey{key: rec.Key, customerID: rec.CustomerID}
	if existing, ok := r.d.idem[k]; ok && existing.ExpiresAt.After(rec.CreatedAt) {
		return false, nil
	}
	r.d.idem[k] = rec
	return true, nil
}

func (r idempotencyRepo) AttachBooking(_ context.Context, key, customerID, bookingID uuid.UUID) error {
	k := idemKey{key: key, customerID: customerID}
	rec, ok := r.d.idem[k]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
	}
	rec.BookingID = &bookingID
	r.d.idem[k] = rec
	return nil
}

func (r idempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for k, rec := range r.d.idem {
		if !rec.ExpiresAt.After(now) {
			delete(r.d.idem, k)
			n++
		}
	}
	return n, nil
}

type outboxRepo struct{ d *data }

func (r outboxRepo) Enqueue(_ context.Context, ev shared.OutboxEvent) error {
	r.d.outbox = append(r.d.outbox, ev)
	return nil
}

func (r outboxRepo) ClaimPending(_ context.Context, limit int) ([]shared.OutboxEvent, error) {
	var out []shared.OutboxEvent
	for _, ev := range r.d.outbox {
		if ev.PublishedAt == nil {
			out = append(out, ev)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r outboxRepo) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	for i := range r.d.outbox {
		if slices.Contains(ids, r.d.outbox[i].ID) {
			published := at
			r.d.outbox[i].PublishedAt = &published
		}
	}
	return nil
}
