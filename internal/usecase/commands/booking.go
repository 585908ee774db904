package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	CustomerID uuid.UUID
	ServiceID  uuid.UUID
	// ResourceID nil lets the engine pick the least loaded resource.
	ResourceID     *uuid.UUID
	Date           string
	Start          string
	Notes          string
	IdempotencyKey *uuid.UUID
}

type CreateBookingResult struct {
	Booking  *booking.Booking
	Replayed bool
}

type TransitionInput struct {
	BookingID       uuid.UUID
	Action          string
	Reason          string
	ExpectedVersion *int
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	TransitionBooking(ctx context.Context, in TransitionInput) (*booking.Booking, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	settings       slot.Settings
	idempotencyTTL time.Duration
	invalidator    ScheduleInvalidator
	recorder       Recorder
	clock          clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	settings slot.Settings,
	idempotencyTTL time.Duration,
	invalidator ScheduleInvalidator,
	recorder Recorder,
	clk clock.Clock,
) BookingCommands {
	if invalidator == nil {
		invalidator = nopInvalidator{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &bookingUseCaseImpl{
		uow:            uow,
		settings:       settings,
		idempotencyTTL: idempotencyTTL,
		invalidator:    invalidator,
		recorder:       recorder,
		clock:          clk,
	}
}

// reservationPlan is everything validated before any lock is taken.
type reservationPlan struct {
	customerID uuid.UUID
	serviceID  uuid.UUID
	day        time.Time
	slot       booking.TimeSlot
	price      money.Money
	candidates []*resource.Resource
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	now := uc.clock.Now()
	hash := requestHash(in)

	if in.IdempotencyKey != nil {
		prior, err := uc.replay(ctx, *in.IdempotencyKey, in.CustomerID, hash, now)
		if err != nil || prior != nil {
			uc.record(prior, err)
			return prior, err
		}
	}

	plan, err := uc.plan(ctx, in, now)
	if err != nil {
		uc.record(nil, err)
		return nil, err
	}

	for _, candidate := range plan.candidates {
		created, err := uc.reserveOn(ctx, plan, candidate.ID(), in, hash, now)
		switch {
		case err == nil:
			uc.invalidator.Invalidate(ctx, candidate.ID(), plan.day)
			res := &CreateBookingResult{Booking: created}
			uc.record(res, nil)
			return res, nil
		case errs.Is(err, errSlotTaken):
			slog.Debug("candidate resource rejected slot",
				"resource_id", candidate.ID().String(),
				"slot", plan.slot.String())
			continue
		case errs.Is(err, errReplay):
			// A concurrent request with the same key committed first.
			prior, rerr := uc.replay(ctx, *in.IdempotencyKey, in.CustomerID, hash, now)
			if rerr == nil && prior == nil {
				rerr = ErrIdempotencyInProgress
			}
			uc.record(prior, rerr)
			return prior, rerr
		default:
			uc.record(nil, err)
			return nil, err
		}
	}

	uc.record(nil, ErrSlotUnavailable)
	return nil, ErrSlotUnavailable
}

func (uc *bookingUseCaseImpl) plan(ctx context.Context, in CreateBookingInput, now time.Time) (*reservationPlan, error) {
	day, err := uc.settings.ParseDay(in.Date)
	if err != nil {
		return nil, invalid(err)
	}
	start, err := uc.settings.At(day, in.Start)
	if err != nil {
		return nil, invalid(err)
	}
	if !start.After(now) {
		return nil, ErrSlotInPast
	}

	plan := &reservationPlan{customerID: in.CustomerID, serviceID: in.ServiceID, day: day}
	err = uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Offerings().FindByID(ctx, in.ServiceID)
		if err != nil {
			return notFound(err, ErrServiceNotFound)
		}
		if !svc.IsActive() {
			return ErrServiceInactive
		}
		if _, err := tx.Customers().FindByID(ctx, in.CustomerID); err != nil {
			return notFound(err, ErrCustomerNotFound)
		}

		plan.slot, err = booking.SlotFor(start, svc.Duration())
		if err != nil {
			return invalid(err)
		}
		plan.price = svc.Price()

		if in.ResourceID != nil {
			res, err := tx.Resources().FindByID(ctx, *in.ResourceID)
			if err != nil {
				return notFound(err, ErrResourceNotFound)
			}
			if !res.IsAvailable() {
				return ErrResourceRetired
			}
			if !res.CanHost(day, plan.slot.Start(), plan.slot.End()) {
				return ErrOutsideWorkingHours
			}
			plan.candidates = []*resource.Resource{res}
			return nil
		}

		if !uc.settings.DefaultHours.Contains(day, plan.slot.Start(), plan.slot.End()) {
			return ErrOutsideWorkingHours
		}
		all, err := tx.Resources().ListCandidates(ctx, day)
		if err != nil {
			return err
		}
		for _, res := range all {
			if res.CanHost(day, plan.slot.Start(), plan.slot.End()) {
				plan.candidates = append(plan.candidates, res)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// reserveOn runs the locked check-and-insert for one resource.
func (uc *bookingUseCaseImpl) reserveOn(
	ctx context.Context,
	plan *reservationPlan,
	resourceID uuid.UUID,
	in CreateBookingInput,
	hash string,
	now time.Time,
) (*booking.Booking, error) {
	var created *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if in.IdempotencyKey != nil {
			inserted, err := tx.Idempotency().TryInsert(ctx, shared.IdempotencyRecord{
				Key:         *in.IdempotencyKey,
				CustomerID:  in.CustomerID,
				RequestHash: hash,
				CreatedAt:   now,
				ExpiresAt:   now.Add(uc.idempotencyTTL),
			})
			if err != nil {
				return err
			}
			if !inserted {
				return errReplay
			}
		}

		if err := tx.Bookings().LockSchedule(ctx, resourceID, plan.day); err != nil {
			return err
		}
		if err := uc.recheck(ctx, tx, plan, resourceID, in.ResourceID != nil); err != nil {
			return err
		}
		busy, err := tx.Bookings().ListActiveSlots(ctx, resourceID, plan.day)
		if err != nil {
			return err
		}
		for _, b := range busy {
			if b.Overlaps(plan.slot) {
				return errSlotTaken
			}
		}

		b, err := booking.NewBooking(plan.customerID, plan.serviceID, &resourceID, plan.day, plan.slot, plan.price, in.Notes, now)
		if err != nil {
			return invalid(err)
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errSlotTaken
			}
			return err
		}
		if err := tx.Customers().IncrementBookings(ctx, plan.customerID); err != nil {
			return err
		}
		if in.IdempotencyKey != nil {
			if err := tx.Idempotency().AttachBooking(ctx, *in.IdempotencyKey, in.CustomerID, b.ID()); err != nil {
				return err
			}
		}
		if err := enqueueBookingEvent(ctx, tx, b, shared.EventBookingCreated, now); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// recheck repeats the catalog checks of plan under row share locks, so a
// concurrent retirement either waits for this tx or is seen by it.
// A candidate picked by the engine that no longer fits is skipped.
func (uc *bookingUseCaseImpl) recheck(ctx context.Context, tx shared.Tx, plan *reservationPlan, resourceID uuid.UUID, requested bool) error {
	svc, err := tx.Offerings().FindByIDForShare(ctx, plan.serviceID)
	if err != nil {
		return notFound(err, ErrServiceNotFound)
	}
	if !svc.IsActive() {
		return ErrServiceInactive
	}

	res, err := tx.Resources().FindByIDForShare(ctx, resourceID)
	if err != nil {
		return notFound(err, ErrResourceNotFound)
	}
	switch {
	case !res.IsAvailable() && requested:
		return ErrResourceRetired
	case !res.CanHost(plan.day, plan.slot.Start(), plan.slot.End()) && requested:
		return ErrOutsideWorkingHours
	case !res.IsAvailable(), !res.CanHost(plan.day, plan.slot.Start(), plan.slot.End()):
		return errSlotTaken
	}
	return nil
}

// replay returns the booking an earlier request with the same key produced,
// or nil when the key is unused.
func (uc *bookingUseCaseImpl) replay(ctx context.Context, key, customerID uuid.UUID, hash string, now time.Time) (*CreateBookingResult, error) {
	var res *CreateBookingResult
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, err := tx.Idempotency().Find(ctx, key, customerID, now)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		if rec.RequestHash != hash {
			return ErrIdempotencyKeyReuse
		}
		if rec.BookingID == nil {
			return ErrIdempotencyInProgress
		}
		b, err := tx.Bookings().FindByID(ctx, *rec.BookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		res = &CreateBookingResult{Booking: b, Replayed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *bookingUseCaseImpl) TransitionBooking(ctx context.Context, in TransitionInput) (*booking.Booking, error) {
	action, err := booking.ParseAction(in.Action)
	if err != nil {
		uc.recorder.Transition(in.Action, OutcomeRejected)
		return nil, invalid(err)
	}
	now := uc.clock.Now()

	var updated *booking.Booking
	var wasActive bool
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, in.BookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		if in.ExpectedVersion != nil && *in.ExpectedVersion != b.Version() {
			return ErrConcurrentUpdate
		}
		wasActive = b.IsActive()

		prev := b.Version()
		if err := b.Apply(action, in.Reason, now); err != nil {
			if errs.Is(err, booking.ErrReasonTooLong) {
				return invalid(err)
			}
			return rejectedTransition(err)
		}
		if err := tx.Bookings().Update(ctx, b, prev); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrConcurrentUpdate
			}
			return err
		}
		if err := enqueueBookingEvent(ctx, tx, b, shared.BookingEventType(b.Status().String()), now); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		uc.recorder.Transition(action.String(), transitionOutcome(err))
		return nil, err
	}

	uc.recorder.Transition(action.String(), "applied")
	if wasActive && !updated.IsActive() && updated.ResourceID() != nil {
		uc.invalidator.Invalidate(ctx, *updated.ResourceID(), updated.Date())
	}
	return updated, nil
}

func (uc *bookingUseCaseImpl) record(res *CreateBookingResult, err error) {
	switch {
	case err == nil && res != nil && res.Replayed:
		uc.recorder.ReservationAttempt(OutcomeReplayed)
	case err == nil:
		uc.recorder.ReservationAttempt(OutcomeCreated)
	case errs.Is(err, errs.ErrConflict):
		uc.recorder.ReservationAttempt(OutcomeConflict)
	case errs.Is(err, errs.ErrValidation), errs.Is(err, errs.ErrNotFound):
		uc.recorder.ReservationAttempt(OutcomeRejected)
	default:
		uc.recorder.ReservationAttempt(OutcomeError)
	}
}

func transitionOutcome(err error) string {
	switch {
	case errs.Is(err, errs.ErrInvalidTransition):
		return "invalid"
	case errs.Is(err, errs.ErrConflict):
		return OutcomeConflict
	case errs.Is(err, errs.ErrNotFound), errs.Is(err, errs.ErrValidation):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}

type bookingEvent struct {
	BookingID  uuid.UUID  `json:"booking_id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	ServiceID  uuid.UUID  `json:"service_id"`
	ResourceID *uuid.UUID `json:"resource_id,omitempty"`
	Status     string     `json:"status"`
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	Version    int        `json:"version"`
	Reason     string     `json:"reason,omitempty"`
}

func enqueueBookingEvent(ctx context.Context, tx shared.Tx, b *booking.Booking, eventType string, now time.Time) error {
	ev, err := shared.NewOutboxEvent(b.ID(), eventType, bookingEvent{
		BookingID:  b.ID(),
		CustomerID: b.CustomerID(),
		ServiceID:  b.ServiceID(),
		ResourceID: b.ResourceID(),
		Status:     b.Status().String(),
		Start:      b.Slot().Start(),
		End:        b.Slot().End(),
		Version:    b.Version(),
		Reason:     b.CancellationReason(),
	}, now)
	if err != nil {
		return errs.Wrap(err, "marshal booking event")
	}
	return tx.Outbox().Enqueue(ctx, ev)
}

type hashedRequest struct {
	CustomerID uuid.UUID  `json:"customer_id"`
	ServiceID  uuid.UUID  `json:"service_id"`
	ResourceID *uuid.UUID `json:"resource_id"`
	Date       string     `json:"date"`
	Start      string     `json:"start"`
	Notes      string     `json:"notes"`
}

func requestHash(in CreateBookingInput) string {
	data, _ := json.Marshal(hashedRequest{
		CustomerID: in.CustomerID,
		ServiceID:  in.ServiceID,
		ResourceID: in.ResourceID,
		Date:       in.Date,
		Start:      in.Start,
		Notes:      in.Notes,
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
