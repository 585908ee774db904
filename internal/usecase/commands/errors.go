package commands

import (
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/pkg/errs"
)

var (
	ErrServiceNotFound  = errs.Mark(errs.New("service not found"), errs.ErrNotFound)
	ErrResourceNotFound = errs.Mark(errs.New("resource not found"), errs.ErrNotFound)
	ErrCustomerNotFound = errs.Mark(errs.New("customer not found"), errs.ErrNotFound)
	ErrBookingNotFound  = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrInvoiceNotFound  = errs.Mark(errs.New("invoice not found"), errs.ErrNotFound)

	ErrSlotInPast          = errs.Mark(errs.New("requested start is not in the future"), errs.ErrValidation)
	ErrOutsideWorkingHours = errs.Mark(errs.New("requested window is outside working hours"), errs.ErrValidation)
	ErrServiceInactive     = errs.Mark(errs.New("service is not bookable"), errs.ErrValidation)
	ErrResourceRetired     = errs.Mark(errs.New("resource is not bookable"), errs.ErrValidation)

	ErrSlotUnavailable       = errs.Mark(errs.New("slot is no longer available"), errs.ErrConflict)
	ErrConcurrentUpdate      = errs.Mark(errs.New("booking was modified concurrently"), errs.ErrConflict)
	ErrIdempotencyKeyReuse   = errs.Mark(errs.New("idempotency key was used with a different request"), errs.ErrConflict)
	ErrIdempotencyInProgress = errs.Mark(errs.New("request with this idempotency key is still in progress"), errs.ErrConflict)
	ErrInvoiceExists         = errs.Mark(errs.New("booking already has an invoice"), errs.ErrConflict)
	ErrStillReferenced       = errs.Mark(errs.New("entity is referenced by active bookings"), errs.ErrConflict)
	ErrAlreadyRegistered     = errs.Mark(errs.New("entity is already registered"), errs.ErrConflict)

	ErrReviewExists = errs.Mark(errs.New("booking already has a review"), errs.ErrDuplicateReview)
)

// internal signals between a reservation attempt and its caller
var (
	errSlotTaken = errs.New("slot taken on candidate resource")
	errReplay    = errs.New("idempotency key already committed")
)

func invalid(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}

func rejectedTransition(err error) error {
	return errs.Mark(err, errs.ErrInvalidTransition)
}

// notFound maps a repository miss to target, leaving other errors intact.
func notFound(err, target error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return target
	}
	return err
}
