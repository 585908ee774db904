package queries

import (
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/pkg/errs"
)

var (
	ErrServiceNotFound  = errs.Mark(errs.New("service not found"), errs.ErrNotFound)
	ErrResourceNotFound = errs.Mark(errs.New("resource not found"), errs.ErrNotFound)
	ErrBookingNotFound  = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrInvoiceNotFound  = errs.Mark(errs.New("invoice not found"), errs.ErrNotFound)

	ErrInvalidRange = errs.Mark(errs.New("date range end is before its start"), errs.ErrValidation)
)

func invalid(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}

func notFound(err, target error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return target
	}
	return err
}
