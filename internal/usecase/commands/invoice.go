package commands

import (
	"context"
	"time"

	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type GenerateInvoiceInput struct {
	BookingID uuid.UUID
	// TaxRate and Discount are decimal strings, e.g. "8.25" and "10.00".
	TaxRate  string
	Discount string
	Notes    string
}

type InvoiceCommands interface {
	GenerateInvoice(ctx context.Context, in GenerateInvoiceInput) (*invoice.Invoice, error)
	MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID) (*invoice.Invoice, error)
}

type invoiceUseCaseImpl struct {
	uow     shared.UnitOfWork
	dueDays int
	clock   clock.Clock
}

func NewInvoiceUseCase(uow shared.UnitOfWork, dueDays int, clk clock.Clock) InvoiceCommands {
	return &invoiceUseCaseImpl{uow: uow, dueDays: dueDays, clock: clk}
}

func (uc *invoiceUseCaseImpl) GenerateInvoice(ctx context.Context, in GenerateInvoiceInput) (*invoice.Invoice, error) {
	rate, err := money.ParseRate(in.TaxRate)
	if err != nil {
		return nil, invalid(err)
	}
	discount := money.Zero
	if in.Discount != "" {
		if discount, err = money.Parse(in.Discount); err != nil {
			return nil, invalid(err)
		}
	}
	now := uc.clock.Now()

	var created *invoice.Invoice
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, in.BookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}

		if _, err := tx.Invoices().FindByBookingID(ctx, b.ID()); err == nil {
			return ErrInvoiceExists
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return err
		}

		inv, err := invoice.NewInvoice(b, rate, discount, in.Notes, uc.dueDays, now)
		if err != nil {
			return invalid(err)
		}
		if err := tx.Invoices().Create(ctx, inv); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrInvoiceExists
			}
			return err
		}
		if err := enqueueInvoiceEvent(ctx, tx, inv, shared.EventInvoiceGenerated, now); err != nil {
			return err
		}
		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *invoiceUseCaseImpl) MarkInvoicePaid(ctx context.Context, invoiceID uuid.UUID) (*invoice.Invoice, error) {
	now := uc.clock.Now()

	var inv *invoice.Invoice
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Invoices().FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return notFound(err, ErrInvoiceNotFound)
		}
		inv = found
		if !inv.MarkPaid(now) {
			return nil
		}
		if err := tx.Invoices().Update(ctx, inv); err != nil {
			return err
		}
		return enqueueInvoiceEvent(ctx, tx, inv, shared.EventInvoicePaid, now)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

type invoiceEvent struct {
	InvoiceID uuid.UUID  `json:"invoice_id"`
	BookingID uuid.UUID  `json:"booking_id"`
	Number    string     `json:"invoice_number"`
	Total     string     `json:"total"`
	Paid      bool       `json:"paid"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func enqueueInvoiceEvent(ctx context.Context, tx shared.Tx, inv *invoice.Invoice, eventType string, now time.Time) error {
	ev, err := shared.NewOutboxEvent(inv.BookingID(), eventType, invoiceEvent{
		InvoiceID: inv.ID(),
		BookingID: inv.BookingID(),
		Number:    inv.Number(),
		Total:     inv.Totals().Total.String(),
		Paid:      inv.IsPaid(),
		PaidAt:    inv.PaidAt(),
	}, now)
	if err != nil {
		return errs.Wrap(err, "marshal invoice event")
	}
	return tx.Outbox().Enqueue(ctx, ev)
}
