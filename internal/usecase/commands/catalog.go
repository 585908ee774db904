package commands

import (
	"context"
	"fmt"

	"gin-booking-engine/internal/domain/customer"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/domain/offering"
	"gin-booking-engine/internal/domain/resource"
	"gin-booking-engine/internal/infra"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type DayHoursInput struct {
	Open  string
	Close string
}

type RegisterResourceInput struct {
	ID   uuid.UUID
	Name string
	// Hours is keyed by weekday name; absent days are closed.
	Hours map[string]DayHoursInput
}

type RegisterServiceInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	DurationMin int
	Price       string
}

type RegisterCustomerInput struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

type CatalogCommands interface {
	RegisterResource(ctx context.Context, in RegisterResourceInput) (*resource.Resource, error)
	RegisterService(ctx context.Context, in RegisterServiceInput) (*offering.Offering, error)
	RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*customer.Customer, error)
	RetireResource(ctx context.Context, id uuid.UUID) error
	RetireService(ctx context.Context, id uuid.UUID) error
}

type catalogUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCatalogUseCase(uow shared.UnitOfWork, clk clock.Clock) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, clock: clk}
}

func ParseWeeklyHours(in map[string]DayHoursInput) (resource.WeeklyHours, error) {
	hours := make(resource.WeeklyHours, len(in))
	for name, h := range in {
		day, err := resource.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		dh, err := resource.ParseDayHours(h.Open, h.Close)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		hours[day] = dh
	}
	return hours, nil
}

func (uc *catalogUseCaseImpl) RegisterResource(ctx context.Context, in RegisterResourceInput) (*resource.Resource, error) {
	hours, err := ParseWeeklyHours(in.Hours)
	if err != nil {
		return nil, invalid(err)
	}
	r, err := resource.NewResource(in.ID, in.Name, hours, uc.clock.Now())
	if err != nil {
		return nil, invalid(err)
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, r)
	})
	if err != nil {
		return nil, duplicate(err)
	}
	return r, nil
}

func (uc *catalogUseCaseImpl) RegisterService(ctx context.Context, in RegisterServiceInput) (*offering.Offering, error) {
	price, err := money.Parse(in.Price)
	if err != nil {
		return nil, invalid(err)
	}
	o, err := offering.NewOffering(in.ID, in.Name, in.Description, in.Category, in.DurationMin, price, uc.clock.Now())
	if err != nil {
		return nil, invalid(err)
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Offerings().Create(ctx, o)
	})
	if err != nil {
		return nil, duplicate(err)
	}
	return o, nil
}

func (uc *catalogUseCaseImpl) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*customer.Customer, error) {
	c, err := customer.NewCustomer(in.ID, in.Name, in.Email, in.Phone, uc.clock.Now())
	if err != nil {
		return nil, invalid(err)
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Customers().Create(ctx, c)
	})
	if err != nil {
		return nil, duplicate(err)
	}
	return c, nil
}

// RetireResource takes the resource out of scheduling. It is refused while
// active bookings still hold its time.
func (uc *catalogUseCaseImpl) RetireResource(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The row lock makes in-flight reservations on this resource commit first.
		r, err := tx.Resources().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, ErrResourceNotFound)
		}
		n, err := tx.Bookings().CountActiveByResource(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrStillReferenced
		}
		r.Retire(uc.clock.Now())
		return tx.Resources().Update(ctx, r)
	})
}

func (uc *catalogUseCaseImpl) RetireService(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Offerings().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, ErrServiceNotFound)
		}
		n, err := tx.Bookings().CountActiveByService(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrStillReferenced
		}
		o.Retire(uc.clock.Now())
		return tx.Offerings().Update(ctx, o)
	})
}

func duplicate(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return ErrAlreadyRegistered
	}
	return err
}
