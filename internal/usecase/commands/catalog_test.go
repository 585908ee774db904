//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterResource(t *testing.T) {
	f := newFixture(t)
	uc := commands.NewCatalogUseCase(f.store, f.clock)
	ctx := context.Background()

	r, err := uc.RegisterResource(ctx, commands.RegisterResourceInput{
		Name: "Erin",
		Hours: map[string]commands.DayHoursInput{
			"monday":   {Open: "10:00", Close: "16:00"},
			"Saturday": {Open: "09:00", Close: "12:00"},
		},
	})
	require.NoError(t, err)
	stored, ok := f.store.Resource(r.ID())
	require.True(t, ok)
	assert.True(t, stored.Hours().WorksOn(time.Monday))
	assert.True(t, stored.Hours().WorksOn(time.Saturday))
	assert.False(t, stored.Hours().WorksOn(time.Sunday))

	_, err = uc.RegisterResource(ctx, commands.RegisterResourceInput{ID: r.ID(), Name: "Erin again"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrAlreadyRegistered))

	testCases := []struct {
		name  string
		input commands.RegisterResourceInput
	}{
		{name: "error: unknown weekday", input: commands.RegisterResourceInput{Name: "X", Hours: map[string]commands.DayHoursInput{"funday": {Open: "09:00", Close: "10:00"}}}},
		{name: "error: closing before opening", input: commands.RegisterResourceInput{Name: "X", Hours: map[string]commands.DayHoursInput{"monday": {Open: "18:00", Close: "09:00"}}}},
		{name: "error: empty name", input: commands.RegisterResourceInput{Name: " "}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterResource(ctx, tc.input)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
		})
	}
}

func TestRegisterService(t *testing.T) {
	f := newFixture(t)
	uc := commands.NewCatalogUseCase(f.store, f.clock)
	ctx := context.Background()

	o, err := uc.RegisterService(ctx, commands.RegisterServiceInput{Name: "Massage", Category: "spa", DurationMin: 45, Price: "80.50"})
	require.NoError(t, err)
	assert.Equal(t, "80.50", o.Price().String())
	assert.Equal(t, 45*time.Minute, o.Duration())
	assert.True(t, o.IsActive())

	testCases := []struct {
		name  string
		input commands.RegisterServiceInput
	}{
		{name: "error: bad price", input: commands.RegisterServiceInput{Name: "X", DurationMin: 30, Price: "12.345"}},
		{name: "error: zero duration", input: commands.RegisterServiceInput{Name: "X", DurationMin: 0, Price: "10.00"}},
		{name: "error: empty name", input: commands.RegisterServiceInput{Name: "", DurationMin: 30, Price: "10.00"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterService(ctx, tc.input)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
		})
	}
}

func TestRegisterCustomer(t *testing.T) {
	f := newFixture(t)
	uc := commands.NewCatalogUseCase(f.store, f.clock)
	ctx := context.Background()

	c, err := uc.RegisterCustomer(ctx, commands.RegisterCustomerInput{Name: "Finn", Email: "Finn@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "finn@example.com", c.Email())

	_, err = uc.RegisterCustomer(ctx, commands.RegisterCustomerInput{Name: "Other Finn", Email: "finn@example.com"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrAlreadyRegistered))
	assert.True(t, errs.Is(err, errs.ErrConflict))

	_, err = uc.RegisterCustomer(ctx, commands.RegisterCustomerInput{Name: "Gil", Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestRetire(t *testing.T) {
	f := newFixture(t)
	uc := commands.NewCatalogUseCase(f.store, f.clock)
	ctx := context.Background()
	b := f.book(t, "10:00", ref(f.alice.ID()))

	err := uc.RetireResource(ctx, f.alice.ID())
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrStillReferenced))
	err = uc.RetireService(ctx, f.service.ID())
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrStillReferenced))

	_, err = f.bookings.TransitionBooking(ctx, commands.TransitionInput{BookingID: b.ID(), Action: "cancel"})
	require.NoError(t, err)

	require.NoError(t, uc.RetireResource(ctx, f.alice.ID()))
	require.NoError(t, uc.RetireService(ctx, f.service.ID()))
	r, _ := f.store.Resource(f.alice.ID())
	assert.False(t, r.IsAvailable())
	o, _ := f.store.Offering(f.service.ID())
	assert.False(t, o.IsActive())

	_, err = f.bookings.CreateBooking(ctx, f.input("12:00", ref(f.bob.ID())))
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrServiceInactive))

	err = uc.RetireResource(ctx, uuid.New())
	assert.True(t, errs.Is(err, commands.ErrResourceNotFound))
}
