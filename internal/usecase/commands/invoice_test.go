//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/shared"
	"gin-booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priced(t *testing.T, f *fixture, cents int64) uuid.UUID {
	t.Helper()
	b := builder.NewBookingBuilder().
		WithResource(ref(f.alice.ID())).
		WithStart(builder.BaseTime.Add(-3 * time.Hour)).
		AsCompleted().
		With(func(bb *builder.BookingBuilder) { bb.PriceCents = cents }).
		BuildDomain()
	f.store.PutBooking(b)
	return b.ID()
}

func TestGenerateInvoice_Arithmetic(t *testing.T) {
	testCases := []struct {
		name      string
		price     int64
		rate      string
		discount  string
		wantTax   string
		wantTotal string
	}{
		{name: "success: tax and discount", price: 10000, rate: "8.25", discount: "10.00", wantTax: "8.25", wantTotal: "98.25"},
		{name: "success: no discount", price: 10000, rate: "8.25", wantTax: "8.25", wantTotal: "108.25"},
		{name: "success: zero rate", price: 5000, rate: "0", wantTax: "0.00", wantTotal: "50.00"},
		{name: "success: half cent rounds to even", price: 125, rate: "10", wantTax: "0.12", wantTotal: "1.37"},
		{name: "success: discount larger than charge floors at zero", price: 1000, rate: "10", discount: "500.00", wantTax: "1.00", wantTotal: "0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			uc := commands.NewInvoiceUseCase(f.store, 30, f.clock)
			bookingID := priced(t, f, tc.price)

			inv, err := uc.GenerateInvoice(context.Background(), commands.GenerateInvoiceInput{
				BookingID: bookingID,
				TaxRate:   tc.rate,
				Discount:  tc.discount,
				Notes:     "thanks",
			})
			require.NoError(t, err)

			totals := inv.Totals()
			assert.Equal(t, tc.wantTax, totals.TaxAmount.String())
			assert.Equal(t, tc.wantTotal, totals.Total.String())
			assert.Equal(t, bookingID, inv.BookingID())
			assert.True(t, strings.HasPrefix(inv.Number(), "INV-20300603-"), inv.Number())
			assert.Equal(t, time.Date(2030, 7, 3, 0, 0, 0, 0, time.UTC), inv.DueOn())
			assert.False(t, inv.IsPaid())
			assert.Equal(t, []string{shared.EventInvoiceGenerated}, f.store.EventTypes())
		})
	}
}

func TestGenerateInvoice_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(f *fixture) commands.GenerateInvoiceInput
		category error
		wantErr  error
	}{
		{
			name: "error: booking not completed",
			setup: func(f *fixture) commands.GenerateInvoiceInput {
				b := builder.NewBookingBuilder().BuildDomain()
				f.store.PutBooking(b)
				return commands.GenerateInvoiceInput{BookingID: b.ID(), TaxRate: "8.25"}
			},
			category: errs.ErrValidation,
			wantErr:  invoice.ErrBookingNotComplete,
		},
		{
			name: "error: malformed rate",
			setup: func(f *fixture) commands.GenerateInvoiceInput {
				return commands.GenerateInvoiceInput{BookingID: priced(t, f, 1000), TaxRate: "eight"}
			},
			category: errs.ErrValidation,
		},
		{
			name: "error: rate above one hundred percent",
			setup: func(f *fixture) commands.GenerateInvoiceInput {
				return commands.GenerateInvoiceInput{BookingID: priced(t, f, 1000), TaxRate: "100.01"}
			},
			category: errs.ErrValidation,
		},
		{
			name: "error: negative discount",
			setup: func(f *fixture) commands.GenerateInvoiceInput {
				return commands.GenerateInvoiceInput{BookingID: priced(t, f, 1000), TaxRate: "5", Discount: "-1.00"}
			},
			category: errs.ErrValidation,
		},
		{
			name: "error: unknown booking",
			setup: func(_ *fixture) commands.GenerateInvoiceInput {
				return commands.GenerateInvoiceInput{BookingID: uuid.New(), TaxRate: "5"}
			},
			category: errs.ErrNotFound,
			wantErr:  commands.ErrBookingNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			uc := commands.NewInvoiceUseCase(f.store, 30, f.clock)

			inv, err := uc.GenerateInvoice(context.Background(), tc.setup(f))
			require.Error(t, err)
			assert.Nil(t, inv)
			assert.True(t, errs.Is(err, tc.category), "got %v", err)
			if tc.wantErr != nil {
				assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
			}
			assert.Empty(t, f.store.Invoices())
		})
	}
}

func TestGenerateInvoice_OnePerBooking(t *testing.T) {
	f := newFixture(t)
	uc := commands.NewInvoiceUseCase(f.store, 30, f.clock)
	bookingID := priced(t, f, 10000)

	_, err := uc.GenerateInvoice(context.Background(), commands.GenerateInvoiceInput{BookingID: bookingID, TaxRate: "5"})
	require.NoError(t, err)

	_, err = uc.GenerateInvoice(context.Background(), commands.GenerateInvoiceInput{BookingID: bookingID, TaxRate: "5"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrInvoiceExists))
	assert.True(t, errs.Is(err, errs.ErrConflict))
	assert.Len(t, f.store.Invoices(), 1)
}

func TestMarkInvoicePaid(t *testing.T) {
	f := newFixture(t)
	uc := commands.NewInvoiceUseCase(f.store, 14, f.clock)
	ctx := context.Background()

	inv, err := uc.GenerateInvoice(ctx, commands.GenerateInvoiceInput{BookingID: priced(t, f, 10000), TaxRate: "8.25"})
	require.NoError(t, err)

	f.clock.Add(time.Hour)
	paid, err := uc.MarkInvoicePaid(ctx, inv.ID())
	require.NoError(t, err)
	require.True(t, paid.IsPaid())
	require.NotNil(t, paid.PaidAt())
	firstPaidAt := *paid.PaidAt()
	assert.Equal(t, f.clock.Now(), firstPaidAt)

	f.clock.Add(time.Hour)
	again, err := uc.MarkInvoicePaid(ctx, inv.ID())
	require.NoError(t, err)
	assert.True(t, again.IsPaid())
	assert.Equal(t, firstPaidAt, *again.PaidAt(), "paying twice keeps the first timestamp")
	assert.Equal(t, []string{shared.EventInvoiceGenerated, shared.EventInvoicePaid}, f.store.EventTypes())

	_, err = uc.MarkInvoicePaid(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errs.Is(err, commands.ErrInvoiceNotFound))
}
