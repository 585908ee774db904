//go:build unit

package invoice_test

import (
	"regexp"
	"testing"
	"time"

	"gin-booking-engine/internal/domain/booking"
	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, subtotal, rate, discount string) (money.Money, money.Rate, money.Money) {
	t.Helper()
	s, err := money.Parse(subtotal)
	require.NoError(t, err)
	r, err := money.ParseRate(rate)
	require.NoError(t, err)
	d, err := money.Parse(discount)
	require.NoError(t, err)
	return s, r, d
}

func TestCompute(t *testing.T) {
	testCases := []struct {
		name      string
		subtotal  string
		rate      string
		discount  string
		wantTax   string
		wantTotal string
	}{
		{name: "reference case", subtotal: "100.00", rate: "8.25", discount: "10.00", wantTax: "8.25", wantTotal: "98.25"},
		{name: "no discount", subtotal: "40.00", rate: "10", discount: "0", wantTax: "4.00", wantTotal: "44.00"},
		{name: "discount exceeds total", subtotal: "20.00", rate: "5", discount: "50.00", wantTax: "1.00", wantTotal: "0.00"},
		{name: "discount equals total", subtotal: "20.00", rate: "5", discount: "21.00", wantTax: "1.00", wantTotal: "0.00"},
		{name: "banker's rounding on tax", subtotal: "1.25", rate: "10", discount: "0", wantTax: "0.12", wantTotal: "1.37"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := invoice.Compute(parse(t, tc.subtotal, tc.rate, tc.discount))
			assert.Equal(t, tc.wantTax, got.TaxAmount.String())
			assert.Equal(t, tc.wantTotal, got.Total.String())
			assert.Equal(t, tc.subtotal, got.Subtotal.String())
		})
	}
}

func TestNewInvoice(t *testing.T) {
	now := time.Date(2030, 6, 3, 15, 30, 0, 0, time.UTC)
	_, rate, discount := parse(t, "0", "8.25", "10.00")

	t.Run("completed booking", func(t *testing.T) {
		b := builder.NewBookingBuilder().AsCompleted().With(func(bb *builder.BookingBuilder) { bb.PriceCents = 10000 }).BuildDomain()

		inv, err := invoice.NewInvoice(b, rate, discount, " thanks ", 30, now)
		require.NoError(t, err)

		assert.Equal(t, b.ID(), inv.BookingID())
		assert.Equal(t, "98.25", inv.Totals().Total.String())
		assert.Equal(t, time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC), inv.IssuedOn())
		assert.Equal(t, time.Date(2030, 7, 3, 0, 0, 0, 0, time.UTC), inv.DueOn())
		assert.Equal(t, "thanks", inv.Notes())
		assert.False(t, inv.IsPaid())
		assert.Regexp(t, regexp.MustCompile(`^INV-20300603-[0-9A-F]{8}$`), inv.Number())
	})

	t.Run("booking not completed", func(t *testing.T) {
		for _, st := range []booking.Status{booking.StatusPending, booking.StatusConfirmed, booking.StatusCancelled, booking.StatusNoShow} {
			b := builder.NewBookingBuilder().WithStatus(st).BuildDomain()
			_, err := invoice.NewInvoice(b, rate, discount, "", 30, now)
			assert.ErrorIs(t, err, invoice.ErrBookingNotComplete, st)
		}
	})

	t.Run("negative due days", func(t *testing.T) {
		b := builder.NewBookingBuilder().AsCompleted().BuildDomain()
		_, err := invoice.NewInvoice(b, rate, discount, "", -1, now)
		assert.ErrorIs(t, err, invoice.ErrInvalidDueDays)
	})
}

func TestMarkPaid(t *testing.T) {
	now := time.Date(2030, 6, 3, 15, 30, 0, 0, time.UTC)
	_, rate, discount := parse(t, "0", "0", "0")
	inv, err := invoice.NewInvoice(builder.NewBookingBuilder().AsCompleted().BuildDomain(), rate, discount, "", 0, now)
	require.NoError(t, err)

	paidAt := now.Add(time.Hour)
	assert.True(t, inv.MarkPaid(paidAt))
	first := inv.Snapshot()

	assert.False(t, inv.MarkPaid(paidAt.Add(time.Hour)))
	assert.Equal(t, first, inv.Snapshot())
	require.NotNil(t, inv.PaidAt())
	assert.Equal(t, paidAt, *inv.PaidAt())
}
