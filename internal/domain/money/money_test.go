//go:build unit

package money_test

import (
	"testing"

	"gin-booking-engine/internal/domain/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantCents int64
		errIs     error
	}{
		{name: "whole units", input: "100", wantCents: 10000},
		{name: "one fractional digit", input: "100.5", wantCents: 10050},
		{name: "two fractional digits", input: "98.25", wantCents: 9825},
		{name: "zero", input: "0.00", wantCents: 0},
		{name: "surrounding spaces", input: " 12.30 ", wantCents: 1230},
		{name: "negative", input: "-1.00", errIs: money.ErrNegativeAmount},
		{name: "too many decimals", input: "1.005", errIs: money.ErrMalformedAmount},
		{name: "trailing dot", input: "1.", errIs: money.ErrMalformedAmount},
		{name: "letters", input: "ten", errIs: money.ErrMalformedAmount},
		{name: "empty", input: "", errIs: money.ErrMalformedAmount},
		{name: "too large", input: "99999999999", errIs: money.ErrAmountTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := money.Parse(tc.input)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCents, m.Cents())
		})
	}
}

func TestMoneyString(t *testing.T) {
	m, err := money.FromCents(9825)
	require.NoError(t, err)
	assert.Equal(t, "98.25", m.String())
	assert.Equal(t, "0.00", money.Zero.String())

	_, err = money.FromCents(-1)
	assert.ErrorIs(t, err, money.ErrNegativeAmount)
}

func TestParseRate(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		wantE4 int64
		errIs  error
	}{
		{name: "two decimals", input: "8.25", wantE4: 82500},
		{name: "four decimals", input: "8.8751", wantE4: 88751},
		{name: "zero", input: "0", wantE4: 0},
		{name: "hundred", input: "100", wantE4: 1_000_000},
		{name: "above hundred", input: "100.01", errIs: money.ErrRateOutOfRange},
		{name: "negative", input: "-2", errIs: money.ErrRateOutOfRange},
		{name: "five decimals", input: "1.00001", errIs: money.ErrMalformedRate},
		{name: "garbage", input: "abc", errIs: money.ErrMalformedRate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := money.ParseRate(tc.input)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantE4, r.E4())
		})
	}
}

func TestRateString(t *testing.T) {
	for input, want := range map[string]string{
		"8.25":   "8.25",
		"8.875":  "8.875",
		"0":      "0.00",
		"12.5":   "12.50",
		"7.0001": "7.0001",
	} {
		r, err := money.ParseRate(input)
		require.NoError(t, err)
		assert.Equal(t, want, r.String(), input)
	}
}

func TestRateOf(t *testing.T) {
	testCases := []struct {
		name     string
		subtotal string
		rate     string
		want     string
	}{
		{name: "exact", subtotal: "100.00", rate: "8.25", want: "8.25"},
		// 0.125 rounds to the even cent 0.12
		{name: "half rounds down to even", subtotal: "1.25", rate: "10", want: "0.12"},
		// 0.135 rounds to the even cent 0.14
		{name: "half rounds up to even", subtotal: "1.35", rate: "10", want: "0.14"},
		{name: "above half rounds up", subtotal: "1.26", rate: "10", want: "0.13"},
		{name: "below half rounds down", subtotal: "1.24", rate: "10", want: "0.12"},
		{name: "zero rate", subtotal: "50.00", rate: "0", want: "0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := money.Parse(tc.subtotal)
			require.NoError(t, err)
			rate, err := money.ParseRate(tc.rate)
			require.NoError(t, err)

			assert.Equal(t, tc.want, rate.Of(amount).String())
		})
	}
}
