package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrMalformedAmount = errors.New("amount must be a decimal with at most 2 fractional digits")
	ErrAmountTooLarge  = errors.New("amount is too large")
)

// MaxCents bounds amounts so rate multiplication stays inside int64.
const MaxCents int64 = 1_000_000_000_00

// Money is a non-negative amount in cents.
type Money struct {
	cents int64
}

var Zero = Money{}

func FromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	if cents > MaxCents {
		return Money{}, ErrAmountTooLarge
	}
	return Money{cents: cents}, nil
}

// Parse accepts "100", "100.5" and "100.50".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrMalformedAmount
	}
	if strings.HasPrefix(s, "-") {
		return Money{}, ErrNegativeAmount
	}
	units, frac, err := splitDecimal(s, 2)
	if err != nil {
		return Money{}, ErrMalformedAmount
	}
	if units > MaxCents/100 {
		return Money{}, ErrAmountTooLarge
	}
	return FromCents(units*100 + frac)
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) Add(o Money) Money {
	return Money{cents: m.cents + o.cents}
}

// Sub floors the result at zero.
func (m Money) Sub(o Money) Money {
	if o.cents >= m.cents {
		return Zero
	}
	return Money{cents: m.cents - o.cents}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// splitDecimal parses "<int>[.<frac>]" scaling frac to exactly scale digits.
func splitDecimal(s string, scale int) (int64, int64, error) {
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" || (hasDot && fracPart == "") || len(fracPart) > scale {
		return 0, 0, ErrMalformedAmount
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, 0, ErrMalformedAmount
	}
	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	fracPart += strings.Repeat("0", scale-len(fracPart))
	var frac int64
	if scale > 0 {
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	return units, frac, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
