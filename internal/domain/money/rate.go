package money

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedRate  = errors.New("rate must be a decimal percentage with at most 4 fractional digits")
	ErrRateOutOfRange = errors.New("rate must be between 0 and 100")
)

const rateScale = 10_000

// Rate is a percentage stored with four fractional digits (8.25% == 82500).
type Rate struct {
	e4 int64
}

func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return Rate{}, ErrRateOutOfRange
	}
	units, frac, err := splitDecimal(s, 4)
	if err != nil {
		return Rate{}, ErrMalformedRate
	}
	if units > 100 {
		return Rate{}, ErrRateOutOfRange
	}
	v := units*rateScale + frac
	if v > 100*rateScale {
		return Rate{}, ErrRateOutOfRange
	}
	return Rate{e4: v}, nil
}

// RateFromE4 rebuilds a rate persisted in its scaled form.
func RateFromE4(v int64) (Rate, error) {
	if v < 0 || v > 100*rateScale {
		return Rate{}, ErrRateOutOfRange
	}
	return Rate{e4: v}, nil
}

func (r Rate) E4() int64 { return r.e4 }

// String keeps at least two fractional digits: "8.25", "8.875", "0.00".
func (r Rate) String() string {
	s := fmt.Sprintf("%d.%04d", r.e4/rateScale, r.e4%rateScale)
	for strings.HasSuffix(s, "0") && len(s)-strings.IndexByte(s, '.') > 3 {
		s = s[:len(s)-1]
	}
	return s
}

// Of returns amount * rate / 100 rounded half-to-even at the cent.
func (r Rate) Of(amount Money) Money {
	return Money{cents: divHalfEven(amount.cents*r.e4, 100*rateScale)}
}

// divHalfEven divides non-negative n by positive d with banker's rounding.
func divHalfEven(n, d int64) int64 {
	q, rem := n/d, n%d
	switch twice := rem * 2; {
	case twice > d:
		q++
	case twice == d && q%2 == 1:
		q++
	}
	return q
}
