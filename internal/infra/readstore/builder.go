package readstore

import (
	"time"

	"gin-booking-engine/internal/domain/money"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// amount renders stored cents; a negative value means the row is corrupt.
func amount(cents int64) (string, error) {
	m, err := money.FromCents(cents)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

func dateString(t time.Time) string {
	return t.Format(time.DateOnly)
}
