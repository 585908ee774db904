//go:build unit

package uow

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgErrCodeSerializationFailure}, want: true},
		{name: "deadlock behind a wrap", err: fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgErrCodeDeadlockDetected}), want: true},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, want: false},
		{name: "plain error", err: fmt.Errorf("boom"), want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryableError(tc.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := range 3 {
		want := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)
		assert.GreaterOrEqual(t, got, want)
		assert.Less(t, got, want+want/5+time.Nanosecond)
	}
	assert.False(t, shouldRetry(&pgconn.PgError{Code: pgErrCodeSerializationFailure}, 3, 3))
}
