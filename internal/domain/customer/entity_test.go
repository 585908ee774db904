//go:build unit

package customer_test

import (
	"testing"
	"time"

	"gin-booking-engine/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	now := time.Date(2030, 6, 3, 8, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		custName  string
		email     string
		wantEmail string
		errIs     error
	}{
		{name: "success: email is normalised", custName: "Dana", email: "  Dana@Example.COM ", wantEmail: "dana@example.com"},
		{name: "success: email is optional", custName: "Dana", email: "", wantEmail: ""},
		{name: "error: blank name", custName: "  ", email: "dana@example.com", errIs: customer.ErrEmptyName},
		{name: "error: malformed email", custName: "Dana", email: "not-an-address", errIs: customer.ErrInvalidEmail},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := customer.NewCustomer(uuid.Nil, tc.custName, tc.email, " 555-0100 ", now)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, c.ID())
			assert.Equal(t, "Dana", c.Name())
			assert.Equal(t, tc.wantEmail, c.Email())
			assert.Equal(t, "555-0100", c.Phone())
			assert.Zero(t, c.TotalBookings())
			assert.Equal(t, now, c.CreatedAt())
		})
	}
}

func TestReconstructCustomer(t *testing.T) {
	id := uuid.New()
	created := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	c := customer.ReconstructCustomer(id, "Dana", "dana@example.com", "", 7, created)

	assert.Equal(t, id, c.ID())
	assert.Equal(t, 7, c.TotalBookings())
	assert.Equal(t, created, c.CreatedAt())
}
