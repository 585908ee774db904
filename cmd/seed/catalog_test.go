//go:build unit

package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/commands"
	commandsmock "gin-booking-engine/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const sample = `
resources:
  - id: 6f1c9a52-3d2e-4b8f-9a61-0c2d4e5f6a71
    name: Alice
    hours:
      monday: { open: "09:00", close: "17:00" }
services:
  - name: Haircut
    duration_min: 45
    price: "50.00"
customers:
  - name: Dana
    email: dana@example.com
`

func TestParseCatalog(t *testing.T) {
	f, err := parseCatalog([]byte(sample))
	require.NoError(t, err)

	require.Len(t, f.Resources, 1)
	require.NotNil(t, f.Resources[0].ID)
	assert.Equal(t, uuid.MustParse("6f1c9a52-3d2e-4b8f-9a61-0c2d4e5f6a71"), *f.Resources[0].ID)
	assert.Equal(t, "17:00", f.Resources[0].Hours["monday"].Close)

	require.Len(t, f.Services, 1)
	assert.Nil(t, f.Services[0].ID)
	assert.Equal(t, 45, f.Services[0].DurationMin)

	require.Len(t, f.Customers, 1)
	assert.Equal(t, "dana@example.com", f.Customers[0].Email)

	_, err = parseCatalog([]byte("resources: [oops"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f, err := parseCatalog([]byte(sample))
	require.NoError(t, err)

	t.Run("success: already registered entries are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockCatalogCommands(ctrl)

		cmds.EXPECT().RegisterResource(gomock.Any(), gomock.Any()).Return(nil, commands.ErrAlreadyRegistered)
		cmds.EXPECT().RegisterService(gomock.Any(), gomock.Any()).Return(nil, nil)
		cmds.EXPECT().RegisterCustomer(gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := apply(context.Background(), logger, cmds, f)
		require.NoError(t, err)
		assert.Equal(t, seedResult{Created: 2, Skipped: 1}, res)
	})

	t.Run("error: other failures stop the run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockCatalogCommands(ctrl)

		cmds.EXPECT().RegisterResource(gomock.Any(), gomock.Any()).Return(nil, nil)
		cmds.EXPECT().RegisterService(gomock.Any(), gomock.Any()).Return(nil, errs.New("boom"))

		_, err := apply(context.Background(), logger, cmds, f)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `register service "Haircut"`)
	})
}
