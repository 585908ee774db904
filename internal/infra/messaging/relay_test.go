//go:build unit

package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gin-booking-engine/internal/infra/messaging"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/usecase/shared"
	"gin-booking-engine/tests/common/builder"
	"gin-booking-engine/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	batches [][]shared.OutboxEvent
	err     error
}

func (p *fakePublisher) Publish(_ context.Context, events []shared.OutboxEvent) error {
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, events)
	return nil
}

func enqueue(t *testing.T, store *memstore.Store, n int) {
	t.Helper()
	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		for i := range n {
			ev, err := shared.NewOutboxEvent(uuid.New(), shared.EventBookingCreated, map[string]int{"n": i}, builder.BaseTime)
			if err != nil {
				return err
			}
			if err := tx.Outbox().Enqueue(ctx, ev); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestRelay_DrainPublishesInBatches(t *testing.T) {
	store := memstore.New()
	enqueue(t, store, 5)
	pub := &fakePublisher{}
	relay := messaging.NewRelay(store, pub, 2, clock.NewMockClock(builder.BaseTime))

	n, err := relay.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	require.Len(t, pub.batches, 3)
	assert.Len(t, pub.batches[0], 2)
	assert.Len(t, pub.batches[2], 1)
	for _, ev := range store.Outbox() {
		require.NotNil(t, ev.PublishedAt)
		assert.Equal(t, builder.BaseTime, *ev.PublishedAt)
	}

	n, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "published events are not claimed again")
}

func TestRelay_PublishFailureKeepsEventsPending(t *testing.T) {
	store := memstore.New()
	enqueue(t, store, 3)
	pub := &fakePublisher{err: errors.New("broker down")}
	relay := messaging.NewRelay(store, pub, 10, clock.NewMockClock(builder.BaseTime))

	_, err := relay.RunOnce(context.Background())
	require.Error(t, err)
	for _, ev := range store.Outbox() {
		assert.Nil(t, ev.PublishedAt)
	}

	pub.err = nil
	n, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestWorker_TickDeletesExpiredKeys(t *testing.T) {
	store := memstore.New()
	clk := clock.NewMockClock(builder.BaseTime)
	key, customerID := uuid.New(), uuid.New()

	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Idempotency().TryInsert(ctx, shared.IdempotencyRecord{
			Key:         key,
			CustomerID:  customerID,
			RequestHash: "h",
			CreatedAt:   builder.BaseTime,
			ExpiresAt:   builder.BaseTime.Add(time.Hour),
		})
		return err
	})
	require.NoError(t, err)

	worker := messaging.NewWorker(store, nil, time.Minute, clk)
	worker.Tick(context.Background())
	_, ok := store.Idempotency(key, customerID)
	assert.True(t, ok, "unexpired key survives")

	clk.Set(builder.BaseTime.Add(2 * time.Hour))
	worker.Tick(context.Background())
	_, ok = store.Idempotency(key, customerID)
	assert.False(t, ok)
}
