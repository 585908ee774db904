package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// Relay moves committed outbox events to the publisher. Events are marked
// published in the transaction that claimed them; a crash before commit
// delivers them again.
type Relay struct {
	uow   shared.UnitOfWork
	pub   Publisher
	batch int
	clock clock.Clock
}

func NewRelay(uow shared.UnitOfWork, pub Publisher, batch int, clk clock.Clock) *Relay {
	if batch <= 0 {
		batch = 100
	}
	return &Relay{uow: uow, pub: pub, batch: batch, clock: clk}
}

// RunOnce publishes at most one batch and reports how many events went out.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	var sent int
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		events, err := tx.Outbox().ClaimPending(ctx, r.batch)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		if err := r.pub.Publish(ctx, events); err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(events))
		for i, ev := range events {
			ids[i] = ev.ID
		}
		if err := tx.Outbox().MarkPublished(ctx, ids, r.clock.Now()); err != nil {
			return err
		}
		sent = len(events)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}

// Drain repeats RunOnce until a batch comes back short.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := r.RunOnce(ctx)
		total += n
		if err != nil || n < r.batch {
			return total, err
		}
	}
}

// Worker runs the relay and idempotency-key cleanup on a fixed interval.
type Worker struct {
	uow      shared.UnitOfWork
	relay    *Relay
	interval time.Duration
	clock    clock.Clock

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorker accepts a nil relay when no broker is configured; it then only cleans up.
func NewWorker(uow shared.UnitOfWork, relay *Relay, interval time.Duration, clk clock.Clock) *Worker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Worker{uow: uow, relay: relay, interval: interval, clock: clk}
}

func (w *Worker) Start(context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Tick(ctx)
			}
		}
	}()
	slog.Info("outbox worker started", slog.Duration("interval", w.interval), slog.Bool("relay", w.relay != nil))
	return nil
}

func (w *Worker) Stop(context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	slog.Info("outbox worker stopped")
	return nil
}

// Tick does one round of work. Errors are logged and retried next round.
func (w *Worker) Tick(ctx context.Context) {
	if w.relay != nil {
		n, err := w.relay.Drain(ctx)
		if err != nil {
			slog.Error("outbox relay failed", slog.Int("published", n), slog.Any("error", err))
		} else if n > 0 {
			slog.Debug("outbox events published", slog.Int("count", n))
		}
	}

	var deleted int64
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		deleted, err = tx.Idempotency().DeleteExpired(ctx, w.clock.Now())
		return err
	})
	if err != nil {
		slog.Error("idempotency key cleanup failed", slog.Any("error", err))
		return
	}
	if deleted > 0 {
		slog.Debug("expired idempotency keys deleted", slog.Int64("count", deleted))
	}
}
