package bootstrap

import (
	"context"
	"log/slog"

	"gin-booking-engine/internal/infra/messaging"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/pkg/config"
	"gin-booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewOutboxWorker,
	),
	fx.Invoke(func(*messaging.Worker) {}),
)

// NewOutboxWorker runs without a relay when no broker is configured, so
// events accumulate in the outbox while idempotency keys are still swept.
func NewOutboxWorker(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) *messaging.Worker {
	var relay *messaging.Relay
	var publisher *messaging.KafkaPublisher
	if cfg.Kafka.Enabled() {
		publisher = messaging.NewKafkaPublisher(cfg.Kafka)
		relay = messaging.NewRelay(uow, publisher, cfg.Kafka.RelayBatch, clk)
		logger.Info("outbox relay enabled", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	}

	worker := messaging.NewWorker(uow, relay, cfg.Kafka.RelayInterval, clk)

	lc.Append(fx.Hook{
		OnStart: worker.Start,
		OnStop: func(ctx context.Context) error {
			if err := worker.Stop(ctx); err != nil {
				return err
			}
			if publisher != nil {
				return publisher.Close()
			}
			return nil
		},
	})

	return worker
}
