package bootstrap

import (
	"context"
	"log/slog"

	"gin-booking-engine/internal/infra/cache"
	"gin-booking-engine/internal/pkg/config"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// AvailabilityCacheResult exposes one cache under both the read and write ports.
type AvailabilityCacheResult struct {
	fx.Out

	Cache       queries.AvailabilityCache
	Invalidator commands.ScheduleInvalidator
}

func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) AvailabilityCacheResult {
	if cfg.Redis.Addr == "" {
		logger.Info("availability cache disabled")
		return AvailabilityCacheResult{Cache: cache.Nop{}, Invalidator: cache.Nop{}}
	}

	client := cache.NewRedisClient(cfg.Redis)
	c := cache.NewAvailabilityCache(client, cfg.Redis.AvailabilityTTL)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// an unreachable redis only costs cache misses
			if err := c.Ping(ctx); err != nil {
				logger.Warn("redis unreachable, availability will be computed on every request",
					slog.String("addr", cfg.Redis.Addr), slog.Any("error", err))
				return nil
			}
			logger.Info("availability cache connected", slog.String("addr", cfg.Redis.Addr))
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return AvailabilityCacheResult{Cache: c, Invalidator: c}
}
