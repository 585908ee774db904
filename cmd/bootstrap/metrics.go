package bootstrap

import (
	"gin-booking-engine/internal/infra/metrics"
	"gin-booking-engine/internal/usecase/commands"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.New,
		func(m *metrics.Metrics) commands.Recorder { return m },
	),
)
