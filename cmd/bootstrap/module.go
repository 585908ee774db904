package bootstrap

import (
	"gin-booking-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	ScheduleModule,
	CacheModule,
	MetricsModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	MessagingModule,
)
