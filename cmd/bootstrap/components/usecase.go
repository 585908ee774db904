package components

import (
	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/pkg/config"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/queries"
	"gin-booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		NewInvoiceCommands,
		commands.NewReviewUseCase,
		commands.NewCatalogUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
		queries.NewReviewQueries,
		queries.NewInvoiceQueries,
		queries.NewCatalogQueries,
	),
)

func NewBookingCommands(
	uow shared.UnitOfWork,
	settings slot.Settings,
	cfg config.Config,
	invalidator commands.ScheduleInvalidator,
	recorder commands.Recorder,
	clk clock.Clock,
) commands.BookingCommands {
	return commands.NewBookingUseCase(uow, settings, cfg.Booking.IdempotencyTTL, invalidator, recorder, clk)
}

func NewInvoiceCommands(uow shared.UnitOfWork, cfg config.Config, clk clock.Clock) commands.InvoiceCommands {
	return commands.NewInvoiceUseCase(uow, cfg.Invoice.DueDays, clk)
}
