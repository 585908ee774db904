package components

import (
	"time"

	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/infra/readstore"
	"gin-booking-engine/internal/infra/uow"
	"gin-booking-engine/internal/usecase/queries"
	"gin-booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	NewScheduleLocation,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Review
		fx.Annotate(
			readstore.NewReviewReadStore,
			fx.As(new(queries.ReviewReadStore)),
		),
		// Invoice
		fx.Annotate(
			readstore.NewInvoiceReadStore,
			fx.As(new(queries.InvoiceReadStore)),
		),
		// Catalog
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
	),
)

// Repositories are built per transaction by the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewScheduleLocation is the zone booking dates are expressed in.
func NewScheduleLocation(settings slot.Settings) *time.Location {
	return settings.Location
}
