package components

import (
	"gin-booking-engine/internal/handler"
	"gin-booking-engine/internal/handler/api"
	"gin-booking-engine/internal/handler/middleware"
	"gin-booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewReviewHandler,
		api.NewInvoiceHandler,
		api.NewCatalogHandler,
		NewHandlers,
		NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	availability *api.AvailabilityHandler,
	booking *api.BookingHandler,
	review *api.ReviewHandler,
	invoice *api.InvoiceHandler,
	catalog *api.CatalogHandler,
) handler.Handlers {
	return handler.Handlers{
		Availability: availability,
		Booking:      booking,
		Review:       review,
		Invoice:      invoice,
		Catalog:      catalog,
	}
}

func NewRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}
