package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gin-booking-engine/internal/handler/api"
	"gin-booking-engine/internal/handler/middleware"
	"gin-booking-engine/internal/infra/metrics"
	"gin-booking-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
	Review       *api.ReviewHandler
	Invoice      *api.InvoiceHandler
	Catalog      *api.CatalogHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, m *metrics.Metrics, limiter *middleware.RateLimiter) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, h, m, limiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(m.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, m *metrics.Metrics, limiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.Slots},
		})

		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: []gin.HandlerFunc{limiter.Middleware()}},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
			{Method: http.MethodGet, Path: "/upcoming", Handler: h.Booking.Upcoming},
			{Method: http.MethodGet, Path: "/statistics", Handler: h.Booking.Statistics},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodPost, Path: "/:id/transitions", Handler: h.Booking.Transition},
			{Method: http.MethodGet, Path: "/:id/invoice", Handler: h.Invoice.GetByBooking},
		})

		addRoutes(apiGroup.Group("/reviews"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Review.Create},
		})

		addRoutes(apiGroup.Group("/invoices"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Invoice.Generate},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Invoice.Get},
			{Method: http.MethodPost, Path: "/:id/payment", Handler: h.Invoice.MarkPaid},
		})

		addRoutes(apiGroup.Group("/services"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListServices},
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.RegisterService},
			{Method: http.MethodGet, Path: "/popular", Handler: h.Catalog.PopularServices},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Catalog.RetireService},
		})

		addRoutes(apiGroup.Group("/resources"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Catalog.ListResources},
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.RegisterResource},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Catalog.RetireResource},
			{Method: http.MethodGet, Path: "/:id/reviews", Handler: h.Review.ListByResource},
			{Method: http.MethodGet, Path: "/:id/rating", Handler: h.Review.ResourceRating},
		})

		addRoutes(apiGroup.Group("/customers"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Catalog.RegisterCustomer},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
