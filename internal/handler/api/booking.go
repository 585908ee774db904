package api

import (
	"net/http"

	reqdto "gin-booking-engine/internal/handler/dto/request"
	resdto "gin-booking-engine/internal/handler/dto/response"
	"gin-booking-engine/internal/handler/httperr"
	"gin-booking-engine/internal/handler/middleware"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Reserve a window for a customer. Omitting resource_id assigns the least loaded resource.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "UUID; replays return the stored booking"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	key, ok := reqdto.ParseIdempotencyKey(c.GetHeader(middleware.IdempotencyKeyHeader))
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errBadParam, "Invalid Idempotency-Key header", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.cmds.CreateBooking(c.Request.Context(), req.ToInput(key))
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
		c.Header(middleware.ReplayedHeader, "true")
	}
	c.Header("Location", "/api/bookings/"+res.Booking.ID().String())
	c.Header("ETag", resdto.ETag(res.Booking.Version()))
	c.JSON(status, resdto.FromBooking(res.Booking))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("ETag", resdto.ETag(view.Version))
	resp, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List bookings
// @Description Newest first, keyset paginated.
// @Tags bookings
// @Produce json
// @Param status query string false "Booking status"
// @Param customer_id query string false "Customer ID"
// @Param resource_id query string false "Resource ID"
// @Param service_id query string false "Service ID"
// @Param from query string false "First booking date (YYYY-MM-DD)"
// @Param to query string false "Last booking date (YYYY-MM-DD)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	customerID, ok := queryID(c, "customer_id")
	if !ok {
		return
	}
	resourceID, ok := queryID(c, "resource_id")
	if !ok {
		return
	}
	serviceID, ok := queryID(c, "service_id")
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	filters := queries.BookingFilters{
		Status:     c.Query("status"),
		CustomerID: customerID,
		ResourceID: resourceID,
		ServiceID:  serviceID,
		From:       c.Query("from"),
		To:         c.Query("to"),
	}

	items, next, err := h.q.List(c.Request.Context(), filters, queryCursor(c), limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	bookings, err := resdto.FromBookingViews(items)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingListResponse{
		Bookings:   bookings,
		NextCursor: nextCursor(next),
	})
}

// @Summary Upcoming bookings
// @Description Pending and confirmed bookings starting from now, soonest first.
// @Tags bookings
// @Produce json
// @Param customer_id query string false "Customer ID"
// @Param resource_id query string false "Resource ID"
// @Param limit query int false "Max items (default 20)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings/upcoming [get]
func (h *BookingHandler) Upcoming(c *gin.Context) {
	customerID, ok := queryID(c, "customer_id")
	if !ok {
		return
	}
	resourceID, ok := queryID(c, "resource_id")
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	items, err := h.q.Upcoming(c.Request.Context(), customerID, resourceID, limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromBookingViews(items)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Booking statistics
// @Description Totals per status and revenue from completed bookings.
// @Tags bookings
// @Produce json
// @Param from query string false "First booking date (YYYY-MM-DD)"
// @Param to query string false "Last booking date (YYYY-MM-DD)"
// @Param resource_id query string false "Resource ID"
// @Success 200 {object} queries.BookingStatistics
// @Failure 400 {object} httperr.Response
// @Router /api/bookings/statistics [get]
func (h *BookingHandler) Statistics(c *gin.Context) {
	resourceID, ok := queryID(c, "resource_id")
	if !ok {
		return
	}
	stats, err := h.q.Statistics(c.Request.Context(), queries.StatisticsFilters{
		From:       c.Query("from"),
		To:         c.Query("to"),
		ResourceID: resourceID,
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Transition booking
// @Description Apply a lifecycle action. If-Match carries the version last seen.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param If-Match header string false "Expected version, e.g. W/\"2\""
// @Param request body reqdto.TransitionBookingRequest true "Action"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{id}/transitions [post]
func (h *BookingHandler) Transition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	expected, ok := reqdto.ParseIfMatch(c.GetHeader("If-Match"))
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errBadParam, "Invalid If-Match header", nil)
		return
	}
	var req reqdto.TransitionBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.cmds.TransitionBooking(c.Request.Context(), req.ToInput(id, expected))
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("ETag", resdto.ETag(b.Version()))
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}
