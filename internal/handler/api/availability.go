package api

import (
	"net/http"

	"gin-booking-engine/internal/handler/httperr"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Available slots
// @Description Bookable start times for a service on a date. Without resource_id the default calendar is used.
// @Tags availability
// @Produce json
// @Param service_id query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param resource_id query string false "Resource ID"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid service_id", nil)
		return
	}
	resourceID, ok := queryID(c, "resource_id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errBadParam, "date is required", nil)
		return
	}

	view, err := h.q.AvailableSlots(c.Request.Context(), queries.AvailabilityInput{
		ServiceID:  serviceID,
		ResourceID: resourceID,
		Date:       date,
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
