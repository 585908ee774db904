package api

import (
	"net/http"
	"strconv"

	reqdto "gin-booking-engine/internal/handler/dto/request"
	resdto "gin-booking-engine/internal/handler/dto/response"
	"gin-booking-engine/internal/handler/httperr"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// @Summary List services
// @Tags catalog
// @Produce json
// @Param category query string false "Category"
// @Param active_only query bool false "Only bookable services"
// @Success 200 {array} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Router /api/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	activeOnly, ok := queryBool(c, "active_only")
	if !ok {
		return
	}
	items, err := h.q.ListServices(c.Request.Context(), queries.ServiceFilters{
		Category:   c.Query("category"),
		ActiveOnly: activeOnly,
	})
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromServiceViews(items)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Popular services
// @Description Ranked by non-cancelled bookings.
// @Tags catalog
// @Produce json
// @Param limit query int false "Max items (default 5)"
// @Success 200 {array} resdto.PopularServiceResponse
// @Failure 400 {object} httperr.Response
// @Router /api/services/popular [get]
func (h *CatalogHandler) PopularServices(c *gin.Context) {
	limit := queries.DefaultPopularLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = queries.ValidateLimit(n)
	}
	items, err := h.q.PopularServices(c.Request.Context(), limit)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromPopularServices(items)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Register service
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterServiceRequest true "Service"
// @Success 201 {object} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/services [post]
func (h *CatalogHandler) RegisterService(c *gin.Context) {
	var req reqdto.RegisterServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.cmds.RegisterService(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromService(o))
}

// @Summary Retire service
// @Description Refused while active bookings reference the service.
// @Tags catalog
// @Param id path string true "Service ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/services/{id} [delete]
func (h *CatalogHandler) RetireService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.RetireService(c.Request.Context(), id); err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List resources
// @Tags catalog
// @Produce json
// @Param available_only query bool false "Only schedulable resources"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Router /api/resources [get]
func (h *CatalogHandler) ListResources(c *gin.Context) {
	availableOnly, ok := queryBool(c, "available_only")
	if !ok {
		return
	}
	items, err := h.q.ListResources(c.Request.Context(), availableOnly)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromResourceViews(items)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Register resource
// @Description hours is keyed by lowercase weekday name; missing days are closed.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/resources [post]
func (h *CatalogHandler) RegisterResource(c *gin.Context) {
	var req reqdto.RegisterResourceRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.cmds.RegisterResource(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromResource(r))
}

// @Summary Retire resource
// @Description Refused while active bookings reference the resource.
// @Tags catalog
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/resources/{id} [delete]
func (h *CatalogHandler) RetireResource(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.RetireResource(c.Request.Context(), id); err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Register customer
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterCustomerRequest true "Customer"
// @Success 201 {object} resdto.CustomerResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/customers [post]
func (h *CatalogHandler) RegisterCustomer(c *gin.Context) {
	var req reqdto.RegisterCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	cu, err := h.cmds.RegisterCustomer(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCustomer(cu))
}
