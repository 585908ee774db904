package api

import (
	"net/http"

	reqdto "gin-booking-engine/internal/handler/dto/request"
	resdto "gin-booking-engine/internal/handler/dto/response"
	"gin-booking-engine/internal/handler/httperr"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	cmds commands.InvoiceCommands
	q    queries.InvoiceQueries
}

func NewInvoiceHandler(cmds commands.InvoiceCommands, q queries.InvoiceQueries) *InvoiceHandler {
	return &InvoiceHandler{cmds: cmds, q: q}
}

// @Summary Generate invoice
// @Description Bill a booking once. tax_rate is a percentage, discount an amount.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body reqdto.GenerateInvoiceRequest true "Invoice request"
// @Success 201 {object} resdto.InvoiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req reqdto.GenerateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.cmds.GenerateInvoice(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.Header("Location", "/api/invoices/"+inv.ID().String())
	c.JSON(http.StatusCreated, resdto.FromInvoice(inv))
}

// @Summary Get invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} resdto.InvoiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromInvoiceView(view)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get booking invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.InvoiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/invoice [get]
func (h *InvoiceHandler) GetByBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByBooking(c.Request.Context(), bookingID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromInvoiceView(view)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Mark invoice paid
// @Description Idempotent; paying twice keeps the first payment time.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} resdto.InvoiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/invoices/{id}/payment [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.cmds.MarkInvoicePaid(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromInvoice(inv))
}
