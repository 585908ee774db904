//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"gin-booking-engine/internal/domain/invoice"
	"gin-booking-engine/internal/domain/money"
	"gin-booking-engine/internal/handler/api"
	reqdto "gin-booking-engine/internal/handler/dto/request"
	resdto "gin-booking-engine/internal/handler/dto/response"
	"gin-booking-engine/internal/pkg/errs"
	"gin-booking-engine/internal/usecase/commands"
	"gin-booking-engine/internal/usecase/queries"
	"gin-booking-engine/tests/common/builder"
	"gin-booking-engine/tests/common/httptest"
	"gin-booking-engine/tests/common/testutil"
	commandsmock "gin-booking-engine/tests/mock/commands"
	queriesmock "gin-booking-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type InvoiceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockInvoiceCommands
	mockQueries  *queriesmock.MockInvoiceQueries
	handler      *api.InvoiceHandler
}

func (s *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockInvoiceCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockInvoiceQueries(s.mockCtrl)
	s.handler = api.NewInvoiceHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/invoices", s.handler.Generate)
	s.router.GET("/invoices/:id", s.handler.Get)
	s.router.POST("/invoices/:id/payment", s.handler.MarkPaid)
	s.router.GET("/bookings/:id/invoice", s.handler.GetByBooking)
}

func (s *InvoiceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInvoiceHandlerSuite(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}

func (s *InvoiceHandlerTestSuite) newInvoice() *invoice.Invoice {
	rate, err := money.ParseRate("8.25")
	s.Require().NoError(err)
	discount, err := money.Parse("5.00")
	s.Require().NoError(err)
	inv, err := invoice.NewInvoice(builder.NewBookingBuilder().AsCompleted().BuildDomain(), rate, discount, "thanks", 30, builder.BaseTime.Add(6*time.Hour))
	s.Require().NoError(err)
	return inv
}

func (s *InvoiceHandlerTestSuite) TestGenerate() {
	url := "/invoices"
	inv := s.newInvoice()
	reqBody := reqdto.GenerateInvoiceRequest{
		BookingID: inv.BookingID(),
		TaxRate:   " 8.25 ",
		Discount:  "5.00",
		Notes:     "thanks",
	}

	s.Run("success: returns 201 with totals and Location", func() {
		s.mockCommands.EXPECT().GenerateInvoice(gomock.Any(), commands.GenerateInvoiceInput{
			BookingID: inv.BookingID(),
			TaxRate:   "8.25",
			Discount:  "5.00",
			Notes:     "thanks",
		}).Return(inv, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.InvoiceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("/api/invoices/"+inv.ID().String(), rec.Header().Get("Location"))
		s.Equal(inv.Number(), body.InvoiceNumber)
		s.Equal("50.00", body.Subtotal)
		s.Equal("5.00", body.Discount)
		s.Equal(inv.Totals().Total.String(), body.Total)
		s.False(body.IsPaid)
	})

	s.Run("error: 400 Bad Request when required fields are missing", func() {
		for _, field := range []string{"booking_id", "tax_rate"} {
			s.Run(field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps use case failures", func() {
		testCases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{name: "second invoice", err: commands.ErrInvoiceExists, expectCode: http.StatusConflict, expectMsg: "already has an invoice"},
			{name: "unknown booking", err: commands.ErrBookingNotFound, expectCode: http.StatusNotFound, expectMsg: "booking not found"},
			{name: "booking not completed", err: errs.Mark(invoice.ErrBookingNotComplete, errs.ErrValidation), expectCode: http.StatusBadRequest, expectMsg: "completed"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().GenerateInvoice(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

func (s *InvoiceHandlerTestSuite) TestReads() {
	id := uuid.New()
	bookingID := uuid.New()
	view := &queries.InvoiceView{ID: id, BookingID: bookingID, InvoiceNumber: "INV-20300603-ABCD1234", Total: "52.12"}

	s.Run("success: get by id", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/invoices/"+id.String(), nil)

		var body resdto.InvoiceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.InvoiceNumber, body.InvoiceNumber)
		s.Equal("52.12", body.Total)
	})

	s.Run("success: get by booking", func() {
		s.mockQueries.EXPECT().GetByBooking(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String()+"/invoice", nil)

		var body resdto.InvoiceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
	})

	s.Run("error: 404 when the booking has no invoice", func() {
		s.mockQueries.EXPECT().GetByBooking(gomock.Any(), gomock.Any()).Return(nil, queries.ErrInvoiceNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+uuid.NewString()+"/invoice", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "invoice not found")
	})
}

func (s *InvoiceHandlerTestSuite) TestMarkPaid() {
	inv := s.newInvoice()
	paidAt := builder.BaseTime.Add(7 * time.Hour)
	inv.MarkPaid(paidAt)

	s.Run("success: returns the paid invoice", func() {
		s.mockCommands.EXPECT().MarkInvoicePaid(gomock.Any(), inv.ID()).Return(inv, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/invoices/"+inv.ID().String()+"/payment", nil)

		var body resdto.InvoiceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.IsPaid)
		s.Require().NotNil(body.PaidAt)
		s.True(paidAt.Equal(*body.PaidAt))
	})

	s.Run("error: 404 for unknown invoice", func() {
		s.mockCommands.EXPECT().MarkInvoicePaid(gomock.Any(), gomock.Any()).Return(nil, commands.ErrInvoiceNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/invoices/"+uuid.NewString()+"/payment", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "invoice not found")
	})
}
