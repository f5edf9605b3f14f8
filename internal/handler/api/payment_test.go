//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"stayhub/internal/domain/user"
	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/httptest"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockPaymentQueries
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPaymentQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleGuest)
		c.Next()
	}

	s.router.POST("/payments/orders", authMiddleware, s.handler.CreateOrder)
	s.router.POST("/payments/verify", authMiddleware, s.handler.VerifyPayment)
	s.router.GET("/payments/methods/:bookingId", authMiddleware, s.handler.ListMethods)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestCreateOrder() {
	bookingID := uuid.New()
	body := map[string]any{"bookingId": bookingID.String(), "paymentMethod": "card"}

	s.Run("returns the gateway order", func() {
		s.mockCommands.EXPECT().
			CreateOrder(gomock.Any(), bookingID, "card").
			Return(&commands.OrderResult{
				OrderID:       "order_Ml4X2f8NsZ7Q1a",
				Amount:        500000,
				Currency:      "INR",
				PaymentMethod: "card",
				Key:           "rzp_test_key",
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/orders", body, "guest-token")

		var resp resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("order_Ml4X2f8NsZ7Q1a", resp.OrderID)
		s.Equal(int64(500000), resp.Amount)
		s.Equal("rzp_test_key", resp.Key)
	})

	s.Run("maps completed payment to 409", func() {
		s.mockCommands.EXPECT().
			CreateOrder(gomock.Any(), bookingID, "card").
			Return(nil, commands.ErrPaymentAlreadyCompleted)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/orders", body, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already completed")
	})

	s.Run("maps gateway failure to 502", func() {
		s.mockCommands.EXPECT().
			CreateOrder(gomock.Any(), bookingID, "card").
			Return(nil, commands.ErrOrderCreationFailed)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/orders", body, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadGateway, "gateway")
	})

	s.Run("maps unknown booking to 404", func() {
		s.mockCommands.EXPECT().
			CreateOrder(gomock.Any(), bookingID, "card").
			Return(nil, commands.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/orders", body, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("rejects missing fields", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/orders",
			map[string]any{"bookingId": bookingID.String()}, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *PaymentHandlerTestSuite) TestVerifyPayment() {
	body := map[string]any{
		"razorpay_order_id":   "order_Ml4X2f8NsZ7Q1a",
		"razorpay_payment_id": "pay_Ml4Y9dK2xW3R5b",
		"razorpay_signature":  "deadbeef",
	}

	s.Run("confirms on a valid signature", func() {
		s.mockCommands.EXPECT().
			VerifyPayment(gomock.Any(), "order_Ml4X2f8NsZ7Q1a", "pay_Ml4Y9dK2xW3R5b", "deadbeef").
			Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/verify", body, "guest-token")

		var resp resdto.VerifyPaymentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("verified", resp.Status)
	})

	s.Run("maps a bad signature to 400", func() {
		s.mockCommands.EXPECT().
			VerifyPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(commands.ErrInvalidSignature)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/verify", body, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "signature")
	})

	s.Run("maps an unmatched order to 404", func() {
		s.mockCommands.EXPECT().
			VerifyPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(commands.ErrOrderNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/verify", body, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "order")
	})
}

func (s *PaymentHandlerTestSuite) TestListMethods() {
	bookingID := uuid.New()

	s.Run("lists methods for the booking", func() {
		s.mockQueries.EXPECT().
			MethodsFor(gomock.Any(), bookingID).
			Return([]queries.PaymentMethod{
				{ID: "card", Label: "Credit / Debit Card", Enabled: true},
				{ID: "upi", Label: "UPI", Enabled: true},
				{ID: "pay_at_hotel", Label: "Pay at Hotel", Enabled: true},
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/methods/"+bookingID.String(), nil, "guest-token")

		var resp []resdto.PaymentMethodResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 3)
		s.Equal("card", resp[0].ID)
	})

	s.Run("maps missing booking to 404", func() {
		s.mockQueries.EXPECT().
			MethodsFor(gomock.Any(), bookingID).
			Return(nil, queries.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/methods/"+bookingID.String(), nil, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})
}
