//go:build e2e

package payment_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/pkg/signature"
	"stayhub/tests/common/dbtest"
	"stayhub/tests/common/httptest"
	"stayhub/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PaymentE2ETestSuite struct {
	e2e.SharedSuite
}

func TestPaymentE2ESuite(t *testing.T) {
	suite.Run(t, new(PaymentE2ETestSuite))
}

func (s *PaymentE2ETestSuite) login(email string) string {
	dbtest.CreateTestUser(s.T(), s.DB, email, "guest")

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
		map[string]any{"email": email, "password": "password123"}, "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp resdto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

// createBooking seeds inventory and reserves a two-night stay.
func (s *PaymentE2ETestSuite) createBooking(token string) resdto.BookingResponse {
	hotelID := dbtest.CreateTestHotel(s.T(), s.DB, "Seaside Palace", "Goa", "INR")
	roomID := dbtest.CreateTestRoom(s.T(), s.DB, hotelID, "Deluxe", 250000, []int{101, 102})

	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/bookings", map[string]any{
		"bookingType": "Hotel",
		"hotelId":     hotelID.String(),
		"roomId":      roomID.String(),
		"checkIn":     "2026-10-01",
		"checkOut":    "2026-10-03",
		"adults":      2,
		"guests": []map[string]any{
			{"fullName": "Asha Verma", "age": 34},
		},
	}, token)

	var resp resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	return resp
}

func (s *PaymentE2ETestSuite) createOrder(token string, bookingID uuid.UUID, method string) resdto.OrderResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/orders",
		map[string]any{"bookingId": bookingID.String(), "paymentMethod": method}, token)

	var resp resdto.OrderResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	return resp
}

func (s *PaymentE2ETestSuite) getBooking(token string, id uuid.UUID) resdto.BookingResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings/"+id.String(), nil, token)

	var resp resdto.BookingResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	return resp
}

// postWebhook signs body with the webhook secret and expects the gateway
// contract response: 200 for anything past signature verification.
func (s *PaymentE2ETestSuite) postWebhook(body []byte) {
	headers := map[string]string{
		"X-Razorpay-Signature": signature.Compute(s.Config.Razorpay.WebhookSecret, body),
	}
	w := httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, "/api/webhooks/payment", body, headers)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func capturedBody(orderID, paymentID string) []byte {
	return fmt.Appendf(nil,
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":%q,"order_id":%q,"method":"card"}}}}`,
		paymentID, orderID)
}

func failedBody(orderID, paymentID, reason string) []byte {
	return fmt.Appendf(nil,
		`{"event":"payment.failed","payload":{"payment":{"entity":{"id":%q,"order_id":%q,"method":"card","error_description":%q}}}}`,
		paymentID, orderID, reason)
}

func refundBody(paymentID, refundID string, amountMinor int64) []byte {
	return fmt.Appendf(nil,
		`{"event":"refund.processed","payload":{"refund":{"entity":{"id":%q,"payment_id":%q,"amount":%d,"currency":"INR","status":"processed"}}}}`,
		refundID, paymentID, amountMinor)
}

func (s *PaymentE2ETestSuite) TestCaptureFlow() {
	s.Run("a captured webhook confirms the booking", func() {
		token := s.login("payer1@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")
		s.Equal(int64(500000), order.Amount)
		s.NotEmpty(order.Key)

		s.postWebhook(capturedBody(order.OrderID, "pay_e2e_001"))

		got := s.getBooking(token, booking.ID)
		expected := resdto.BookingResponse{
			BookingType:   "Hotel",
			CheckIn:       "2026-10-01",
			CheckOut:      "2026-10-03",
			Adults:        2,
			Guests:        []resdto.GuestResponse{{FullName: "Asha Verma", Age: 34}},
			TotalCents:    500000,
			Currency:      "INR",
			PaymentStatus: "Completed",
			Status:        "Confirmed",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.BookingResponse{},
				"ID", "UserID", "HotelID", "HotelName", "RoomID", "RoomType",
				"RoomNumbers", "Payment", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, got, opts...); diff != "" {
			s.T().Errorf("booking response mismatch (-want +got):\n%s", diff)
		}
		s.Require().NotNil(got.Payment.PaymentID)
		s.Equal("pay_e2e_001", *got.Payment.PaymentID)
		s.NotNil(got.Payment.PaymentDate)
	})

	s.Run("duplicate capture deliveries are idempotent", func() {
		token := s.login("payer2@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")

		body := capturedBody(order.OrderID, "pay_e2e_002")
		s.postWebhook(body)
		first := s.getBooking(token, booking.ID)

		s.postWebhook(body)
		second := s.getBooking(token, booking.ID)

		s.Equal(first.Payment.PaymentDate, second.Payment.PaymentDate)
		s.Equal("Completed", second.PaymentStatus)
	})

	s.Run("a tampered body is rejected and changes nothing", func() {
		token := s.login("payer3@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")

		body := capturedBody(order.OrderID, "pay_e2e_003")
		sig := signature.Compute(s.Config.Razorpay.WebhookSecret, body)
		tampered := append(body[:len(body)-2], []byte(`,"x":1}}`)...)

		w := httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, "/api/webhooks/payment",
			tampered, map[string]string{"X-Razorpay-Signature": sig})
		s.Equal(http.StatusUnauthorized, w.Code)

		got := s.getBooking(token, booking.ID)
		s.Equal("Pending", got.PaymentStatus)
	})

	s.Run("a missing signature header is rejected", func() {
		w := httptest.PerformRawRequest(s.T(), s.Router, http.MethodPost, "/api/webhooks/payment",
			capturedBody("order_none", "pay_none"), nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("a capture for an unknown order is acknowledged without effect", func() {
		s.postWebhook(capturedBody("order_missing", "pay_missing"))
	})
}

func (s *PaymentE2ETestSuite) TestFailureAndRecovery() {
	s.Run("a failed webhook marks the payment failed", func() {
		token := s.login("payer4@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")

		s.postWebhook(failedBody(order.OrderID, "pay_e2e_004", "card declined"))

		got := s.getBooking(token, booking.ID)
		s.Equal("Failed", got.PaymentStatus)
		s.Equal("Pending", got.Status)
		s.Require().NotNil(got.Payment.ErrorDescription)
		s.Equal("card declined", *got.Payment.ErrorDescription)
	})

	s.Run("a late failure never downgrades a captured payment", func() {
		token := s.login("payer5@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")

		s.postWebhook(capturedBody(order.OrderID, "pay_e2e_005"))
		s.postWebhook(failedBody(order.OrderID, "pay_e2e_005", "late failure"))

		got := s.getBooking(token, booking.ID)
		s.Equal("Completed", got.PaymentStatus)
		s.Equal("Confirmed", got.Status)
	})

	s.Run("a capture after a failure recovers the booking", func() {
		token := s.login("payer6@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")

		s.postWebhook(failedBody(order.OrderID, "pay_e2e_006a", "card declined"))
		s.postWebhook(capturedBody(order.OrderID, "pay_e2e_006b"))

		got := s.getBooking(token, booking.ID)
		s.Equal("Completed", got.PaymentStatus)
		s.Equal("Confirmed", got.Status)
	})
}

func (s *PaymentE2ETestSuite) TestRefund() {
	s.Run("a processed refund marks the booking refunded", func() {
		token := s.login("payer7@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")

		s.postWebhook(capturedBody(order.OrderID, "pay_e2e_007"))
		s.postWebhook(refundBody("pay_e2e_007", "rfnd_e2e_001", 500000))

		got := s.getBooking(token, booking.ID)
		s.Equal("Refunded", got.PaymentStatus)
		s.Require().Len(got.Payment.Refunds, 1)
		s.Equal("rfnd_e2e_001", got.Payment.Refunds[0].RefundID)
		s.InDelta(5000.0, got.Payment.Refunds[0].Amount, 0.001)
	})
}

func (s *PaymentE2ETestSuite) TestVerifyPayment() {
	s.Run("the checkout callback confirms the booking", func() {
		token := s.login("payer8@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")

		payload := order.OrderID + "|pay_e2e_008"
		sig := signature.Compute(s.Config.Razorpay.KeySecret, []byte(payload))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/verify", map[string]any{
			"razorpay_order_id":   order.OrderID,
			"razorpay_payment_id": "pay_e2e_008",
			"razorpay_signature":  sig,
		}, token)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)

		got := s.getBooking(token, booking.ID)
		s.Equal("Completed", got.PaymentStatus)
	})

	s.Run("a forged callback signature is rejected", func() {
		token := s.login("payer9@example.com")
		booking := s.createBooking(token)
		order := s.createOrder(token, booking.ID, "card")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/verify", map[string]any{
			"razorpay_order_id":   order.OrderID,
			"razorpay_payment_id": "pay_e2e_009",
			"razorpay_signature":  "forged",
		}, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "signature")

		got := s.getBooking(token, booking.ID)
		s.Equal("Pending", got.PaymentStatus)
	})
}

func (s *PaymentE2ETestSuite) TestPayAtHotel() {
	s.Run("pay at hotel creates a synthetic order and skips the gateway", func() {
		token := s.login("payer10@example.com")
		booking := s.createBooking(token)

		before := len(s.Gateway.CreatedOrders)
		order := s.createOrder(token, booking.ID, "pay_at_hotel")

		s.Equal("pay_at_hotel_"+booking.ID.String(), order.OrderID)
		s.Empty(order.Key)
		s.Len(s.Gateway.CreatedOrders, before, "no gateway order may be created")

		got := s.getBooking(token, booking.ID)
		s.Equal("Pending", got.PaymentStatus)
		s.Equal("Pending", got.Status)
	})
}
