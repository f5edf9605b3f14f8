package request

import "github.com/google/uuid"

type CreateOrderRequest struct {
	BookingID     uuid.UUID `json:"bookingId" binding:"required"`
	PaymentMethod string    `json:"paymentMethod" binding:"required"`
}

// VerifyPaymentRequest carries the checkout callback fields exactly as the
// gateway names them; the signature is computed over "<order_id>|<payment_id>".
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}
