// Package payment models gateway webhook events as a closed sum type. The
// dispatch in the reconciliation usecase matches every variant explicitly;
// anything the gateway sends that we do not recognize becomes Unknown and is
// acknowledged without side effects.
package payment

import (
	"encoding/json"

	"stayhub/internal/pkg/errs"
)

const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
	EventRefundProcessed = "refund.processed"
)

var ErrMalformedEvent = errs.New("malformed webhook event")

type Event interface {
	isEvent()
}

type PaymentCaptured struct {
	PaymentID string
	OrderID   string
	Method    string
}

type PaymentFailed struct {
	PaymentID        string
	OrderID          string
	Method           string
	ErrorDescription string
}

type RefundProcessed struct {
	RefundID    string
	PaymentID   string
	AmountMinor int64
	Currency    string
	Status      string
}

type Unknown struct {
	EventType string
	Raw       json.RawMessage
}

func (PaymentCaptured) isEvent() {}
func (PaymentFailed) isEvent()   {}
func (RefundProcessed) isEvent() {}
func (Unknown) isEvent()         {}

type paymentEntity struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Method           string `json:"method"`
	ErrorDescription string `json:"error_description"`
}

type refundEntity struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

type envelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity refundEntity `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

// ParseEvent decodes a raw webhook body. The raw bytes must be the exact
// bytes the signature was verified against; parsing never happens first.
func ParseEvent(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Mark(err, ErrMalformedEvent)
	}

	switch env.Event {
	case EventPaymentCaptured:
		e := env.Payload.Payment.Entity
		return PaymentCaptured{PaymentID: e.ID, OrderID: e.OrderID, Method: e.Method}, nil
	case EventPaymentFailed:
		e := env.Payload.Payment.Entity
		return PaymentFailed{PaymentID: e.ID, OrderID: e.OrderID, Method: e.Method, ErrorDescription: e.ErrorDescription}, nil
	case EventRefundProcessed:
		e := env.Payload.Refund.Entity
		return RefundProcessed{RefundID: e.ID, PaymentID: e.PaymentID, AmountMinor: e.Amount, Currency: e.Currency, Status: e.Status}, nil
	default:
		return Unknown{EventType: env.Event, Raw: json.RawMessage(raw)}, nil
	}
}
