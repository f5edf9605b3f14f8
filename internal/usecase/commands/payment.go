package commands

import (
	"context"
	"fmt"
	"log/slog"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/payment"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/signature"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

const PayAtHotelMethod = "pay_at_hotel"

var (
	ErrPaymentAlreadyCompleted = errs.New("payment already completed for this booking")
	ErrInvalidSignature        = errs.New("invalid payment signature")
	ErrMissingSignature        = errs.New("missing webhook signature or secret")
	ErrOrderCreationFailed     = errs.New("failed to create payment order")
	ErrOrderNotFound           = errs.New("booking not found for this payment")
)

type OrderResult struct {
	OrderID       string
	Amount        int64 // minor units
	Currency      string
	PaymentMethod string
	// Key is the public gateway key the checkout widget needs; empty for
	// synthetic pay-at-hotel orders.
	Key string
}

type PaymentCommands interface {
	CreateOrder(ctx context.Context, bookingID uuid.UUID, paymentMethod string) (*OrderResult, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, sig string) error
	// HandleWebhook verifies the signature over the raw body before touching
	// any state, then applies the event. Unknown events and unmatched
	// bookings are acknowledged silently.
	HandleWebhook(ctx context.Context, rawBody []byte, signatureHeader string) error
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
	cfg     config.RazorpayConfig
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway PaymentGateway, clock clock.Clock, cfg config.Config) PaymentCommands {
	return &paymentCommandsImpl{
		uow:     uow,
		gateway: gateway,
		clock:   clock,
		cfg:     cfg.Razorpay,
	}
}

func (c *paymentCommandsImpl) CreateOrder(ctx context.Context, bookingID uuid.UUID, paymentMethod string) (*OrderResult, error) {
	// Load outside the write transaction: the gateway call between read and
	// write must not hold a row lock.
	var (
		amountMinor int64
		currency    string
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if b.PaymentStatus() == booking.PaymentCompleted {
			return ErrPaymentAlreadyCompleted
		}

		amountMinor = b.TotalAmount().Cents()
		currency = b.Currency()
		if b.HotelID() != nil {
			h, err := tx.Hotels().FindByID(ctx, *b.HotelID())
			if err == nil {
				currency = h.CurrencyOrDefault()
			} else if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if paymentMethod == PayAtHotelMethod {
		return c.createPayAtHotelOrder(ctx, bookingID, currency, amountMinor)
	}

	order, err := c.gateway.CreateOrder(ctx, CreateGatewayOrderParams{
		AmountMinor: amountMinor,
		Currency:    currency,
		Receipt:     "booking_" + bookingID.String(),
		Notes: map[string]string{
			"bookingId":     bookingID.String(),
			"paymentMethod": paymentMethod,
		},
	})
	if err != nil {
		return nil, errs.Mark(err, ErrOrderCreationFailed)
	}

	// Persisting the order id on the booking here is what lets webhooks find
	// it later; the notes field is only a fallback.
	if err := c.attachOrder(ctx, bookingID, order.ID, paymentMethod); err != nil {
		return nil, err
	}

	return &OrderResult{
		OrderID:       order.ID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		PaymentMethod: paymentMethod,
		Key:           c.gateway.KeyID(),
	}, nil
}

func (c *paymentCommandsImpl) createPayAtHotelOrder(ctx context.Context, bookingID uuid.UUID, currency string, amountMinor int64) (*OrderResult, error) {
	syntheticID := fmt.Sprintf("%s_%s", PayAtHotelMethod, bookingID)
	if err := c.attachOrder(ctx, bookingID, syntheticID, PayAtHotelMethod); err != nil {
		return nil, err
	}
	// No gateway involvement: the booking stays Pending/Pending until the
	// guest settles at the desk.
	return &OrderResult{
		OrderID:       syntheticID,
		Amount:        amountMinor,
		Currency:      currency,
		PaymentMethod: PayAtHotelMethod,
	}, nil
}

func (c *paymentCommandsImpl) attachOrder(ctx context.Context, bookingID uuid.UUID, orderID, method string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := b.AttachOrder(orderID, method); err != nil {
			return ErrPaymentAlreadyCompleted
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *paymentCommandsImpl) VerifyPayment(ctx context.Context, orderID, paymentID, sig string) error {
	if !signature.VerifyPayment(c.cfg.KeySecret, orderID, paymentID, sig) {
		return ErrInvalidSignature
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := c.findByOrderID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		b.CapturePayment(paymentID, "", c.clock.Now())
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// findByOrderID resolves a booking from a gateway order id: the persisted
// linkage first, then the order notes as kept for orders created before the
// linkage write landed.
func (c *paymentCommandsImpl) findByOrderID(ctx context.Context, tx shared.Tx, orderID string) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByOrderIDForUpdate(ctx, orderID)
	if err == nil {
		return b, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	order, err := c.gateway.FetchOrder(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrOrderNotFound)
	}
	rawID, ok := order.Notes["bookingId"]
	if !ok {
		return nil, ErrOrderNotFound
	}
	bookingID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	b, err = tx.Bookings().FindByIDForUpdate(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (c *paymentCommandsImpl) HandleWebhook(ctx context.Context, rawBody []byte, signatureHeader string) error {
	if signatureHeader == "" || c.cfg.WebhookSecret == "" {
		return ErrMissingSignature
	}
	// Signature check runs on the raw bytes before any parsing or state
	// access: forged input gets no side effects of any kind.
	if !signature.Verify(c.cfg.WebhookSecret, rawBody, signatureHeader) {
		return ErrInvalidSignature
	}

	event, err := payment.ParseEvent(rawBody)
	if err != nil {
		return err
	}

	switch e := event.(type) {
	case payment.PaymentCaptured:
		return c.applyCaptured(ctx, e)
	case payment.PaymentFailed:
		return c.applyFailed(ctx, e)
	case payment.RefundProcessed:
		return c.applyRefund(ctx, e)
	case payment.Unknown:
		slog.Info("ignoring unhandled webhook event", "event", e.EventType)
		return nil
	default:
		return nil
	}
}

func (c *paymentCommandsImpl) applyCaptured(ctx context.Context, e payment.PaymentCaptured) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByOrderIDForUpdate(ctx, e.OrderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.Warn("payment.captured for unknown order", "order_id", e.OrderID)
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		b.CapturePayment(e.PaymentID, e.Method, c.clock.Now())
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		slog.Info("payment captured", "booking_id", b.ID(), "payment_id", e.PaymentID)
		return nil
	})
}

func (c *paymentCommandsImpl) applyFailed(ctx context.Context, e payment.PaymentFailed) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByOrderIDForUpdate(ctx, e.OrderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.Warn("payment.failed for unknown order", "order_id", e.OrderID)
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !b.FailPayment(e.PaymentID, e.Method, e.ErrorDescription, c.clock.Now()) {
			// Stale delivery: the booking already advanced past Failed.
			slog.Info("ignoring stale payment.failed", "booking_id", b.ID(), "status", b.PaymentStatus())
			return nil
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		slog.Info("payment failed", "booking_id", b.ID(), "reason", e.ErrorDescription)
		return nil
	})
}

func (c *paymentCommandsImpl) applyRefund(ctx context.Context, e payment.RefundProcessed) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByPaymentIDForUpdate(ctx, e.PaymentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.Warn("refund.processed for unknown payment", "payment_id", e.PaymentID)
				return nil
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		amount, err := booking.NewMoney(e.AmountMinor)
		if err != nil {
			slog.Warn("refund.processed with invalid amount",
				"payment_id", e.PaymentID,
				"amount_minor", e.AmountMinor)
			return nil
		}

		refund := booking.Refund{
			RefundID:    e.RefundID,
			Amount:      amount.Major(),
			Currency:    e.Currency,
			Status:      e.Status,
			ProcessedAt: c.clock.Now(),
		}
		if err := b.ProcessRefund(refund); err != nil {
			slog.Warn("refund for booking without completed payment", "booking_id", b.ID())
			return nil
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		slog.Info("refund processed", "booking_id", b.ID(), "refund_id", e.RefundID)
		return nil
	})
}
