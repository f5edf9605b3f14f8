package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

type PaymentMethod struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

type PaymentQueries interface {
	// MethodsFor lists the payment options for a booking. UPI, netbanking
	// and wallets only work for INR; card and pay-at-hotel always do.
	MethodsFor(ctx context.Context, bookingID uuid.UUID) ([]PaymentMethod, error)
}

type paymentQueriesImpl struct {
	bookings BookingViewRepo
}

func NewPaymentQueries(bookings BookingViewRepo) PaymentQueries {
	return &paymentQueriesImpl{bookings: bookings}
}

func (q *paymentQueriesImpl) MethodsFor(ctx context.Context, bookingID uuid.UUID) ([]PaymentMethod, error) {
	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	inr := view.Currency == "INR"
	return []PaymentMethod{
		{ID: "card", Label: "Credit / Debit Card", Enabled: true},
		{ID: "upi", Label: "UPI", Enabled: inr},
		{ID: "netbanking", Label: "Net Banking", Enabled: inr},
		{ID: "wallet", Label: "Wallet", Enabled: inr},
		{ID: "pay_at_hotel", Label: "Pay at Hotel", Enabled: true},
	}, nil
}
