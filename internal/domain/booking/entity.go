// Package booking holds the reservation aggregate and the payment
// reconciliation state machine that drives it. All transitions are monotonic
// with respect to PaymentStatus.Rank so repeated or out-of-order gateway
// notifications cannot regress a booking.
package booking

import (
	"errors"
	"time"

	"stayhub/internal/domain/room"

	"github.com/google/uuid"
)

var (
	ErrHotelFieldsRequired   = errors.New("hotel bookings require hotel and room references")
	ErrPackageFieldRequired  = errors.New("package bookings require a package reference")
	ErrAdultsRequired        = errors.New("at least one adult is required")
	ErrNegativeChildren      = errors.New("number of children cannot be negative")
	ErrAlreadyCancelled      = errors.New("booking is already cancelled")
	ErrPaymentAlreadyDone    = errors.New("payment already completed for this booking")
	ErrRefundRequiresCapture = errors.New("refund requires a completed payment")
)

// PaymentDetails is everything we persist about the gateway side of a
// booking. OrderID is set atomically at order-creation time and is the single
// linkage a webhook uses to find the booking.
type PaymentDetails struct {
	OrderID          *string
	PaymentID        *string
	Method           *string
	PaymentDate      *time.Time
	ErrorDescription *string
	Refunds          []Refund
}

type Refund struct {
	RefundID    string
	Amount      float64 // major units
	Currency    string
	Status      string
	ProcessedAt time.Time
}

type Booking struct {
	id              uuid.UUID
	userID          uuid.UUID
	bookingType     Type
	hotelID         *uuid.UUID
	roomID          *uuid.UUID
	packageID       *uuid.UUID
	roomNumbers     []int
	period          room.StayPeriod
	adults          int
	children        int
	guests          []Guest
	totalAmount     Money
	currency        string
	paymentStatus   PaymentStatus
	status          Status
	specialRequests *string
	payment         PaymentDetails
	createdAt       time.Time
	updatedAt       time.Time
}

type NewHotelBookingParams struct {
	UserID          uuid.UUID
	HotelID         uuid.UUID
	RoomID          uuid.UUID
	RoomNumber      int
	Period          room.StayPeriod
	Adults          int
	Children        int
	Guests          []Guest
	TotalAmount     Money
	Currency        string
	SpecialRequests *string
	Now             time.Time
}

func NewHotelBooking(p NewHotelBookingParams) (*Booking, error) {
	if p.HotelID == uuid.Nil || p.RoomID == uuid.Nil {
		return nil, ErrHotelFieldsRequired
	}
	if err := validateHeadcount(p.Adults, p.Children); err != nil {
		return nil, err
	}

	currency := p.Currency
	if currency == "" {
		currency = "INR"
	}

	hotelID := p.HotelID
	roomID := p.RoomID
	return &Booking{
		id:              uuid.New(),
		userID:          p.UserID,
		bookingType:     TypeHotel,
		hotelID:         &hotelID,
		roomID:          &roomID,
		roomNumbers:     []int{p.RoomNumber},
		period:          p.Period,
		adults:          p.Adults,
		children:        p.Children,
		guests:          p.Guests,
		totalAmount:     p.TotalAmount,
		currency:        currency,
		paymentStatus:   PaymentPending,
		status:          StatusPending,
		specialRequests: p.SpecialRequests,
		createdAt:       p.Now,
		updatedAt:       p.Now,
	}, nil
}

type NewPackageBookingParams struct {
	UserID          uuid.UUID
	PackageID       uuid.UUID
	Period          room.StayPeriod
	Adults          int
	Children        int
	Guests          []Guest
	TotalAmount     Money
	Currency        string
	SpecialRequests *string
	Now             time.Time
}

func NewPackageBooking(p NewPackageBookingParams) (*Booking, error) {
	if p.PackageID == uuid.Nil {
		return nil, ErrPackageFieldRequired
	}
	if err := validateHeadcount(p.Adults, p.Children); err != nil {
		return nil, err
	}

	currency := p.Currency
	if currency == "" {
		currency = "INR"
	}

	packageID := p.PackageID
	return &Booking{
		id:              uuid.New(),
		userID:          p.UserID,
		bookingType:     TypePackage,
		packageID:       &packageID,
		period:          p.Period,
		adults:          p.Adults,
		children:        p.Children,
		guests:          p.Guests,
		totalAmount:     p.TotalAmount,
		currency:        currency,
		paymentStatus:   PaymentPending,
		status:          StatusPending,
		specialRequests: p.SpecialRequests,
		createdAt:       p.Now,
		updatedAt:       p.Now,
	}, nil
}

func validateHeadcount(adults, children int) error {
	if adults < 1 {
		return ErrAdultsRequired
	}
	if children < 0 {
		return ErrNegativeChildren
	}
	return nil
}

type ReconstructParams struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BookingType     Type
	HotelID         *uuid.UUID
	RoomID          *uuid.UUID
	PackageID       *uuid.UUID
	RoomNumbers     []int
	Period          room.StayPeriod
	Adults          int
	Children        int
	Guests          []Guest
	TotalAmount     Money
	Currency        string
	PaymentStatus   PaymentStatus
	Status          Status
	SpecialRequests *string
	Payment         PaymentDetails
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func Reconstruct(p ReconstructParams) *Booking {
	return &Booking{
		id:              p.ID,
		userID:          p.UserID,
		bookingType:     p.BookingType,
		hotelID:         p.HotelID,
		roomID:          p.RoomID,
		packageID:       p.PackageID,
		roomNumbers:     p.RoomNumbers,
		period:          p.Period,
		adults:          p.Adults,
		children:        p.Children,
		guests:          p.Guests,
		totalAmount:     p.TotalAmount,
		currency:        p.Currency,
		paymentStatus:   p.PaymentStatus,
		status:          p.Status,
		specialRequests: p.SpecialRequests,
		payment:         p.Payment,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) UserID() uuid.UUID         { return b.userID }
func (b *Booking) BookingType() Type         { return b.bookingType }
func (b *Booking) HotelID() *uuid.UUID       { return b.hotelID }
func (b *Booking) RoomID() *uuid.UUID        { return b.roomID }
func (b *Booking) PackageID() *uuid.UUID     { return b.packageID }
func (b *Booking) RoomNumbers() []int        { return b.roomNumbers }
func (b *Booking) Period() room.StayPeriod   { return b.period }
func (b *Booking) Adults() int               { return b.adults }
func (b *Booking) Children() int             { return b.children }
func (b *Booking) Guests() []Guest           { return b.guests }
func (b *Booking) TotalAmount() Money        { return b.totalAmount }
func (b *Booking) Currency() string          { return b.currency }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) SpecialRequests() *string  { return b.specialRequests }
func (b *Booking) Payment() PaymentDetails   { return b.payment }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// AttachOrder records the gateway order id and chosen method. It must be
// persisted in the same write as the order creation so webhook lookups by
// order id always succeed.
func (b *Booking) AttachOrder(orderID, method string) error {
	if b.paymentStatus == PaymentCompleted {
		return ErrPaymentAlreadyDone
	}
	b.payment.OrderID = &orderID
	b.payment.Method = &method
	return nil
}

// CapturePayment applies payment.captured (or a successful synchronous
// verification). Re-applying to an already-confirmed booking is a no-op, not
// an error: webhook delivery may repeat.
func (b *Booking) CapturePayment(paymentID, method string, at time.Time) {
	if b.paymentStatus == PaymentCompleted || b.paymentStatus == PaymentRefunded {
		return
	}
	b.paymentStatus = PaymentCompleted
	b.status = StatusConfirmed
	b.payment.PaymentID = &paymentID
	if method != "" {
		b.payment.Method = &method
	}
	b.payment.PaymentDate = &at
}

// FailPayment applies payment.failed. Returns false when the booking has
// already advanced past Failed, in which case the event is stale and nothing
// changes.
func (b *Booking) FailPayment(paymentID, method, errorDescription string, at time.Time) bool {
	if b.paymentStatus.Rank() > PaymentFailed.Rank() {
		return false
	}
	b.paymentStatus = PaymentFailed
	b.payment.PaymentID = &paymentID
	if method != "" {
		b.payment.Method = &method
	}
	b.payment.PaymentDate = &at
	b.payment.ErrorDescription = &errorDescription
	return true
}

// ProcessRefund applies refund.processed. Refunded is absorbing and only
// reachable from a completed payment.
func (b *Booking) ProcessRefund(r Refund) error {
	if b.paymentStatus != PaymentCompleted && b.paymentStatus != PaymentRefunded {
		return ErrRefundRequiresCapture
	}
	b.paymentStatus = PaymentRefunded
	b.payment.Refunds = append(b.payment.Refunds, r)
	return nil
}

// Cancel releases the guest's claim. The caller is responsible for releasing
// the room assignments in the same transaction.
func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	return nil
}

// OverrideStatus is the administrative escape hatch: either field may be set
// directly, skipping transition checks.
func (b *Booking) OverrideStatus(status *Status, paymentStatus *PaymentStatus) {
	if status != nil {
		b.status = *status
	}
	if paymentStatus != nil {
		b.paymentStatus = *paymentStatus
	}
}
