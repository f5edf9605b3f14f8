package response

import (
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	BookingType     string          `json:"bookingType"`
	HotelID         *uuid.UUID      `json:"hotelId,omitempty"`
	HotelName       *string         `json:"hotelName,omitempty"`
	RoomID          *uuid.UUID      `json:"roomId,omitempty"`
	RoomType        *string         `json:"roomType,omitempty"`
	PackageID       *uuid.UUID      `json:"packageId,omitempty"`
	RoomNumbers     []int           `json:"roomNumbers,omitempty"`
	CheckIn         string          `json:"checkIn"`
	CheckOut        string          `json:"checkOut"`
	Adults          int             `json:"adults"`
	Children        int             `json:"children"`
	Guests          []GuestResponse `json:"guests"`
	TotalCents      int64           `json:"totalCents"`
	Currency        string          `json:"currency"`
	PaymentStatus   string          `json:"paymentStatus"`
	Status          string          `json:"status"`
	SpecialRequests *string         `json:"specialRequests,omitempty"`
	Payment         PaymentInfo     `json:"payment"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type GuestResponse struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
}

type PaymentInfo struct {
	OrderID          *string          `json:"orderId,omitempty"`
	PaymentID        *string          `json:"paymentId,omitempty"`
	Method           *string          `json:"method,omitempty"`
	PaymentDate      *time.Time       `json:"paymentDate,omitempty"`
	ErrorDescription *string          `json:"errorDescription,omitempty"`
	Refunds          []RefundResponse `json:"refunds,omitempty"`
}

type RefundResponse struct {
	RefundID    string    `json:"refundId"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	ProcessedAt time.Time `json:"processedAt"`
}

type BookingListResponse struct {
	ID            uuid.UUID `json:"id"`
	BookingType   string    `json:"bookingType"`
	HotelName     *string   `json:"hotelName,omitempty"`
	RoomNumbers   []int     `json:"roomNumbers,omitempty"`
	CheckIn       string    `json:"checkIn"`
	CheckOut      string    `json:"checkOut"`
	TotalCents    int64     `json:"totalCents"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"paymentStatus"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type BookingPageResponse struct {
	Items []*BookingListResponse `json:"items"`
	Total int64                  `json:"total"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	guests := make([]GuestResponse, 0, len(v.Guests))
	for _, g := range v.Guests {
		guests = append(guests, GuestResponse{FullName: g.FullName, Age: g.Age})
	}

	return &BookingResponse{
		ID:              v.ID,
		UserID:          v.UserID,
		BookingType:     v.BookingType,
		HotelID:         v.HotelID,
		HotelName:       v.HotelName,
		RoomID:          v.RoomID,
		RoomType:        v.RoomType,
		PackageID:       v.PackageID,
		RoomNumbers:     v.RoomNumbers,
		CheckIn:         v.CheckIn.Format(time.DateOnly),
		CheckOut:        v.CheckOut.Format(time.DateOnly),
		Adults:          v.Adults,
		Children:        v.Children,
		Guests:          guests,
		TotalCents:      v.TotalCents,
		Currency:        v.Currency,
		PaymentStatus:   v.PaymentStatus,
		Status:          v.Status,
		SpecialRequests: v.SpecialRequests,
		Payment:         paymentInfoFromView(v.Payment),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func paymentInfoFromView(p queries.PaymentView) PaymentInfo {
	info := PaymentInfo{
		OrderID:          p.OrderID,
		PaymentID:        p.PaymentID,
		Method:           p.Method,
		PaymentDate:      p.PaymentDate,
		ErrorDescription: p.ErrorDescription,
	}
	for _, r := range p.Refunds {
		info.Refunds = append(info.Refunds, RefundResponse(r))
	}
	return info
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:            v.ID,
		BookingType:   v.BookingType,
		HotelName:     v.HotelName,
		RoomNumbers:   v.RoomNumbers,
		CheckIn:       v.CheckIn.Format(time.DateOnly),
		CheckOut:      v.CheckOut.Format(time.DateOnly),
		TotalCents:    v.TotalCents,
		Currency:      v.Currency,
		PaymentStatus: v.PaymentStatus,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
	}
}

// FromBooking maps a freshly mutated domain entity, used by command endpoints
// that return the written state without a follow-up read.
func FromBooking(b *booking.Booking) *BookingResponse {
	guests := make([]GuestResponse, 0, len(b.Guests()))
	for _, g := range b.Guests() {
		guests = append(guests, GuestResponse{FullName: g.FullName, Age: g.Age})
	}

	p := b.Payment()
	info := PaymentInfo{
		OrderID:          p.OrderID,
		PaymentID:        p.PaymentID,
		Method:           p.Method,
		PaymentDate:      p.PaymentDate,
		ErrorDescription: p.ErrorDescription,
	}
	for _, r := range p.Refunds {
		info.Refunds = append(info.Refunds, RefundResponse(r))
	}

	return &BookingResponse{
		ID:              b.ID(),
		UserID:          b.UserID(),
		BookingType:     string(b.BookingType()),
		HotelID:         b.HotelID(),
		RoomID:          b.RoomID(),
		PackageID:       b.PackageID(),
		RoomNumbers:     b.RoomNumbers(),
		CheckIn:         b.Period().CheckIn().Format(time.DateOnly),
		CheckOut:        b.Period().CheckOut().Format(time.DateOnly),
		Adults:          b.Adults(),
		Children:        b.Children(),
		Guests:          guests,
		TotalCents:      b.TotalAmount().Cents(),
		Currency:        b.Currency(),
		PaymentStatus:   string(b.PaymentStatus()),
		Status:          string(b.Status()),
		SpecialRequests: b.SpecialRequests(),
		Payment:         info,
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}
