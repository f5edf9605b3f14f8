package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	BookingType     string         `json:"booking_type"`
	HotelID         *uuid.UUID     `json:"hotel_id,omitempty"`
	HotelName       *string        `json:"hotel_name,omitempty"`
	RoomID          *uuid.UUID     `json:"room_id,omitempty"`
	RoomType        *string        `json:"room_type,omitempty"`
	PackageID       *uuid.UUID     `json:"package_id,omitempty"`
	RoomNumbers     []int          `json:"room_numbers,omitempty"`
	CheckIn         time.Time      `json:"check_in"`
	CheckOut        time.Time      `json:"check_out"`
	Adults          int            `json:"adults"`
	Children        int            `json:"children"`
	Guests          []GuestView    `json:"guests"`
	TotalCents      int64          `json:"total_cents"`
	Currency        string         `json:"currency"`
	PaymentStatus   string         `json:"payment_status"`
	Status          string         `json:"status"`
	SpecialRequests *string        `json:"special_requests,omitempty"`
	Payment         PaymentView    `json:"payment"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type GuestView struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
}

type PaymentView struct {
	OrderID          *string      `json:"order_id,omitempty"`
	PaymentID        *string      `json:"payment_id,omitempty"`
	Method           *string      `json:"method,omitempty"`
	PaymentDate      *time.Time   `json:"payment_date,omitempty"`
	ErrorDescription *string      `json:"error_description,omitempty"`
	Refunds          []RefundView `json:"refunds,omitempty"`
}

type RefundView struct {
	RefundID    string    `json:"refund_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	ProcessedAt time.Time `json:"processed_at"`
}

type BookingListItem struct {
	ID            uuid.UUID  `json:"id"`
	BookingType   string     `json:"booking_type"`
	HotelName     *string    `json:"hotel_name,omitempty"`
	RoomNumbers   []int      `json:"room_numbers,omitempty"`
	CheckIn       time.Time  `json:"check_in"`
	CheckOut      time.Time  `json:"check_out"`
	TotalCents    int64      `json:"total_cents"`
	Currency      string     `json:"currency"`
	PaymentStatus string     `json:"payment_status"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

type HotelView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoomView struct {
	ID           uuid.UUID `json:"id"`
	HotelID      uuid.UUID `json:"hotel_id"`
	TypeName     string    `json:"type_name"`
	PriceCents   int64     `json:"price_cents"`
	MaxOccupancy int       `json:"max_occupancy"`
	Amenities    []string  `json:"amenities"`
	RoomNumbers  []int     `json:"room_numbers"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BookingFilter narrows a listing. Zero values mean "no constraint".
type BookingFilter struct {
	UserID        *uuid.UUID
	Status        *string
	PaymentStatus *string
	CheckInFrom   *time.Time
	CheckInTo     *time.Time
	MinTotalCents *int64
	MaxTotalCents *int64
	// Search matches guest names and hotel names, case-insensitively.
	Search *string
}

type BookingSort struct {
	// Field is one of created_at, check_in, total_cents. Empty defaults to
	// created_at.
	Field string
	Desc  bool
}

type Page struct {
	Number int
	Size   int
}

func (p Page) LimitOffset() (int32, int32) {
	size := p.Size
	if size <= 0 || size > 100 {
		size = 20
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	return int32(size), int32((number - 1) * size)
}
