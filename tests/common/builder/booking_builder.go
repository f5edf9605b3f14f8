//go:build unit || e2e

package builder

import (
	"time"

	dombooking "stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID          uuid.UUID
	HotelID         uuid.UUID
	RoomID          uuid.UUID
	PackageID       uuid.UUID
	RoomNumber      int
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	Children        int
	Guests          []dombooking.Guest
	TotalCents      int64
	Currency        string
	SpecialRequests *string
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:     uuid.New(),
		HotelID:    uuid.New(),
		RoomID:     uuid.New(),
		PackageID:  uuid.New(),
		RoomNumber: 101,
		CheckIn:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Adults:     2,
		Children:   0,
		Guests: []dombooking.Guest{
			{FullName: "Asha Verma", Age: 34},
			{FullName: "Rohan Verma", Age: 36},
		},
		TotalCents: 500000,
		Currency:   "INR",
		CreatedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) WithCreatedAt(t time.Time) *BookingBuilder {
	b.CreatedAt = t
	return b
}

func (b *BookingBuilder) WithHotelID(id uuid.UUID) *BookingBuilder {
	b.HotelID = id
	return b
}

func (b *BookingBuilder) WithRoomID(id uuid.UUID) *BookingBuilder {
	b.RoomID = id
	return b
}

func (b *BookingBuilder) WithRoomNumber(n int) *BookingBuilder {
	b.RoomNumber = n
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithAdults(n int) *BookingBuilder {
	b.Adults = n
	return b
}

func (b *BookingBuilder) WithChildren(n int) *BookingBuilder {
	b.Children = n
	return b
}

func (b *BookingBuilder) WithTotalCents(cents int64) *BookingBuilder {
	b.TotalCents = cents
	return b
}

func (b *BookingBuilder) period() (room.StayPeriod, error) {
	return room.NewStayPeriod(b.CheckIn, b.CheckOut)
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	period, err := b.period()
	if err != nil {
		return nil, err
	}
	total, err := dombooking.NewMoney(b.TotalCents)
	if err != nil {
		return nil, err
	}
	return dombooking.NewHotelBooking(dombooking.NewHotelBookingParams{
		UserID:          b.UserID,
		HotelID:         b.HotelID,
		RoomID:          b.RoomID,
		RoomNumber:      b.RoomNumber,
		Period:          period,
		Adults:          b.Adults,
		Children:        b.Children,
		Guests:          b.Guests,
		TotalAmount:     total,
		Currency:        b.Currency,
		SpecialRequests: b.SpecialRequests,
		Now:             b.CreatedAt,
	})
}

func (b *BookingBuilder) BuildPackageDomain() (*dombooking.Booking, error) {
	period, err := b.period()
	if err != nil {
		return nil, err
	}
	total, err := dombooking.NewMoney(b.TotalCents)
	if err != nil {
		return nil, err
	}
	return dombooking.NewPackageBooking(dombooking.NewPackageBookingParams{
		UserID:          b.UserID,
		PackageID:       b.PackageID,
		Period:          period,
		Adults:          b.Adults,
		Children:        b.Children,
		Guests:          b.Guests,
		TotalAmount:     total,
		Currency:        b.Currency,
		SpecialRequests: b.SpecialRequests,
		Now:             b.CreatedAt,
	})
}
