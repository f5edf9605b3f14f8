package request

import (
	"strings"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type GuestRequest struct {
	FullName string `json:"fullName" binding:"required"`
	// "required" would reject age 0 (gin treats the zero value as missing);
	// infants are valid guests, so only the lower bound is enforced here.
	Age int `json:"age" binding:"min=0"`
}

type CreateBookingRequest struct {
	BookingType     string         `json:"bookingType" binding:"required,oneof=Hotel Package"`
	HotelID         *uuid.UUID     `json:"hotelId,omitempty"`
	RoomID          *uuid.UUID     `json:"roomId,omitempty"`
	PackageID       *uuid.UUID     `json:"packageId,omitempty"`
	CheckIn         string         `json:"checkIn" binding:"required"`
	CheckOut        string         `json:"checkOut" binding:"required"`
	Adults          int            `json:"adults" binding:"required,min=1"`
	Children        int            `json:"children" binding:"min=0"`
	Guests          []GuestRequest `json:"guests" binding:"required,min=1,dive"`
	TotalCents      *int64         `json:"totalCents,omitempty"`
	SpecialRequests *string        `json:"specialRequests,omitempty"`
}

func (r CreateBookingRequest) ToParams(userID uuid.UUID) (commands.ReserveRoomParams, error) {
	bookingType, _ := booking.ParseType(r.BookingType)

	checkIn, err := time.Parse(time.DateOnly, r.CheckIn)
	if err != nil {
		return commands.ReserveRoomParams{}, err
	}
	checkOut, err := time.Parse(time.DateOnly, r.CheckOut)
	if err != nil {
		return commands.ReserveRoomParams{}, err
	}
	period, err := room.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return commands.ReserveRoomParams{}, err
	}

	guests := make([]booking.Guest, 0, len(r.Guests))
	for _, g := range r.Guests {
		guest, err := booking.NewGuest(strings.TrimSpace(g.FullName), g.Age)
		if err != nil {
			return commands.ReserveRoomParams{}, err
		}
		guests = append(guests, guest)
	}

	params := commands.ReserveRoomParams{
		UserID:          userID,
		BookingType:     bookingType,
		Period:          period,
		Adults:          r.Adults,
		Children:        r.Children,
		Guests:          guests,
		TotalCents:      r.TotalCents,
		SpecialRequests: r.SpecialRequests,
	}
	if r.HotelID != nil {
		params.HotelID = *r.HotelID
	}
	if r.RoomID != nil {
		params.RoomID = *r.RoomID
	}
	if r.PackageID != nil {
		params.PackageID = *r.PackageID
	}
	return params, nil
}

type UpdateBookingStatusRequest struct {
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=Pending Confirmed Cancelled"`
	PaymentStatus *string `json:"paymentStatus,omitempty" binding:"omitempty,oneof=Pending Completed Failed Refunded"`
}

func (r UpdateBookingStatusRequest) ToParams(bookingID uuid.UUID) commands.UpdateStatusParams {
	params := commands.UpdateStatusParams{BookingID: bookingID}
	if r.Status != nil {
		if s, ok := booking.ParseStatus(*r.Status); ok {
			params.Status = &s
		}
	}
	if r.PaymentStatus != nil {
		if s, ok := booking.ParsePaymentStatus(*r.PaymentStatus); ok {
			params.PaymentStatus = &s
		}
	}
	return params
}
