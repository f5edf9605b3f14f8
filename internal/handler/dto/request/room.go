package request

import (
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	HotelID      uuid.UUID `json:"hotelId" binding:"required"`
	TypeName     string    `json:"typeName" binding:"required"`
	PriceCents   int64     `json:"priceCents" binding:"required,min=1"`
	MaxOccupancy int       `json:"maxOccupancy" binding:"required,min=1"`
	Amenities    []string  `json:"amenities"`
	RoomNumbers  []int     `json:"roomNumbers" binding:"required,min=1"`
}

func (r CreateRoomRequest) ToParams() commands.CreateRoomParams {
	return commands.CreateRoomParams{
		HotelID:      r.HotelID,
		TypeName:     r.TypeName,
		PriceCents:   r.PriceCents,
		MaxOccupancy: r.MaxOccupancy,
		Amenities:    r.Amenities,
		RoomNumbers:  r.RoomNumbers,
	}
}
