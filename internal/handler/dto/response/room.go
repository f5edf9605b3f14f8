package response

import (
	"time"

	"stayhub/internal/domain/room"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID           uuid.UUID `json:"id"`
	HotelID      uuid.UUID `json:"hotelId"`
	TypeName     string    `json:"typeName"`
	PriceCents   int64     `json:"priceCents"`
	MaxOccupancy int       `json:"maxOccupancy"`
	Amenities    []string  `json:"amenities"`
	RoomNumbers  []int     `json:"roomNumbers"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type AvailabilityResponse struct {
	RoomID           uuid.UUID `json:"roomId"`
	CheckIn          string    `json:"checkIn"`
	CheckOut         string    `json:"checkOut"`
	AvailableNumbers []int     `json:"availableNumbers"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromRoomView(v))
	}
	return out
}

func FromRoom(rm *room.Room) *RoomResponse {
	return &RoomResponse{
		ID:           rm.ID(),
		HotelID:      rm.HotelID(),
		TypeName:     rm.TypeName(),
		PriceCents:   rm.PriceCents(),
		MaxOccupancy: rm.MaxOccupancy(),
		Amenities:    rm.Amenities(),
		RoomNumbers:  rm.RoomNumbers(),
		CreatedAt:    rm.CreatedAt(),
		UpdatedAt:    rm.UpdatedAt(),
	}
}
