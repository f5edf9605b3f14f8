package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type HotelResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromHotelView(v *queries.HotelView) *HotelResponse {
	var resp HotelResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromHotelViews(views []*queries.HotelView) []*HotelResponse {
	out := make([]*HotelResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromHotelView(v))
	}
	return out
}
