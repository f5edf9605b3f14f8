package repository

import (
	"context"

	"stayhub/internal/domain/hotel"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type HotelRepository struct {
	db db.DBTX
}

func NewHotelRepository(dbtx db.DBTX) *HotelRepository {
	return &HotelRepository{db: dbtx}
}

func (r *HotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*hotel.Hotel, error) {
	const query = `
		SELECT id, name, city, currency, created_at, updated_at
		FROM hotels
		WHERE id = $1`

	var h hotel.Hotel
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.Name, &h.City, &h.Currency, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find hotel", err)
	}
	return &h, nil
}
