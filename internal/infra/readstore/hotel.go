package readstore

import (
	"context"

	"stayhub/internal/infra/db"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type HotelReadStore struct {
	db db.DBTX
}

func NewHotelReadStore(dbtx db.DBTX) *HotelReadStore {
	return &HotelReadStore{db: dbtx}
}

func (s *HotelReadStore) FindAll(ctx context.Context) ([]*queries.HotelView, error) {
	const query = `
		SELECT id, name, city, currency, created_at, updated_at
		FROM hotels
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, wrapReadErr("failed to list hotels", err)
	}
	defer rows.Close()

	var views []*queries.HotelView
	for rows.Next() {
		var v queries.HotelView
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.Currency, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, wrapReadErr("failed to scan hotel row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read hotels", err)
	}
	return views, nil
}

func (s *HotelReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.HotelView, error) {
	const query = `
		SELECT id, name, city, currency, created_at, updated_at
		FROM hotels
		WHERE id = $1`

	var v queries.HotelView
	err := s.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.City, &v.Currency, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, wrapReadErr("failed to find hotel view", err)
	}
	return &v, nil
}
