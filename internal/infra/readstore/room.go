package readstore

import (
	"context"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra/db"
	"stayhub/internal/infra/repository"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomReadStore struct {
	db    db.DBTX
	rooms *repository.RoomRepository
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{
		db:    dbtx,
		rooms: repository.NewRoomRepository(dbtx),
	}
}

func (s *RoomReadStore) FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*queries.RoomView, error) {
	const query = `
		SELECT id, hotel_id, type_name, price_cents, max_occupancy, amenities, room_numbers, created_at, updated_at
		FROM rooms
		WHERE hotel_id = $1
		ORDER BY type_name`

	rows, err := s.db.Query(ctx, query, hotelID)
	if err != nil {
		return nil, wrapReadErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		var (
			v         queries.RoomView
			occupancy int32
			numbers   []int32
		)
		err := rows.Scan(&v.ID, &v.HotelID, &v.TypeName, &v.PriceCents, &occupancy,
			&v.Amenities, &numbers, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, wrapReadErr("failed to scan room row", err)
		}
		v.MaxOccupancy = int(occupancy)
		for _, n := range numbers {
			v.RoomNumbers = append(v.RoomNumbers, int(n))
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read rooms", err)
	}
	return views, nil
}

// FindDomainByID and LiveAssignments reuse the write-side repository: the
// availability computation needs the domain entity, not a view.
func (s *RoomReadStore) FindDomainByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	return s.rooms.FindByID(ctx, id)
}

func (s *RoomReadStore) LiveAssignments(ctx context.Context, roomID uuid.UUID, period room.StayPeriod) ([]room.Assignment, error) {
	return s.rooms.OverlappingAssignments(ctx, roomID, period)
}
