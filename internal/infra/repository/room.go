package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(dbtx db.DBTX) *RoomRepository {
	return &RoomRepository{db: dbtx}
}

const roomColumns = `id, hotel_id, type_name, price_cents, max_occupancy, amenities, room_numbers, status, created_at, updated_at`

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	const query = `
		INSERT INTO rooms (id, hotel_id, type_name, price_cents, max_occupancy, amenities, room_numbers, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	numbers := make([]int32, 0, len(rm.RoomNumbers()))
	for _, n := range rm.RoomNumbers() {
		numbers = append(numbers, int32(n))
	}

	_, err := r.db.Exec(ctx, query,
		rm.ID(), rm.HotelID(), rm.TypeName(), rm.PriceCents(),
		int32(rm.MaxOccupancy()), rm.Amenities(), numbers, string(rm.Status()),
	)
	if err != nil {
		return wrapQueryErr("failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	return r.scanRoom(r.db.QueryRow(ctx, query, id))
}

func (r *RoomRepository) FindByIDForHotel(ctx context.Context, roomID, hotelID uuid.UUID) (*room.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 AND hotel_id = $2`
	return r.scanRoom(r.db.QueryRow(ctx, query, roomID, hotelID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *RoomRepository) scanRoom(row rowScanner) (*room.Room, error) {
	var (
		id, hotelID  uuid.UUID
		typeName     string
		priceCents   int64
		maxOccupancy int32
		amenities    []string
		numbers      []int32
		status       string
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&id, &hotelID, &typeName, &priceCents, &maxOccupancy,
		&amenities, &numbers, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, wrapQueryErr("failed to find room", err)
	}

	roomNumbers := make([]int, 0, len(numbers))
	for _, n := range numbers {
		roomNumbers = append(roomNumbers, int(n))
	}

	return room.ReconstructRoom(
		id, hotelID, typeName, priceCents, int(maxOccupancy),
		amenities, room.Status(status), roomNumbers,
		createdAt, updatedAt,
	), nil
}

func (r *RoomRepository) OverlappingAssignments(ctx context.Context, roomID uuid.UUID, period room.StayPeriod) ([]room.Assignment, error) {
	const query = `
		SELECT id, room_number, lower(stay), upper(stay), booking_id, released
		FROM room_assignments
		WHERE room_id = $1
		  AND NOT released
		  AND stay && $2::daterange
		ORDER BY room_number`

	rows, err := r.db.Query(ctx, query, roomID, period.ToDaterange())
	if err != nil {
		return nil, wrapQueryErr("failed to list room assignments", err)
	}
	defer rows.Close()

	var assignments []room.Assignment
	for rows.Next() {
		var (
			a          room.Assignment
			roomNumber int32
			from, to   time.Time
		)
		if err := rows.Scan(&a.ID, &roomNumber, &from, &to, &a.BookingID, &a.Released); err != nil {
			return nil, wrapQueryErr("failed to scan room assignment", err)
		}
		a.RoomNumber = int(roomNumber)
		p, err := room.NewStayPeriod(from, to)
		if err != nil {
			return nil, wrapQueryErr("corrupt stay range", err)
		}
		a.Period = p
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read room assignments", err)
	}
	return assignments, nil
}

func (r *RoomRepository) ClaimRoomNumber(ctx context.Context, roomID uuid.UUID, roomNumber int, period room.StayPeriod) (uuid.UUID, error) {
	const query = `
		INSERT INTO room_assignments (room_id, room_number, stay)
		VALUES ($1, $2, $3::daterange)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, roomID, int32(roomNumber), period.ToDaterange()).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapQueryErr("failed to claim room number", err)
	}
	return id, nil
}

func (r *RoomRepository) BindAssignment(ctx context.Context, assignmentID, bookingID uuid.UUID) error {
	const query = `UPDATE room_assignments SET booking_id = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, assignmentID, bookingID)
	if err != nil {
		return wrapQueryErr("failed to bind room assignment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room assignment vanished", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) ReleaseByBooking(ctx context.Context, bookingID uuid.UUID) error {
	const query = `UPDATE room_assignments SET released = true WHERE booking_id = $1 AND NOT released`

	if _, err := r.db.Exec(ctx, query, bookingID); err != nil {
		return wrapQueryErr("failed to release room assignments", err)
	}
	return nil
}
