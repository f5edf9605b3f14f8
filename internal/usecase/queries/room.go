package queries

import (
	"context"
	"time"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrHotelNotFound = errs.New("hotel not found")
	ErrRoomNotFound  = errs.New("room not found")
	ErrInvalidStay   = errs.New("invalid stay period")
)

type HotelQueries interface {
	List(ctx context.Context) ([]*HotelView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*HotelView, error)
}

type HotelViewRepo interface {
	FindAll(ctx context.Context) ([]*HotelView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*HotelView, error)
}

type hotelQueriesImpl struct {
	repo HotelViewRepo
}

func NewHotelQueries(repo HotelViewRepo) HotelQueries {
	return &hotelQueriesImpl{repo: repo}
}

func (q *hotelQueriesImpl) List(ctx context.Context) ([]*HotelView, error) {
	views, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (q *hotelQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*HotelView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

type RoomQueries interface {
	ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]*RoomView, error)
	// AvailableNumbers lists the physical room numbers free for the whole
	// stay, ascending.
	AvailableNumbers(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]int, error)
}

type RoomViewRepo interface {
	FindByHotelID(ctx context.Context, hotelID uuid.UUID) ([]*RoomView, error)
	FindDomainByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	LiveAssignments(ctx context.Context, roomID uuid.UUID, period room.StayPeriod) ([]room.Assignment, error)
}

type roomQueriesImpl struct {
	repo RoomViewRepo
}

func NewRoomQueries(repo RoomViewRepo) RoomQueries {
	return &roomQueriesImpl{repo: repo}
}

func (q *roomQueriesImpl) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]*RoomView, error) {
	views, err := q.repo.FindByHotelID(ctx, hotelID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (q *roomQueriesImpl) AvailableNumbers(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]int, error) {
	period, err := room.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStay)
	}

	rm, err := q.repo.FindDomainByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	assignments, err := q.repo.LiveAssignments(ctx, roomID, period)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return rm.AvailableNumbers(assignments, period), nil
}
