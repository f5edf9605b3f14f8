package commands

import (
	"context"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrRoomValidation = errs.New("invalid room definition")

type CreateRoomParams struct {
	HotelID      uuid.UUID
	TypeName     string
	PriceCents   int64
	MaxOccupancy int
	Amenities    []string
	RoomNumbers  []int
}

type RoomCommands interface {
	CreateRoom(ctx context.Context, params CreateRoomParams) (*room.Room, error)
}

type roomCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewRoomCommands(uow shared.UnitOfWork) RoomCommands {
	return &roomCommandsImpl{uow: uow}
}

func (c *roomCommandsImpl) CreateRoom(ctx context.Context, params CreateRoomParams) (*room.Room, error) {
	rm, err := room.NewRoom(params.HotelID, params.TypeName, params.PriceCents, params.MaxOccupancy, params.Amenities, params.RoomNumbers)
	if err != nil {
		return nil, errs.Mark(err, ErrRoomValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Hotels().FindByID(ctx, params.HotelID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrHotelNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Rooms().Create(ctx, rm); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rm, nil
}
