package commands

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrHotelNotFound           = errs.New("hotel not found")
	ErrRoomNotFound            = errs.New("room not found for this hotel")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNoRoomsAvailable        = errs.New("no rooms available for the requested dates")
	ErrBookingValidation       = errs.New("booking validation failed")
	ErrNotBookingOwner         = errs.New("booking belongs to another user")
	ErrBookingAlreadyCancelled = errs.New("booking already cancelled")
	ErrDatabaseOperationFailed = errs.New("database operation failed")

	// errClaimLost is internal to the reserve loop: another request committed
	// an overlapping claim between our read and our write.
	errClaimLost = errs.New("room claim lost to concurrent reservation")
)

type ReserveRoomParams struct {
	UserID          uuid.UUID
	BookingType     booking.Type
	HotelID         uuid.UUID
	RoomID          uuid.UUID
	PackageID       uuid.UUID
	Period          room.StayPeriod
	Adults          int
	Children        int
	Guests          []booking.Guest
	TotalCents      *int64
	SpecialRequests *string
}

type UpdateStatusParams struct {
	BookingID     uuid.UUID
	Status        *booking.Status
	PaymentStatus *booking.PaymentStatus
}

type BookingCommands interface {
	ReserveRoom(ctx context.Context, params ReserveRoomParams) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (*booking.Booking, error)
	// ReleaseExpiredHolds frees room claims of bookings that stayed
	// Pending/Pending past the hold TTL. Returns how many were released.
	ReleaseExpiredHolds(ctx context.Context, now time.Time) (int, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewBookingCommands(uow shared.UnitOfWork, clock clock.Clock, cfg config.Config) BookingCommands {
	return &bookingCommandsImpl{
		uow:   uow,
		clock: clock,
		cfg:   cfg.Booking,
	}
}

// ReserveRoom claims one free room number for the stay and creates the
// booking, both inside a single transaction. The storage layer rejects
// overlapping claims; losing that race re-resolves availability and retries
// up to the configured limit, so callers only ever see success or a
// sold-out conflict, never a partial claim.
func (c *bookingCommandsImpl) ReserveRoom(ctx context.Context, params ReserveRoomParams) (*booking.Booking, error) {
	if params.BookingType == booking.TypePackage {
		return c.reservePackage(ctx, params)
	}

	retries := c.cfg.ReserveRetries
	if retries < 1 {
		retries = 1
	}

	var created *booking.Booking
	for attempt := 0; attempt < retries; attempt++ {
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var txErr error
			created, txErr = c.reserveHotelRoom(ctx, tx, params)
			return txErr
		})
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errClaimLost) {
			return nil, err
		}

		slog.Info("room claim lost, re-resolving availability",
			"room_id", params.RoomID,
			"attempt", attempt+1)
	}

	// Every attempt lost the race; from the caller's view the room type is
	// sold out for these dates.
	return nil, ErrNoRoomsAvailable
}

func (c *bookingCommandsImpl) reserveHotelRoom(ctx context.Context, tx shared.Tx, params ReserveRoomParams) (*booking.Booking, error) {
	rm, err := tx.Rooms().FindByIDForHotel(ctx, params.RoomID, params.HotelID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	assignments, err := tx.Rooms().OverlappingAssignments(ctx, rm.ID(), params.Period)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	roomNumber, ok := rm.LowestAvailable(assignments, params.Period)
	if !ok {
		return nil, ErrNoRoomsAvailable
	}
	// Nothing in the schema ties assignment numbers to the room's set, so
	// re-check membership before the claim is written.
	if !rm.HasRoomNumber(roomNumber) {
		return nil, errs.Mark(room.ErrUnknownRoomNumber, ErrDatabaseOperationFailed)
	}

	assignmentID, err := tx.Rooms().ClaimRoomNumber(ctx, rm.ID(), roomNumber, params.Period)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, errClaimLost)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	h, err := tx.Hotels().FindByID(ctx, params.HotelID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	totalCents := rm.NightlyTotal(params.Period)
	if params.TotalCents != nil {
		totalCents = *params.TotalCents
	}
	total, err := booking.NewMoney(totalCents)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingValidation)
	}

	b, err := booking.NewHotelBooking(booking.NewHotelBookingParams{
		UserID:          params.UserID,
		HotelID:         params.HotelID,
		RoomID:          rm.ID(),
		RoomNumber:      roomNumber,
		Period:          params.Period,
		Adults:          params.Adults,
		Children:        params.Children,
		Guests:          params.Guests,
		TotalAmount:     total,
		Currency:        h.CurrencyOrDefault(),
		SpecialRequests: params.SpecialRequests,
		Now:             c.clock.Now(),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrBookingValidation)
	}

	if err := tx.Bookings().Create(ctx, b); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// The claim was inserted before the booking existed; bind it now so the
	// row never outlives this transaction unowned.
	if err := tx.Rooms().BindAssignment(ctx, assignmentID, b.ID()); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return b, nil
}

func (c *bookingCommandsImpl) reservePackage(ctx context.Context, params ReserveRoomParams) (*booking.Booking, error) {
	totalCents := int64(0)
	if params.TotalCents != nil {
		totalCents = *params.TotalCents
	}
	total, err := booking.NewMoney(totalCents)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingValidation)
	}

	b, err := booking.NewPackageBooking(booking.NewPackageBookingParams{
		UserID:          params.UserID,
		PackageID:       params.PackageID,
		Period:          params.Period,
		Adults:          params.Adults,
		Children:        params.Children,
		Guests:          params.Guests,
		TotalAmount:     total,
		SpecialRequests: params.SpecialRequests,
		Now:             c.clock.Now(),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrBookingValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, b)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) (*booking.Booking, error) {
	var cancelled *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !isAdmin && b.UserID() != requesterID {
			return ErrNotBookingOwner
		}

		if err := b.Cancel(); err != nil {
			return ErrBookingAlreadyCancelled
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		// Cancelled bookings give their room numbers back immediately rather
		// than lingering as stale claims.
		if err := tx.Rooms().ReleaseByBooking(ctx, b.ID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (c *bookingCommandsImpl) UpdateStatus(ctx context.Context, params UpdateStatusParams) (*booking.Booking, error) {
	var updated *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, params.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		wasCancelled := b.IsCancelled()
		b.OverrideStatus(params.Status, params.PaymentStatus)

		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if b.IsCancelled() && !wasCancelled {
			if err := tx.Rooms().ReleaseByBooking(ctx, b.ID()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *bookingCommandsImpl) ReleaseExpiredHolds(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-c.cfg.HoldTTL)
	released := 0

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, err := tx.Bookings().StaleHoldIDs(ctx, cutoff, 100)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		for _, id := range ids {
			b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					continue
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			// Re-check under the lock: a payment may have landed since the
			// id list was read.
			if b.PaymentStatus() != booking.PaymentPending || b.Status() != booking.StatusPending {
				continue
			}

			cancelledStatus := booking.StatusCancelled
			failedPayment := booking.PaymentFailed
			b.OverrideStatus(&cancelledStatus, &failedPayment)

			if err := tx.Bookings().Update(ctx, b); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if err := tx.Rooms().ReleaseByBooking(ctx, b.ID()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			released++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}
