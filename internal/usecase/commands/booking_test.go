//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/hotel"
	"stayhub/internal/domain/room"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/ptr"
	"stayhub/internal/usecase/commands"
	"stayhub/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	cmds    commands.BookingCommands
	uow     *fake.UnitOfWork
	clock   *clock.MockClock
	hotelID uuid.UUID
	roomID  uuid.UUID
}

func newBookingFixture(t *testing.T, roomNumbers []int) *bookingFixture {
	t.Helper()

	uow := fake.NewUnitOfWork()
	mockClock := clock.NewMockClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	h := &hotel.Hotel{ID: uuid.New(), Name: "Seaside Palace", City: "Goa", Currency: "INR"}
	uow.TxStub.HotelRepo.Items[h.ID] = h

	rm, err := room.NewRoom(h.ID, "Deluxe", 250000, 3, []string{"wifi"}, roomNumbers)
	require.NoError(t, err)
	uow.TxStub.RoomRepo.Items[rm.ID()] = rm

	return &bookingFixture{
		cmds:    commands.NewBookingCommands(uow, mockClock, config.NewTestConfig()),
		uow:     uow,
		clock:   mockClock,
		hotelID: h.ID,
		roomID:  rm.ID(),
	}
}

func (f *bookingFixture) reserveParams(t *testing.T, checkIn, checkOut time.Time) commands.ReserveRoomParams {
	t.Helper()
	period, err := room.NewStayPeriod(checkIn, checkOut)
	require.NoError(t, err)
	guest, err := booking.NewGuest("Asha Rao", 34)
	require.NoError(t, err)
	return commands.ReserveRoomParams{
		UserID:      uuid.New(),
		BookingType: booking.TypeHotel,
		HotelID:     f.hotelID,
		RoomID:      f.roomID,
		Period:      period,
		Adults:      1,
		Guests:      []booking.Guest{guest},
	}
}

var (
	june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	june3 = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	june5 = time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
)

func TestReserveRoom(t *testing.T) {
	t.Run("assigns the lowest free room number", func(t *testing.T) {
		f := newBookingFixture(t, []int{101, 102})

		first, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)
		assert.Equal(t, []int{101}, first.RoomNumbers())

		second, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)
		assert.Equal(t, []int{102}, second.RoomNumbers())

		_, err = f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		assert.ErrorIs(t, err, commands.ErrNoRoomsAvailable)
	})

	t.Run("back to back stays share a room number", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		first, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)
		second, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june3, june5))
		require.NoError(t, err)

		assert.Equal(t, first.RoomNumbers(), second.RoomNumbers())
	})

	t.Run("prices nights from the room rate", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		b, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)
		assert.Equal(t, int64(500000), b.TotalAmount().Cents())
		assert.Equal(t, "INR", b.Currency())
	})

	t.Run("caller supplied total wins over the computed one", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		params := f.reserveParams(t, june1, june3)
		params.TotalCents = ptr.To(int64(480000))
		b, err := f.cmds.ReserveRoom(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, int64(480000), b.TotalAmount().Cents())
	})

	t.Run("new booking starts as a pending hold", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		b, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
	})

	t.Run("lost claim race falls through to the next number", func(t *testing.T) {
		f := newBookingFixture(t, []int{101, 102})

		// A competitor grabs 101 between availability resolution and our
		// claim; the retry re-resolves and lands on 102.
		period, err := room.NewStayPeriod(june1, june3)
		require.NoError(t, err)
		stolen := false
		f.uow.BeforeClaim = func() {
			if stolen {
				return
			}
			stolen = true
			_, err := f.uow.TxStub.RoomRepo.ClaimRoomNumber(context.Background(), f.roomID, 101, period)
			require.NoError(t, err)
		}

		b, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)
		assert.Equal(t, []int{102}, b.RoomNumbers())
	})

	t.Run("losing the race on the last room means no availability", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		period, err := room.NewStayPeriod(june1, june3)
		require.NoError(t, err)
		f.uow.BeforeClaim = func() {
			_, _ = f.uow.TxStub.RoomRepo.ClaimRoomNumber(context.Background(), f.roomID, 101, period)
		}

		_, err = f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		assert.ErrorIs(t, err, commands.ErrNoRoomsAvailable)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})
		params := f.reserveParams(t, june1, june3)
		params.RoomID = uuid.New()
		_, err := f.cmds.ReserveRoom(context.Background(), params)
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("room from another hotel", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})
		params := f.reserveParams(t, june1, june3)
		params.HotelID = uuid.New()
		_, err := f.cmds.ReserveRoom(context.Background(), params)
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("owner cancels and the room number frees up", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		params := f.reserveParams(t, june1, june3)
		b, err := f.cmds.ReserveRoom(context.Background(), params)
		require.NoError(t, err)

		cancelled, err := f.cmds.CancelBooking(context.Background(), b.ID(), params.UserID, false)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
		assert.Empty(t, f.uow.TxStub.RoomRepo.LiveClaims(f.roomID))

		// The freed number is immediately reusable.
		again, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)
		assert.Equal(t, []int{101}, again.RoomNumbers())
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		b, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)

		_, err = f.cmds.CancelBooking(context.Background(), b.ID(), uuid.New(), false)
		assert.ErrorIs(t, err, commands.ErrNotBookingOwner)
		assert.Equal(t, []int{101}, f.uow.TxStub.RoomRepo.LiveClaims(f.roomID))
	})

	t.Run("admin may cancel anyone's booking", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		b, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)

		cancelled, err := f.cmds.CancelBooking(context.Background(), b.ID(), uuid.New(), true)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
	})

	t.Run("double cancel", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		params := f.reserveParams(t, june1, june3)
		b, err := f.cmds.ReserveRoom(context.Background(), params)
		require.NoError(t, err)

		_, err = f.cmds.CancelBooking(context.Background(), b.ID(), params.UserID, false)
		require.NoError(t, err)
		_, err = f.cmds.CancelBooking(context.Background(), b.ID(), params.UserID, false)
		assert.ErrorIs(t, err, commands.ErrBookingAlreadyCancelled)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("admin override to cancelled releases the claim", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		b, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)

		updated, err := f.cmds.UpdateStatus(context.Background(), commands.UpdateStatusParams{
			BookingID: b.ID(),
			Status:    ptr.To(booking.StatusCancelled),
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, updated.Status())
		assert.Empty(t, f.uow.TxStub.RoomRepo.LiveClaims(f.roomID))
	})

	t.Run("payment status override sticks", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})

		b, err := f.cmds.ReserveRoom(context.Background(), f.reserveParams(t, june1, june3))
		require.NoError(t, err)

		updated, err := f.cmds.UpdateStatus(context.Background(), commands.UpdateStatusParams{
			BookingID:     b.ID(),
			PaymentStatus: ptr.To(booking.PaymentCompleted),
		})
		require.NoError(t, err)
		assert.Equal(t, booking.PaymentCompleted, updated.PaymentStatus())
		assert.Equal(t, []int{101}, f.uow.TxStub.RoomRepo.LiveClaims(f.roomID))
	})
}

func TestReleaseExpiredHolds(t *testing.T) {
	t.Run("stale pending holds are swept, fresh and paid ones kept", func(t *testing.T) {
		f := newBookingFixture(t, []int{101, 102, 103})
		ctx := context.Background()

		stale, err := f.cmds.ReserveRoom(ctx, f.reserveParams(t, june1, june3))
		require.NoError(t, err)

		paid, err := f.cmds.ReserveRoom(ctx, f.reserveParams(t, june1, june3))
		require.NoError(t, err)
		f.uow.TxStub.BookingRepo.Items[paid.ID()].CapturePayment("pay_1", "card", f.clock.Now())

		f.clock.Add(45 * time.Minute)
		fresh, err := f.cmds.ReserveRoom(ctx, f.reserveParams(t, june1, june3))
		require.NoError(t, err)

		released, err := f.cmds.ReleaseExpiredHolds(ctx, f.clock.Now())
		require.NoError(t, err)
		assert.Equal(t, 1, released)

		staleStored := f.uow.TxStub.BookingRepo.Items[stale.ID()]
		assert.Equal(t, booking.StatusCancelled, staleStored.Status())
		assert.Equal(t, booking.PaymentFailed, staleStored.PaymentStatus())

		assert.Equal(t, booking.StatusConfirmed, f.uow.TxStub.BookingRepo.Items[paid.ID()].Status())
		assert.Equal(t, booking.StatusPending, f.uow.TxStub.BookingRepo.Items[fresh.ID()].Status())
		assert.ElementsMatch(t, []int{102, 103}, f.uow.TxStub.RoomRepo.LiveClaims(f.roomID))
	})

	t.Run("nothing to sweep", func(t *testing.T) {
		f := newBookingFixture(t, []int{101})
		released, err := f.cmds.ReleaseExpiredHolds(context.Background(), f.clock.Now())
		require.NoError(t, err)
		assert.Zero(t, released)
	})
}
