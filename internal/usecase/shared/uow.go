package shared

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/hotel"
	"stayhub/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Hotels() HotelRepository
	Rooms() RoomRepository
	Bookings() BookingRepository
}

type HotelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*hotel.Hotel, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	// FindByIDForHotel fails with KindNotFound when the room exists but
	// belongs to a different hotel.
	FindByIDForHotel(ctx context.Context, roomID, hotelID uuid.UUID) (*room.Room, error)
	// OverlappingAssignments returns the live (non-released) claims that
	// overlap the period.
	OverlappingAssignments(ctx context.Context, roomID uuid.UUID, period room.StayPeriod) ([]room.Assignment, error)
	// ClaimRoomNumber inserts an assignment row. The storage layer enforces
	// the no-overlap invariant; a lost race surfaces as KindConflict.
	ClaimRoomNumber(ctx context.Context, roomID uuid.UUID, roomNumber int, period room.StayPeriod) (uuid.UUID, error)
	BindAssignment(ctx context.Context, assignmentID, bookingID uuid.UUID) error
	// ReleaseByBooking frees every claim held by the booking.
	ReleaseByBooking(ctx context.Context, bookingID uuid.UUID) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// ForUpdate variants take a row lock so concurrent webhook deliveries for
	// the same booking serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByOrderIDForUpdate(ctx context.Context, orderID string) (*booking.Booking, error)
	FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*booking.Booking, error)
	// Update persists status, payment status and payment details.
	Update(ctx context.Context, b *booking.Booking) error
	// StaleHoldIDs lists Pending/Pending bookings created before the cutoff
	// whose room claims are still live.
	StaleHoldIDs(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
}
