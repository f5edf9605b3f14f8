package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const bookingColumns = `
	id, user_id, booking_type, hotel_id, room_id, package_id, room_numbers,
	check_in, check_out, adults, children, guests, total_cents, currency,
	payment_status, status, special_requests,
	order_id, payment_id, payment_method, payment_date, error_description, refunds,
	created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, user_id, booking_type, hotel_id, room_id, package_id, room_numbers,
			check_in, check_out, adults, children, guests, total_cents, currency,
			payment_status, status, special_requests, refunds, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	guests, err := converter.GuestsToJSON(b.Guests())
	if err != nil {
		return infra.WrapRepoErr("failed to encode guests", err)
	}

	numbers := make([]int32, 0, len(b.RoomNumbers()))
	for _, n := range b.RoomNumbers() {
		numbers = append(numbers, int32(n))
	}

	_, err = r.db.Exec(ctx, query,
		b.ID(), b.UserID(), string(b.BookingType()), b.HotelID(), b.RoomID(), b.PackageID(), numbers,
		b.Period().CheckIn(), b.Period().CheckOut(), int32(b.Adults()), int32(b.Children()),
		guests, b.TotalAmount().Cents(), b.Currency(),
		string(b.PaymentStatus()), string(b.Status()), b.SpecialRequests(),
		[]byte("[]"), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return wrapQueryErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, id))
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanBooking(r.db.QueryRow(ctx, query, id))
}

func (r *BookingRepository) FindByOrderIDForUpdate(ctx context.Context, orderID string) (*booking.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE order_id = $1 FOR UPDATE`
	return r.scanBooking(r.db.QueryRow(ctx, query, orderID))
}

func (r *BookingRepository) FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*booking.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE payment_id = $1 FOR UPDATE`
	return r.scanBooking(r.db.QueryRow(ctx, query, paymentID))
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings SET
			payment_status = $2,
			status = $3,
			order_id = $4,
			payment_id = $5,
			payment_method = $6,
			payment_date = $7,
			error_description = $8,
			refunds = $9,
			updated_at = now()
		WHERE id = $1`

	refunds, err := converter.RefundsToJSON(b.Payment().Refunds)
	if err != nil {
		return infra.WrapRepoErr("failed to encode refunds", err)
	}

	p := b.Payment()
	tag, err := r.db.Exec(ctx, query,
		b.ID(), string(b.PaymentStatus()), string(b.Status()),
		p.OrderID, p.PaymentID, p.Method, p.PaymentDate, p.ErrorDescription, refunds,
	)
	if err != nil {
		return wrapQueryErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) StaleHoldIDs(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM bookings
		WHERE status = 'Pending'
		  AND payment_status = 'Pending'
		  AND created_at < $1
		ORDER BY created_at
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, cutoff, int32(limit))
	if err != nil {
		return nil, wrapQueryErr("failed to list stale holds", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, wrapQueryErr("failed to scan stale hold id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read stale holds", err)
	}
	return ids, nil
}

func (r *BookingRepository) scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, userID        uuid.UUID
		bookingType       string
		hotelID, roomID   *uuid.UUID
		packageID         *uuid.UUID
		numbers           []int32
		checkIn, checkOut time.Time
		adults, children  int32
		guestsRaw         []byte
		totalCents        int64
		currency          string
		paymentStatus     string
		status            string
		specialRequests   *string
		orderID           *string
		paymentID         *string
		paymentMethod     *string
		paymentDate       *time.Time
		errorDescription  *string
		refundsRaw        []byte
		createdAt         time.Time
		updatedAt         time.Time
	)

	err := row.Scan(
		&id, &userID, &bookingType, &hotelID, &roomID, &packageID, &numbers,
		&checkIn, &checkOut, &adults, &children, &guestsRaw, &totalCents, &currency,
		&paymentStatus, &status, &specialRequests,
		&orderID, &paymentID, &paymentMethod, &paymentDate, &errorDescription, &refundsRaw,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find booking", err)
	}

	guests, err := converter.GuestsFromJSON(guestsRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode guests", err)
	}
	refunds, err := converter.RefundsFromJSON(refundsRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode refunds", err)
	}

	period, err := room.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt stay period", err)
	}

	total, err := booking.NewMoney(totalCents)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt total amount", err)
	}

	roomNumbers := make([]int, 0, len(numbers))
	for _, n := range numbers {
		roomNumbers = append(roomNumbers, int(n))
	}

	return booking.Reconstruct(booking.ReconstructParams{
		ID:              id,
		UserID:          userID,
		BookingType:     booking.Type(bookingType),
		HotelID:         hotelID,
		RoomID:          roomID,
		PackageID:       packageID,
		RoomNumbers:     roomNumbers,
		Period:          period,
		Adults:          int(adults),
		Children:        int(children),
		Guests:          guests,
		TotalAmount:     total,
		Currency:        currency,
		PaymentStatus:   booking.PaymentStatus(paymentStatus),
		Status:          booking.Status(status),
		SpecialRequests: specialRequests,
		Payment: booking.PaymentDetails{
			OrderID:          orderID,
			PaymentID:        paymentID,
			Method:           paymentMethod,
			PaymentDate:      paymentDate,
			ErrorDescription: errorDescription,
			Refunds:          refunds,
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}), nil
}
