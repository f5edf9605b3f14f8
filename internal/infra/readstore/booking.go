package readstore

import (
	"context"
	"fmt"
	"strings"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/infra/repository/converter"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT
			b.id, b.user_id, b.booking_type, b.hotel_id, h.name, b.room_id, r.type_name,
			b.package_id, b.room_numbers, b.check_in, b.check_out, b.adults, b.children,
			b.guests, b.total_cents, b.currency, b.payment_status, b.status, b.special_requests,
			b.order_id, b.payment_id, b.payment_method, b.payment_date, b.error_description,
			b.refunds, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN hotels h ON h.id = b.hotel_id
		LEFT JOIN rooms r ON r.id = b.room_id
		WHERE b.id = $1`

	var (
		v          queries.BookingView
		numbers    []int32
		guestsRaw  []byte
		refundsRaw []byte
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.UserID, &v.BookingType, &v.HotelID, &v.HotelName, &v.RoomID, &v.RoomType,
		&v.PackageID, &numbers, &v.CheckIn, &v.CheckOut, &v.Adults, &v.Children,
		&guestsRaw, &v.TotalCents, &v.Currency, &v.PaymentStatus, &v.Status, &v.SpecialRequests,
		&v.Payment.OrderID, &v.Payment.PaymentID, &v.Payment.Method, &v.Payment.PaymentDate,
		&v.Payment.ErrorDescription, &refundsRaw, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, wrapReadErr("failed to find booking view", err)
	}

	for _, n := range numbers {
		v.RoomNumbers = append(v.RoomNumbers, int(n))
	}

	guests, err := converter.GuestsFromJSON(guestsRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode guests", err)
	}
	for _, g := range guests {
		v.Guests = append(v.Guests, queries.GuestView{FullName: g.FullName, Age: g.Age})
	}

	refunds, err := converter.RefundsFromJSON(refundsRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode refunds", err)
	}
	for _, r := range refunds {
		v.Payment.Refunds = append(v.Payment.Refunds, queries.RefundView(r))
	}

	return &v, nil
}

// Search builds the filter predicate dynamically; every value goes through a
// placeholder, never into the SQL text.
func (s *BookingReadStore) Search(ctx context.Context, filter queries.BookingFilter, sort queries.BookingSort, limit, offset int32) ([]*queries.BookingListItem, int64, error) {
	where, args := buildBookingFilter(filter)

	countQuery := `
		SELECT count(*)
		FROM bookings b
		LEFT JOIN hotels h ON h.id = b.hotel_id` + where

	var total int64
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, wrapReadErr("failed to count bookings", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT b.id, b.booking_type, h.name, b.room_numbers, b.check_in, b.check_out,
		       b.total_cents, b.currency, b.payment_status, b.status, b.created_at
		FROM bookings b
		LEFT JOIN hotels h ON h.id = b.hotel_id%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		where, orderClause(sort), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, wrapReadErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item    queries.BookingListItem
			numbers []int32
		)
		err := rows.Scan(&item.ID, &item.BookingType, &item.HotelName, &numbers,
			&item.CheckIn, &item.CheckOut, &item.TotalCents, &item.Currency,
			&item.PaymentStatus, &item.Status, &item.CreatedAt)
		if err != nil {
			return nil, 0, wrapReadErr("failed to scan booking row", err)
		}
		for _, n := range numbers {
			item.RoomNumbers = append(item.RoomNumbers, int(n))
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapReadErr("failed to read bookings", err)
	}
	return items, total, nil
}

func buildBookingFilter(filter queries.BookingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID != nil {
		add("b.user_id = $%d", *filter.UserID)
	}
	if filter.Status != nil {
		add("b.status = $%d", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		add("b.payment_status = $%d", *filter.PaymentStatus)
	}
	if filter.CheckInFrom != nil {
		add("b.check_in >= $%d", *filter.CheckInFrom)
	}
	if filter.CheckInTo != nil {
		add("b.check_in <= $%d", *filter.CheckInTo)
	}
	if filter.MinTotalCents != nil {
		add("b.total_cents >= $%d", *filter.MinTotalCents)
	}
	if filter.MaxTotalCents != nil {
		add("b.total_cents <= $%d", *filter.MaxTotalCents)
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(h.name ILIKE $%d OR EXISTS (
				SELECT 1 FROM jsonb_array_elements(b.guests) g
				WHERE g->>'fullName' ILIKE $%d))`, n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(conds, " AND "), args
}

func orderClause(sort queries.BookingSort) string {
	column := "b.created_at"
	switch sort.Field {
	case "check_in":
		column = "b.check_in"
	case "total_cents":
		column = "b.total_cents"
	case "created_at", "":
	default:
	}
	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}
	return column + " " + direction
}
