//go:build unit || e2e

// Package fake provides in-memory implementations of the persistence and
// gateway ports for usecase-level unit tests.
package fake

import (
	"context"
	"sort"
	"sync"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/hotel"
	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	TxStub *Tx
	// BeforeClaim runs just before each ClaimRoomNumber call; tests use it to
	// inject a competing claim mid-transaction.
	BeforeClaim func()
}

func NewUnitOfWork() *UnitOfWork {
	u := &UnitOfWork{
		TxStub: &Tx{
			HotelRepo:   &HotelRepo{Items: map[uuid.UUID]*hotel.Hotel{}},
			RoomRepo:    &RoomRepo{Items: map[uuid.UUID]*room.Room{}},
			BookingRepo: &BookingRepo{Items: map[uuid.UUID]*booking.Booking{}},
		},
	}
	u.TxStub.RoomRepo.beforeClaim = func() {
		if u.BeforeClaim != nil {
			u.BeforeClaim()
		}
	}
	return u
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.TxStub)
}

type Tx struct {
	HotelRepo   *HotelRepo
	RoomRepo    *RoomRepo
	BookingRepo *BookingRepo
}

func (t *Tx) Hotels() shared.HotelRepository     { return t.HotelRepo }
func (t *Tx) Rooms() shared.RoomRepository       { return t.RoomRepo }
func (t *Tx) Bookings() shared.BookingRepository { return t.BookingRepo }

type HotelRepo struct {
	Items map[uuid.UUID]*hotel.Hotel
}

func (r *HotelRepo) FindByID(_ context.Context, id uuid.UUID) (*hotel.Hotel, error) {
	h, ok := r.Items[id]
	if !ok {
		return nil, infra.WrapRepoErr("hotel not found", nil, infra.KindNotFound)
	}
	return h, nil
}

type assignmentRow struct {
	id         uuid.UUID
	roomID     uuid.UUID
	roomNumber int
	period     room.StayPeriod
	bookingID  *uuid.UUID
	released   bool
}

type RoomRepo struct {
	mu          sync.Mutex
	Items       map[uuid.UUID]*room.Room
	assignments []assignmentRow
	beforeClaim func()
	inHook      bool
}

func (r *RoomRepo) Create(_ context.Context, rm *room.Room) error {
	r.Items[rm.ID()] = rm
	return nil
}

func (r *RoomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := r.Items[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (r *RoomRepo) FindByIDForHotel(ctx context.Context, roomID, hotelID uuid.UUID) (*room.Room, error) {
	rm, err := r.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if rm.HotelID() != hotelID {
		return nil, infra.WrapRepoErr("room not found for hotel", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (r *RoomRepo) OverlappingAssignments(_ context.Context, roomID uuid.UUID, period room.StayPeriod) ([]room.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []room.Assignment
	for _, a := range r.assignments {
		if a.roomID != roomID || a.released || !a.period.Overlaps(period) {
			continue
		}
		out = append(out, room.Assignment{
			ID:         a.id,
			RoomNumber: a.roomNumber,
			Period:     a.period,
			BookingID:  a.bookingID,
			Released:   a.released,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (r *RoomRepo) ClaimRoomNumber(_ context.Context, roomID uuid.UUID, roomNumber int, period room.StayPeriod) (uuid.UUID, error) {
	// The hook itself may claim; don't re-enter it.
	if r.beforeClaim != nil && !r.inHook {
		r.inHook = true
		r.beforeClaim()
		r.inHook = false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.assignments {
		if a.roomID == roomID && a.roomNumber == roomNumber && !a.released && a.period.Overlaps(period) {
			return uuid.Nil, infra.WrapRepoErr("room number already claimed", nil, infra.KindConflict)
		}
	}
	id := uuid.New()
	r.assignments = append(r.assignments, assignmentRow{
		id:         id,
		roomID:     roomID,
		roomNumber: roomNumber,
		period:     period,
	})
	return id, nil
}

func (r *RoomRepo) BindAssignment(_ context.Context, assignmentID, bookingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.assignments {
		if r.assignments[i].id == assignmentID {
			r.assignments[i].bookingID = &bookingID
			return nil
		}
	}
	return infra.WrapRepoErr("assignment not found", nil, infra.KindNotFound)
}

func (r *RoomRepo) ReleaseByBooking(_ context.Context, bookingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.assignments {
		if b := r.assignments[i].bookingID; b != nil && *b == bookingID {
			r.assignments[i].released = true
		}
	}
	return nil
}

// LiveClaims reports the non-released room numbers claimed for the room,
// ascending.
func (r *RoomRepo) LiveClaims(roomID uuid.UUID) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var nums []int
	for _, a := range r.assignments {
		if a.roomID == roomID && !a.released {
			nums = append(nums, a.roomNumber)
		}
	}
	sort.Ints(nums)
	return nums
}

type BookingRepo struct {
	Items map[uuid.UUID]*booking.Booking
}

func (r *BookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.Items[b.ID()] = b
	return nil
}

func (r *BookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.Items[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *BookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *BookingRepo) FindByOrderIDForUpdate(_ context.Context, orderID string) (*booking.Booking, error) {
	for _, b := range r.Items {
		if oid := b.Payment().OrderID; oid != nil && *oid == orderID {
			return b, nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found by order", nil, infra.KindNotFound)
}

func (r *BookingRepo) FindByPaymentIDForUpdate(_ context.Context, paymentID string) (*booking.Booking, error) {
	for _, b := range r.Items {
		if pid := b.Payment().PaymentID; pid != nil && *pid == paymentID {
			return b, nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found by payment", nil, infra.KindNotFound)
}

func (r *BookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.Items[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.Items[b.ID()] = b
	return nil
}

func (r *BookingRepo) StaleHoldIDs(_ context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, b := range r.Items {
		if b.Status() == booking.StatusPending &&
			b.PaymentStatus() == booking.PaymentPending &&
			b.CreatedAt().Before(cutoff) {
			ids = append(ids, id)
		}
		if len(ids) >= limit {
			break
		}
	}
	return ids, nil
}

// Gateway is a scripted commands.PaymentGateway.
type Gateway struct {
	CreatedOrders []commands.CreateGatewayOrderParams
	NextOrderID   string
	CreateErr     error
	Orders        map[string]commands.GatewayOrder
	Key           string
}

func NewGateway() *Gateway {
	return &Gateway{
		NextOrderID: "order_fake001",
		Orders:      map[string]commands.GatewayOrder{},
		Key:         "rzp_test_key",
	}
}

func (g *Gateway) CreateOrder(_ context.Context, p commands.CreateGatewayOrderParams) (*commands.GatewayOrder, error) {
	if g.CreateErr != nil {
		return nil, g.CreateErr
	}
	g.CreatedOrders = append(g.CreatedOrders, p)
	order := commands.GatewayOrder{
		ID:       g.NextOrderID,
		Amount:   p.AmountMinor,
		Currency: p.Currency,
		Notes:    p.Notes,
	}
	g.Orders[order.ID] = order
	return &order, nil
}

func (g *Gateway) FetchOrder(_ context.Context, orderID string) (*commands.GatewayOrder, error) {
	order, ok := g.Orders[orderID]
	if !ok {
		return nil, infra.WrapRepoErr("order not found at gateway", nil, infra.KindNotFound)
	}
	return &order, nil
}

func (g *Gateway) KeyID() string { return g.Key }
