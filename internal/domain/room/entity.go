// Package room models a room type: a class of physical rooms in a hotel
// sharing price and occupancy, owning a set of physical room numbers.
// Availability is resolved against the assignments claimed on those numbers.
package room

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoRoomNumbers       = errors.New("at least one room number must be specified")
	ErrNegativePrice       = errors.New("price per night cannot be negative")
	ErrInvalidOccupancy    = errors.New("max occupancy must be at least 1")
	ErrUnknownRoomNumber   = errors.New("room number not part of this room type")
	ErrDuplicateRoomNumber = errors.New("duplicate room number")
)

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
)

type Room struct {
	id           uuid.UUID
	hotelID      uuid.UUID
	typeName     string
	priceCents   int64
	maxOccupancy int
	amenities    []string
	status       Status
	roomNumbers  []int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewRoom(hotelID uuid.UUID, typeName string, priceCents int64, maxOccupancy int, amenities []string, roomNumbers []int) (*Room, error) {
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if maxOccupancy < 1 {
		return nil, ErrInvalidOccupancy
	}
	if len(roomNumbers) == 0 {
		return nil, ErrNoRoomNumbers
	}

	numbers := slices.Clone(roomNumbers)
	slices.Sort(numbers)
	if len(slices.Compact(slices.Clone(numbers))) != len(numbers) {
		return nil, ErrDuplicateRoomNumber
	}

	return &Room{
		id:           uuid.New(),
		hotelID:      hotelID,
		typeName:     typeName,
		priceCents:   priceCents,
		maxOccupancy: maxOccupancy,
		amenities:    slices.Clone(amenities),
		status:       StatusAvailable,
		roomNumbers:  numbers,
	}, nil
}

func ReconstructRoom(
	id, hotelID uuid.UUID,
	typeName string,
	priceCents int64,
	maxOccupancy int,
	amenities []string,
	status Status,
	roomNumbers []int,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:           id,
		hotelID:      hotelID,
		typeName:     typeName,
		priceCents:   priceCents,
		maxOccupancy: maxOccupancy,
		amenities:    amenities,
		status:       status,
		roomNumbers:  roomNumbers,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) HotelID() uuid.UUID   { return r.hotelID }
func (r *Room) TypeName() string     { return r.typeName }
func (r *Room) PriceCents() int64    { return r.priceCents }
func (r *Room) MaxOccupancy() int    { return r.maxOccupancy }
func (r *Room) Amenities() []string  { return r.amenities }
func (r *Room) Status() Status       { return r.status }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

func (r *Room) RoomNumbers() []int {
	return slices.Clone(r.roomNumbers)
}

func (r *Room) HasRoomNumber(n int) bool {
	_, found := slices.BinarySearch(r.roomNumbers, n)
	return found
}

// Assignment is a claim on one physical room number for a stay period. A
// released assignment (cancelled booking or expired hold) no longer blocks
// availability.
type Assignment struct {
	ID         uuid.UUID
	RoomNumber int
	Period     StayPeriod
	BookingID  *uuid.UUID
	Released   bool
}

// AvailableNumbers returns, ascending, every room number with no live
// assignment overlapping the requested period. An empty result means sold
// out, not an error.
func (r *Room) AvailableNumbers(assignments []Assignment, period StayPeriod) []int {
	blocked := make(map[int]bool, len(assignments))
	for _, a := range assignments {
		if a.Released {
			continue
		}
		if a.Period.Overlaps(period) {
			blocked[a.RoomNumber] = true
		}
	}

	free := make([]int, 0, len(r.roomNumbers))
	for _, n := range r.roomNumbers {
		if !blocked[n] {
			free = append(free, n)
		}
	}
	return free
}

// LowestAvailable picks the deterministic winner for a new reservation:
// lowest number first, so concurrent requests converge on filling low
// numbers and fragmentation stays minimal.
func (r *Room) LowestAvailable(assignments []Assignment, period StayPeriod) (int, bool) {
	free := r.AvailableNumbers(assignments, period)
	if len(free) == 0 {
		return 0, false
	}
	return free[0], true
}

// NightlyTotal prices a stay of the given period.
func (r *Room) NightlyTotal(period StayPeriod) int64 {
	return int64(period.Nights()) * r.priceCents
}
