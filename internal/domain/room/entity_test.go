//go:build unit

package room_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func period(t *testing.T, in, out time.Time) room.StayPeriod {
	t.Helper()
	p, err := room.NewStayPeriod(in, out)
	require.NoError(t, err)
	return p
}

func newTestRoom(t *testing.T, numbers []int) *room.Room {
	t.Helper()
	r, err := room.NewRoom(uuid.New(), "Deluxe Double", 250000, 2, []string{"wifi"}, numbers)
	require.NoError(t, err)
	return r
}

func TestNewStayPeriod(t *testing.T) {
	t.Run("check-out before check-in", func(t *testing.T) {
		_, err := room.NewStayPeriod(date(2024, 6, 3), date(2024, 6, 1))
		assert.ErrorIs(t, err, room.ErrInvalidStayPeriod)
	})

	t.Run("zero-length stay", func(t *testing.T) {
		_, err := room.NewStayPeriod(date(2024, 6, 1), date(2024, 6, 1))
		assert.ErrorIs(t, err, room.ErrInvalidStayPeriod)
	})
}

func TestStayPeriodOverlaps(t *testing.T) {
	base := period(t, date(2024, 6, 1), date(2024, 6, 5))

	cases := []struct {
		name    string
		in, out time.Time
		want    bool
	}{
		{"identical range", date(2024, 6, 1), date(2024, 6, 5), true},
		{"contained range", date(2024, 6, 2), date(2024, 6, 3), true},
		{"straddles end", date(2024, 6, 4), date(2024, 6, 6), true},
		{"straddles start", date(2024, 5, 30), date(2024, 6, 2), true},
		{"back-to-back after", date(2024, 6, 5), date(2024, 6, 7), false},
		{"back-to-back before", date(2024, 5, 28), date(2024, 6, 1), false},
		{"disjoint", date(2024, 6, 10), date(2024, 6, 12), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := period(t, tc.in, tc.out)
			assert.Equal(t, tc.want, base.Overlaps(other))
			assert.Equal(t, tc.want, other.Overlaps(base))
		})
	}
}

func TestStayPeriodNights(t *testing.T) {
	t.Run("whole days", func(t *testing.T) {
		p := period(t, date(2024, 6, 1), date(2024, 6, 3))
		assert.Equal(t, 2, p.Nights())
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		in := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
		out := time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)
		p := period(t, in, out)
		assert.Equal(t, 2, p.Nights())
	})

	t.Run("single night", func(t *testing.T) {
		p := period(t, date(2024, 6, 1), date(2024, 6, 2))
		assert.Equal(t, 1, p.Nights())
	})
}

func TestNewRoom(t *testing.T) {
	t.Run("no room numbers", func(t *testing.T) {
		_, err := room.NewRoom(uuid.New(), "Suite", 100, 2, nil, nil)
		assert.ErrorIs(t, err, room.ErrNoRoomNumbers)
	})

	t.Run("duplicate room numbers", func(t *testing.T) {
		_, err := room.NewRoom(uuid.New(), "Suite", 100, 2, nil, []int{101, 101})
		assert.ErrorIs(t, err, room.ErrDuplicateRoomNumber)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := room.NewRoom(uuid.New(), "Suite", -1, 2, nil, []int{101})
		assert.ErrorIs(t, err, room.ErrNegativePrice)
	})

	t.Run("numbers sorted on construction", func(t *testing.T) {
		r, err := room.NewRoom(uuid.New(), "Suite", 100, 2, nil, []int{105, 101, 102})
		require.NoError(t, err)
		assert.Equal(t, []int{101, 102, 105}, r.RoomNumbers())
	})
}

func TestHasRoomNumber(t *testing.T) {
	r := newTestRoom(t, []int{101, 102, 105})

	assert.True(t, r.HasRoomNumber(101))
	assert.True(t, r.HasRoomNumber(105))
	assert.False(t, r.HasRoomNumber(103))
	assert.False(t, r.HasRoomNumber(0))
}

func TestAvailableNumbers(t *testing.T) {
	r := newTestRoom(t, []int{101, 102})
	june1to3 := period(t, date(2024, 6, 1), date(2024, 6, 3))

	claim := func(n int, p room.StayPeriod) room.Assignment {
		id := uuid.New()
		return room.Assignment{ID: uuid.New(), RoomNumber: n, Period: p, BookingID: &id}
	}

	t.Run("all free with no assignments", func(t *testing.T) {
		assert.Equal(t, []int{101, 102}, r.AvailableNumbers(nil, june1to3))
	})

	t.Run("fills lowest numbers first", func(t *testing.T) {
		n, ok := r.LowestAvailable(nil, june1to3)
		require.True(t, ok)
		assert.Equal(t, 101, n)

		n, ok = r.LowestAvailable([]room.Assignment{claim(101, june1to3)}, june1to3)
		require.True(t, ok)
		assert.Equal(t, 102, n)

		_, ok = r.LowestAvailable([]room.Assignment{claim(101, june1to3), claim(102, june1to3)}, june1to3)
		assert.False(t, ok)
	})

	t.Run("sold out is an empty list, not nil panic", func(t *testing.T) {
		free := r.AvailableNumbers([]room.Assignment{claim(101, june1to3), claim(102, june1to3)}, june1to3)
		assert.Empty(t, free)
	})

	t.Run("released assignments do not block", func(t *testing.T) {
		released := claim(101, june1to3)
		released.Released = true
		assert.Equal(t, []int{101, 102}, r.AvailableNumbers([]room.Assignment{released}, june1to3))
	})

	t.Run("boundary overlap excludes the room", func(t *testing.T) {
		existing := claim(101, period(t, date(2024, 6, 1), date(2024, 6, 5)))
		requested := period(t, date(2024, 6, 4), date(2024, 6, 6))
		assert.Equal(t, []int{102}, r.AvailableNumbers([]room.Assignment{existing}, requested))
	})

	t.Run("non-overlapping dates leave the room free", func(t *testing.T) {
		existing := claim(101, period(t, date(2024, 6, 1), date(2024, 6, 5)))
		requested := period(t, date(2024, 6, 5), date(2024, 6, 8))
		assert.Equal(t, []int{101, 102}, r.AvailableNumbers([]room.Assignment{existing}, requested))
	})
}

func TestNightlyTotal(t *testing.T) {
	r := newTestRoom(t, []int{101})
	p := period(t, date(2024, 6, 1), date(2024, 6, 4))
	assert.Equal(t, int64(750000), r.NightlyTotal(p))
}
