package room

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidStayPeriod = errors.New("check-out must be after check-in")

// StayPeriod is a half-open interval [CheckIn, CheckOut). Check-out day is
// not occupied, so back-to-back stays on the same room number do not clash.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	if !checkOut.After(checkIn) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}, nil
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

// Overlaps: [a,b) and [c,d) overlap iff a < d && c < b.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

// Nights counts whole days, rounding partial days up.
func (p StayPeriod) Nights() int {
	hours := p.checkOut.Sub(p.checkIn).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	return nights
}

// ToDaterange renders the period for a Postgres daterange literal.
func (p StayPeriod) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(time.DateOnly), p.checkOut.Format(time.DateOnly))
}
