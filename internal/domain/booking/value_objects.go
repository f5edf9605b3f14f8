package booking

import (
	"errors"
	"strings"
)

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrGuestName      = errors.New("guest full name is required")
	ErrGuestAge       = errors.New("guest age cannot be negative")
)

// Money is an amount in minor currency units (paise for INR).
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

// Major converts to major units for display and gateway refund payloads.
func (m Money) Major() float64 {
	return float64(m.cents) / 100.0
}

type Guest struct {
	FullName string
	Age      int
}

func NewGuest(fullName string, age int) (Guest, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return Guest{}, ErrGuestName
	}
	if age < 0 {
		return Guest{}, ErrGuestAge
	}
	return Guest{FullName: fullName, Age: age}, nil
}
