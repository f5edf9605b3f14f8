package hotel

import (
	"time"

	"github.com/google/uuid"
)

const DefaultCurrency = "INR"

type Hotel struct {
	ID        uuid.UUID
	Name      string
	City      string
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrencyOrDefault covers hotels created before the currency column existed.
func (h *Hotel) CurrencyOrDefault() string {
	if h == nil || h.Currency == "" {
		return DefaultCurrency
	}
	return h.Currency
}
