package commands

import (
	"context"

	"stayhub/internal/domain/user"
)

// GatewayOrder is the slice of the gateway's order object the engine cares
// about. Notes carry the booking id back to us on the verification path.
type GatewayOrder struct {
	ID       string
	Amount   int64 // minor units
	Currency string
	Notes    map[string]string
}

type CreateGatewayOrderParams struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// PaymentGateway is the order-creation collaborator. It is constructed once
// at bootstrap and injected; nothing in the codebase reaches for a
// package-level client.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, params CreateGatewayOrderParams) (*GatewayOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*GatewayOrder, error)
	// KeyID is the public key the frontend checkout needs.
	KeyID() string
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
