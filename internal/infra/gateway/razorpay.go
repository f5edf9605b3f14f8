// Package gateway adapts the Razorpay SDK to the payment port the commands
// depend on.
package gateway

import (
	"context"

	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"

	razorpay "github.com/razorpay/razorpay-go"
)

var (
	errOrderCreate   = errs.New("razorpay order create failed")
	errOrderFetch    = errs.New("razorpay order fetch failed")
	errMalformedResp = errs.New("unexpected razorpay response shape")
)

type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayGateway(cfg config.RazorpayConfig) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:  cfg.KeyID,
	}
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// The SDK does not take a context; the ctx parameter is kept so the port
// stays honest about doing network IO.
func (g *RazorpayGateway) CreateOrder(_ context.Context, params commands.CreateGatewayOrderParams) (*commands.GatewayOrder, error) {
	notes := make(map[string]any, len(params.Notes))
	for k, v := range params.Notes {
		notes[k] = v
	}

	data := map[string]any{
		"amount":   params.AmountMinor,
		"currency": params.Currency,
		"receipt":  params.Receipt,
		"notes":    notes,
	}

	resp, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, errs.Mark(err, errOrderCreate)
	}
	return orderFromResponse(resp)
}

func (g *RazorpayGateway) FetchOrder(_ context.Context, orderID string) (*commands.GatewayOrder, error) {
	resp, err := g.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, errs.Mark(err, errOrderFetch)
	}
	return orderFromResponse(resp)
}

func orderFromResponse(resp map[string]any) (*commands.GatewayOrder, error) {
	id, ok := resp["id"].(string)
	if !ok || id == "" {
		return nil, errMalformedResp
	}

	order := &commands.GatewayOrder{
		ID:    id,
		Notes: map[string]string{},
	}

	// Razorpay returns amounts as JSON numbers.
	switch amount := resp["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	}
	if currency, ok := resp["currency"].(string); ok {
		order.Currency = currency
	}
	if notes, ok := resp["notes"].(map[string]any); ok {
		for k, v := range notes {
			if s, ok := v.(string); ok {
				order.Notes[k] = s
			}
		}
	}
	return order, nil
}
