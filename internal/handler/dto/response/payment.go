package response

import "stayhub/internal/usecase/queries"

type OrderResponse struct {
	OrderID       string `json:"orderId"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod"`
	Key           string `json:"key,omitempty"`
}

type VerifyPaymentResponse struct {
	Status string `json:"status"`
}

type PaymentMethodResponse struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

func FromPaymentMethods(methods []queries.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, PaymentMethodResponse{ID: m.ID, Label: m.Label, Enabled: m.Enabled})
	}
	return out
}
