// Package signature implements the HMAC-SHA256 scheme Razorpay uses for the
// checkout callback and for webhook deliveries. The payload conventions
// differ: the callback signs "orderID|paymentID", webhooks sign the raw
// request body exactly as received.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

func Compute(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time.
func Verify(secret string, payload []byte, provided string) bool {
	expected := Compute(secret, payload)
	return hmac.Equal([]byte(expected), []byte(provided))
}

// VerifyPayment checks the signature returned by the checkout flow, computed
// over "orderID|paymentID".
func VerifyPayment(secret, orderID, paymentID, provided string) bool {
	return Verify(secret, []byte(orderID+"|"+paymentID), provided)
}
