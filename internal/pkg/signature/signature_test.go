//go:build unit

package signature_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"stayhub/internal/pkg/signature"

	"github.com/stretchr/testify/assert"
)

func hmacHex(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	secret := "whsec_12345"
	body := []byte(`{"event":"payment.captured","payload":{}}`)

	t.Run("matching signature", func(t *testing.T) {
		assert.True(t, signature.Verify(secret, body, hmacHex(secret, body)))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, signature.Verify(secret, body, hmacHex("other", body)))
	})

	t.Run("tampered body", func(t *testing.T) {
		sig := hmacHex(secret, body)
		assert.False(t, signature.Verify(secret, []byte(`{"event":"refund.processed"}`), sig))
	})

	t.Run("empty provided signature", func(t *testing.T) {
		assert.False(t, signature.Verify(secret, body, ""))
	})
}

func TestVerifyPayment(t *testing.T) {
	secret := "key_secret"
	orderID := "order_N5X1abc"
	paymentID := "pay_N5X2def"
	sig := hmacHex(secret, []byte(orderID+"|"+paymentID))

	assert.True(t, signature.VerifyPayment(secret, orderID, paymentID, sig))
	assert.False(t, signature.VerifyPayment(secret, orderID, "pay_other", sig))
	assert.False(t, signature.VerifyPayment(secret, "order_other", paymentID, sig))
}
