package api

import (
	"errors"
	"log/slog"
	"net/http"

	"stayhub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewWebhookHandler(paymentCommands commands.PaymentCommands) *WebhookHandler {
	return &WebhookHandler{
		paymentCommands: paymentCommands,
	}
}

// @Summary Payment gateway webhook
// @Description Receive asynchronous payment events; the signature is verified over the raw body
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Razorpay-Signature header string true "HMAC-SHA256 of the raw body"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	// The signature covers the exact bytes the gateway sent; any re-encoding
	// of the JSON would break verification.
	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unable to read request body",
		})
		return
	}

	sig := c.GetHeader("X-Razorpay-Signature")

	err = h.paymentCommands.HandleWebhook(c.Request.Context(), rawBody, sig)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrMissingSignature):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Signature header required",
			})
		case errors.Is(err, commands.ErrInvalidSignature):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid webhook signature",
			})
		default:
			// A processing failure after signature verification is our
			// problem, not the gateway's. Acknowledge so it does not retry
			// forever; the event can be replayed from the dashboard.
			slog.Error("webhook processing failed", "error", err.Error())
			c.JSON(http.StatusOK, gin.H{"status": "acknowledged"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
